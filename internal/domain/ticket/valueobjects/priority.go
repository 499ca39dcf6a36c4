package valueobjects

import "fmt"

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var validPriorities = map[Priority]bool{
	PriorityUrgent: true,
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

// prioritySeverityRank orders priorities for listing: urgent first, low last.
var prioritySeverityRank = map[Priority]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityMedium: 3,
	PriorityLow:    4,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// SeverityRank returns the sort rank, 1 (urgent) through 4 (low).
// Unknown priorities sort last.
func (p Priority) SeverityRank() int {
	rank, ok := prioritySeverityRank[p]
	if !ok {
		return len(prioritySeverityRank) + 1
	}
	return rank
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

func (p Priority) IsUrgent() bool {
	return p == PriorityUrgent
}

func (p Priority) IsHigh() bool {
	return p == PriorityHigh
}

func (p Priority) IsMedium() bool {
	return p == PriorityMedium
}

func (p Priority) IsLow() bool {
	return p == PriorityLow
}
