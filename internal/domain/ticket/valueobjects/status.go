package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusOpen      TicketStatus = "open"
	StatusProcessed TicketStatus = "processed"
	StatusResolved  TicketStatus = "resolved"
	StatusReopened  TicketStatus = "re-opened"
	StatusClosed    TicketStatus = "closed"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusOpen:      true,
	StatusProcessed: true,
	StatusResolved:  true,
	StatusReopened:  true,
	StatusClosed:    true,
}

// ticketStatusTransitions is the lifecycle state machine. resolved and closed
// are terminal; closed is only ever entered through the administrative
// force-status override, which bypasses this table.
var ticketStatusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen: {
		StatusProcessed,
	},
	StatusProcessed: {
		StatusResolved,
		StatusReopened,
	},
	StatusReopened: {
		StatusProcessed,
	},
	StatusResolved: {},
	StatusClosed:   {},
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) CanTransitionTo(newStatus TicketStatus) bool {
	allowedTransitions, ok := ticketStatusTransitions[ts]
	if !ok {
		return false
	}

	for _, allowed := range allowedTransitions {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (ts TicketStatus) IsOpen() bool {
	return ts == StatusOpen
}

func (ts TicketStatus) IsProcessed() bool {
	return ts == StatusProcessed
}

func (ts TicketStatus) IsResolved() bool {
	return ts == StatusResolved
}

func (ts TicketStatus) IsReopened() bool {
	return ts == StatusReopened
}

func (ts TicketStatus) IsClosed() bool {
	return ts == StatusClosed
}

// IsTerminal reports whether the normal lifecycle can leave this state.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusResolved || ts == StatusClosed
}

// AllStatuses returns every lifecycle state in display order.
func AllStatuses() []TicketStatus {
	return []TicketStatus{StatusOpen, StatusProcessed, StatusReopened, StatusResolved, StatusClosed}
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
