package ticket

import (
	"context"
	"time"

	vo "stagedesk/internal/domain/ticket/valueobjects"
)

// VisibilityScope narrows listings to rows the requester may see. A nil
// scope (All=true) means no narrowing (admin).
type VisibilityScope struct {
	All bool
	// UserIDs are the requester plus, for managers, their managed team.
	// Rows created by or assigned to any of them are visible.
	UserIDs []uint
}

// ScopeAll returns the unrestricted scope.
func ScopeAll() VisibilityScope {
	return VisibilityScope{All: true}
}

// ScopeUsers returns a scope restricted to the given user IDs.
func ScopeUsers(ids ...uint) VisibilityScope {
	return VisibilityScope{UserIDs: ids}
}

// Contains reports whether a user ID is inside the scope.
func (s VisibilityScope) Contains(id uint) bool {
	if s.All {
		return true
	}
	for _, uid := range s.UserIDs {
		if uid == id {
			return true
		}
	}
	return false
}

// Filter is the typed predicate list for ticket listings. The repository
// combines predicates with parameterized conditions only.
type Filter struct {
	Statuses   []vo.TicketStatus
	Priorities []vo.Priority
	BrandName  string
	CreatedBy  *uint
	// CreatedByIn restricts to tickets created by any of the given users.
	// Used by the manager dashboards.
	CreatedByIn []uint
	AssignedTo  *uint
	Unassigned  bool
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      string

	Scope VisibilityScope

	Page     int
	PageSize int
}

type TicketRepository interface {
	Save(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, ticketID uint) error
	FindByID(ctx context.Context, ticketID uint) (*Ticket, error)
	FindByNumber(ctx context.Context, number string) (*Ticket, error)
	// List returns tickets ordered by priority severity then newest first.
	List(ctx context.Context, filter Filter) ([]*Ticket, int64, error)
	// CountByAssigneeInStatuses returns, per assignee, the number of tickets
	// currently in the given statuses. Used for workload reporting and
	// auto-assignment.
	CountByAssigneeInStatuses(ctx context.Context, assigneeIDs []uint, statuses []vo.TicketStatus) (map[uint]int64, error)
	// CountByStatus returns ticket counts per status within the scope.
	CountByStatus(ctx context.Context, scope VisibilityScope) (map[vo.TicketStatus]int64, error)
}

type ActivityRepository interface {
	Save(ctx context.Context, activity *Activity) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Activity, error)
}

type AssignmentRepository interface {
	Save(ctx context.Context, assignment *Assignment) error
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Assignment, error)
}
