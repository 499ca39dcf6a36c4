package usecases

import (
	"time"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
)

// TicketSummary is the compact listing shape used by the manager dashboards.
type TicketSummary struct {
	Number     string    `json:"number"`
	BrandName  string    `json:"brand_name"`
	IssueType  string    `json:"issue_type"`
	Priority   string    `json:"priority"`
	Status     string    `json:"status"`
	CreatedBy  uint      `json:"created_by"`
	AssignedTo *uint     `json:"assigned_to"`
	CreatedAt  time.Time `json:"created_at"`
}

func newTicketSummary(t *ticket.Ticket) *TicketSummary {
	return &TicketSummary{
		Number:     t.Number(),
		BrandName:  t.BrandName(),
		IssueType:  t.IssueType(),
		Priority:   t.Priority().String(),
		Status:     t.Status().String(),
		CreatedBy:  t.CreatedBy(),
		AssignedTo: t.AssignedTo(),
		CreatedAt:  t.CreatedAt(),
	}
}

func newTicketSummaries(tickets []*ticket.Ticket) []*TicketSummary {
	summaries := make([]*TicketSummary, 0, len(tickets))
	for _, t := range tickets {
		summaries = append(summaries, newTicketSummary(t))
	}
	return summaries
}

// TicketPage is a paginated dashboard listing.
type TicketPage struct {
	Tickets  []*TicketSummary `json:"tickets"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// TeamMember is the member shape returned by the team roster and workload
// queries.
type TeamMember struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	IsManager         bool   `json:"is_manager"`
	IsActive          bool   `json:"is_active"`
	AutoAssignEnabled bool   `json:"auto_assign_enabled"`
}

func newTeamMember(u *user.User) *TeamMember {
	return &TeamMember{
		ID:                u.ID(),
		Name:              u.Name(),
		Email:             u.Email(),
		Role:              u.Role().String(),
		IsManager:         u.IsManager(),
		IsActive:          u.IsActive(),
		AutoAssignEnabled: u.AutoAssignEnabled(),
	}
}
