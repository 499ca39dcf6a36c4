package usecases

import (
	"time"

	"stagedesk/internal/domain/ticket"
)

// TicketResult is the read shape shared by the ticket use cases.
type TicketResult struct {
	TicketID                 uint
	Number                   string
	BrandName                string
	Description              string
	IssueType                string
	ExpectedOutput           string
	Priority                 string
	Status                   string
	CreatedBy                uint
	AssignedTo               *uint
	CurrentAssignee          *uint
	ResolutionRemarks        string
	PrimaryResolutionRemarks string
	ReopenReason             string
	AcceptanceRemarks        string
	CreatedAt                time.Time
	UpdatedAt                time.Time
	LastStatusChangeAt       time.Time
	ResolvedAt               *time.Time
}

func newTicketResult(t *ticket.Ticket) *TicketResult {
	return &TicketResult{
		TicketID:                 t.ID(),
		Number:                   t.Number(),
		BrandName:                t.BrandName(),
		Description:              t.Description(),
		IssueType:                t.IssueType(),
		ExpectedOutput:           t.ExpectedOutput(),
		Priority:                 t.Priority().String(),
		Status:                   t.Status().String(),
		CreatedBy:                t.CreatedBy(),
		AssignedTo:               t.AssignedTo(),
		CurrentAssignee:          t.CurrentAssignee(),
		ResolutionRemarks:        t.ResolutionRemarks(),
		PrimaryResolutionRemarks: t.PrimaryResolutionRemarks(),
		ReopenReason:             t.ReopenReason(),
		AcceptanceRemarks:        t.AcceptanceRemarks(),
		CreatedAt:                t.CreatedAt(),
		UpdatedAt:                t.UpdatedAt(),
		LastStatusChangeAt:       t.LastStatusChangeAt(),
		ResolvedAt:               t.ResolvedAt(),
	}
}
