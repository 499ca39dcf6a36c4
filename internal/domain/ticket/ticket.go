package ticket

import (
	"fmt"
	"time"

	vo "stagedesk/internal/domain/ticket/valueobjects"
)

// Ticket is the lifecycle aggregate. State only changes through the
// transition methods below; the one exception is ForceStatus, the
// administrative override.
type Ticket struct {
	id                       uint
	number                   string
	brandName                string
	description              string
	issueType                string
	expectedOutput           string
	priority                 vo.Priority
	status                   vo.TicketStatus
	createdBy                uint
	assignedTo               *uint
	currentAssignee          *uint
	resolutionRemarks        string
	primaryResolutionRemarks string
	reopenReason             string
	acceptanceRemarks        string
	createdAt                time.Time
	updatedAt                time.Time
	lastStatusChangeAt       time.Time
	resolvedAt               *time.Time
}

func NewTicket(
	brandName string,
	description string,
	issueType string,
	expectedOutput string,
	priority vo.Priority,
	createdBy uint,
) (*Ticket, error) {
	if len(brandName) == 0 {
		return nil, fmt.Errorf("brand name is required")
	}
	if len(brandName) > 200 {
		return nil, fmt.Errorf("brand name exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if createdBy == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := time.Now().UTC()

	return &Ticket{
		brandName:          brandName,
		description:        description,
		issueType:          issueType,
		expectedOutput:     expectedOutput,
		priority:           priority,
		status:             vo.StatusOpen,
		createdBy:          createdBy,
		createdAt:          now,
		updatedAt:          now,
		lastStatusChangeAt: now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	brandName string,
	description string,
	issueType string,
	expectedOutput string,
	priority vo.Priority,
	status vo.TicketStatus,
	createdBy uint,
	assignedTo *uint,
	currentAssignee *uint,
	resolutionRemarks string,
	primaryResolutionRemarks string,
	reopenReason string,
	acceptanceRemarks string,
	createdAt, updatedAt, lastStatusChangeAt time.Time,
	resolvedAt *time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:                       id,
		number:                   number,
		brandName:                brandName,
		description:              description,
		issueType:                issueType,
		expectedOutput:           expectedOutput,
		priority:                 priority,
		status:                   status,
		createdBy:                createdBy,
		assignedTo:               assignedTo,
		currentAssignee:          currentAssignee,
		resolutionRemarks:        resolutionRemarks,
		primaryResolutionRemarks: primaryResolutionRemarks,
		reopenReason:             reopenReason,
		acceptanceRemarks:        acceptanceRemarks,
		createdAt:                createdAt,
		updatedAt:                updatedAt,
		lastStatusChangeAt:       lastStatusChangeAt,
		resolvedAt:               resolvedAt,
	}, nil
}

func (t *Ticket) ID() uint                         { return t.id }
func (t *Ticket) Number() string                   { return t.number }
func (t *Ticket) BrandName() string                { return t.brandName }
func (t *Ticket) Description() string              { return t.description }
func (t *Ticket) IssueType() string                { return t.issueType }
func (t *Ticket) ExpectedOutput() string           { return t.expectedOutput }
func (t *Ticket) Priority() vo.Priority            { return t.priority }
func (t *Ticket) Status() vo.TicketStatus          { return t.status }
func (t *Ticket) CreatedBy() uint                  { return t.createdBy }
func (t *Ticket) AssignedTo() *uint                { return t.assignedTo }
func (t *Ticket) CurrentAssignee() *uint           { return t.currentAssignee }
func (t *Ticket) ResolutionRemarks() string        { return t.resolutionRemarks }
func (t *Ticket) PrimaryResolutionRemarks() string { return t.primaryResolutionRemarks }
func (t *Ticket) ReopenReason() string             { return t.reopenReason }
func (t *Ticket) AcceptanceRemarks() string        { return t.acceptanceRemarks }
func (t *Ticket) CreatedAt() time.Time             { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time             { return t.updatedAt }
func (t *Ticket) LastStatusChangeAt() time.Time    { return t.lastStatusChangeAt }
func (t *Ticket) ResolvedAt() *time.Time           { return t.resolvedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

// SetNumber attaches the generated ticket number. The number is immutable
// once set.
func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// TicketPatch carries the optional field updates for UpdateDetails. Nil
// fields are left untouched.
type TicketPatch struct {
	BrandName       *string
	Description     *string
	IssueType       *string
	ExpectedOutput  *string
	Priority        *vo.Priority
	CurrentAssignee *uint
}

// IsEmpty reports whether the patch changes nothing.
func (p TicketPatch) IsEmpty() bool {
	return p.BrandName == nil &&
		p.Description == nil &&
		p.IssueType == nil &&
		p.ExpectedOutput == nil &&
		p.Priority == nil &&
		p.CurrentAssignee == nil
}

// UpdateDetails applies the patch. Only the fields present are mutated.
func (t *Ticket) UpdateDetails(patch TicketPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	if patch.BrandName != nil {
		if len(*patch.BrandName) == 0 || len(*patch.BrandName) > 200 {
			return fmt.Errorf("brand name must be between 1 and 200 characters")
		}
		t.brandName = *patch.BrandName
	}
	if patch.Description != nil {
		if len(*patch.Description) == 0 || len(*patch.Description) > 5000 {
			return fmt.Errorf("description must be between 1 and 5000 characters")
		}
		t.description = *patch.Description
	}
	if patch.IssueType != nil {
		t.issueType = *patch.IssueType
	}
	if patch.ExpectedOutput != nil {
		t.expectedOutput = *patch.ExpectedOutput
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return fmt.Errorf("invalid priority: %s", *patch.Priority)
		}
		t.priority = *patch.Priority
	}
	if patch.CurrentAssignee != nil {
		t.currentAssignee = patch.CurrentAssignee
	}

	t.updatedAt = time.Now().UTC()
	return nil
}

// Resolve moves the ticket to processed. Legal only from open or re-opened.
// The first resolution snapshots primary resolution remarks; later
// resolutions only update the live remarks.
func (t *Ticket) Resolve(remarks string, actorID uint) error {
	if !t.status.CanTransitionTo(vo.StatusProcessed) {
		return fmt.Errorf("cannot resolve ticket with status %s", t.status)
	}
	if actorID == 0 {
		return fmt.Errorf("actor ID is required")
	}

	now := time.Now().UTC()
	t.resolutionRemarks = remarks
	if t.primaryResolutionRemarks == "" {
		t.primaryResolutionRemarks = remarks
	}
	t.status = vo.StatusProcessed
	t.currentAssignee = &actorID
	t.lastStatusChangeAt = now
	t.updatedAt = now

	return nil
}

// Reopen moves a processed ticket back into the re-opened loop.
func (t *Ticket) Reopen(reason string, actorID uint) error {
	if len(reason) == 0 {
		return fmt.Errorf("reopen reason is required")
	}
	if !t.status.CanTransitionTo(vo.StatusReopened) {
		return fmt.Errorf("cannot reopen ticket with status %s", t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusReopened
	t.reopenReason = reason
	t.lastStatusChangeAt = now
	t.updatedAt = now

	return nil
}

// Close accepts a processed ticket as resolved. acceptanceRemarks may be empty.
func (t *Ticket) Close(acceptanceRemarks string, actorID uint) error {
	if !t.status.CanTransitionTo(vo.StatusResolved) {
		return fmt.Errorf("cannot close ticket with status %s", t.status)
	}

	now := time.Now().UTC()
	t.status = vo.StatusResolved
	t.acceptanceRemarks = acceptanceRemarks
	t.resolvedAt = &now
	t.lastStatusChangeAt = now
	t.updatedAt = now

	return nil
}

// ForceStatus sets any valid status unconditionally, bypassing the state
// machine. Restricted to the admin role at the application layer.
func (t *Ticket) ForceStatus(status vo.TicketStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status: %s", status)
	}

	now := time.Now().UTC()
	t.status = status
	if status.IsResolved() && t.resolvedAt == nil {
		t.resolvedAt = &now
	}
	t.lastStatusChangeAt = now
	t.updatedAt = now

	return nil
}

// Assign sets the working assignee. Status is deliberately untouched.
func (t *Ticket) Assign(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.assignedTo = &assigneeID
	t.updatedAt = time.Now().UTC()
	return nil
}
