package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities and
// persistence models.
type TicketMapper interface {
	// ToModel converts a ticket domain entity to a persistence model.
	ToModel(t *ticket.Ticket) *models.TicketModel

	// ToDomain converts a ticket persistence model to a domain entity.
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	// ActivityToModel converts an activity entity to a persistence model.
	ActivityToModel(a *ticket.Activity) (*models.TicketActivityModel, error)

	// ActivityToDomain converts an activity persistence model to a domain entity.
	ActivityToDomain(model *models.TicketActivityModel) (*ticket.Activity, error)

	// AssignmentToModel converts an assignment record to a persistence model.
	AssignmentToModel(a *ticket.Assignment) *models.TicketAssignmentModel

	// AssignmentToDomain converts an assignment persistence model to a domain entity.
	AssignmentToDomain(model *models.TicketAssignmentModel) (*ticket.Assignment, error)
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func millisPtrToTimePtr(ms *int64) *time.Time {
	if ms == nil {
		return nil
	}
	t := millisToTime(*ms)
	return &t
}

func timePtrToMillisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

// ToModel converts a ticket domain entity to a persistence model.
func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:                       t.ID(),
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
		CreatedAt:                t.CreatedAt().UnixMilli(),
		UpdatedAt:                t.UpdatedAt().UnixMilli(),
		LastStatusChangeAt:       t.LastStatusChangeAt().UnixMilli(),
		ResolvedAt:               timePtrToMillisPtr(t.ResolvedAt()),
	}
}

// ToDomain converts a ticket persistence model to a domain entity.
func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	status, err := vo.NewTicketStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Number,
		model.BrandName,
		model.Description,
		model.IssueType,
		model.ExpectedOutput,
		priority,
		status,
		model.CreatedBy,
		model.AssignedTo,
		model.CurrentAssignee,
		model.ResolutionRemarks,
		model.PrimaryResolutionRemarks,
		model.ReopenReason,
		model.AcceptanceRemarks,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
		millisToTime(model.LastStatusChangeAt),
		millisPtrToTimePtr(model.ResolvedAt),
	)
}

// ActivityToModel converts an activity entity to a persistence model.
func (m *TicketMapperImpl) ActivityToModel(a *ticket.Activity) (*models.TicketActivityModel, error) {
	model := &models.TicketActivityModel{
		ID:        a.ID(),
		TicketID:  a.TicketID(),
		ActorID:   a.ActorID(),
		Action:    a.Action().String(),
		Comment:   a.Comment(),
		CreatedAt: a.CreatedAt().UnixMilli(),
	}

	if payload := a.Payload(); len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal activity payload: %w", err)
		}
		model.Payload = datatypes.JSON(raw)
	}

	return model, nil
}

// ActivityToDomain converts an activity persistence model to a domain entity.
func (m *TicketMapperImpl) ActivityToDomain(model *models.TicketActivityModel) (*ticket.Activity, error) {
	var payload map[string]interface{}
	if len(model.Payload) > 0 {
		if err := json.Unmarshal(model.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity payload (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructActivity(
		model.ID,
		model.TicketID,
		model.ActorID,
		ticket.Action(model.Action),
		model.Comment,
		payload,
		millisToTime(model.CreatedAt),
	)
}

// AssignmentToModel converts an assignment record to a persistence model.
func (m *TicketMapperImpl) AssignmentToModel(a *ticket.Assignment) *models.TicketAssignmentModel {
	return &models.TicketAssignmentModel{
		ID:               a.ID(),
		TicketID:         a.TicketID(),
		AssignedTo:       a.AssignedTo(),
		AssignedBy:       a.AssignedBy(),
		PreviousAssignee: a.PreviousAssignee(),
		Auto:             a.Auto(),
		Notes:            a.Notes(),
		CreatedAt:        a.CreatedAt().UnixMilli(),
	}
}

// AssignmentToDomain converts an assignment persistence model to a domain entity.
func (m *TicketMapperImpl) AssignmentToDomain(model *models.TicketAssignmentModel) (*ticket.Assignment, error) {
	return ticket.ReconstructAssignment(
		model.ID,
		model.TicketID,
		model.AssignedTo,
		model.AssignedBy,
		model.PreviousAssignee,
		model.Auto,
		model.Notes,
		millisToTime(model.CreatedAt),
	)
}
