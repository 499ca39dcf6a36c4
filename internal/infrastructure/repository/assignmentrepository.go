package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/infrastructure/persistence/mappers"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/db"
)

type AssignmentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewAssignmentRepository(gdb *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *AssignmentRepository) Save(ctx context.Context, assignment *ticket.Assignment) error {
	model := r.mapper.AssignmentToModel(assignment)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket assignment: %w", err)
	}

	return assignment.SetID(model.ID)
}

func (r *AssignmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Assignment, error) {
	var assignmentModels []models.TicketAssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&assignmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket assignments: %w", err)
	}

	assignments := make([]*ticket.Assignment, len(assignmentModels))
	for i := range assignmentModels {
		a, err := r.mapper.AssignmentToDomain(&assignmentModels[i])
		if err != nil {
			return nil, err
		}
		assignments[i] = a
	}

	return assignments, nil
}
