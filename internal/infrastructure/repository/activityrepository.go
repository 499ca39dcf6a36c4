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

type ActivityRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewActivityRepository(gdb *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		db:     gdb,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ActivityRepository) Save(ctx context.Context, activity *ticket.Activity) error {
	model, err := r.mapper.ActivityToModel(activity)
	if err != nil {
		return err
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket activity: %w", err)
	}

	return activity.SetID(model.ID)
}

func (r *ActivityRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Activity, error) {
	var activityModels []models.TicketActivityModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&activityModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list ticket activities: %w", err)
	}

	activities := make([]*ticket.Activity, len(activityModels))
	for i := range activityModels {
		a, err := r.mapper.ActivityToDomain(&activityModels[i])
		if err != nil {
			return nil, err
		}
		activities[i] = a
	}

	return activities, nil
}
