package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/infrastructure/persistence/mappers"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/db"
)

type AttachmentRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
}

func NewAttachmentRepository(gdb *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{
		db:     gdb,
		mapper: mappers.NewAttachmentMapper(),
	}
}

func (r *AttachmentRepository) Save(ctx context.Context, a *attachment.Attachment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AttachmentRepository) Delete(ctx context.Context, attachmentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.AttachmentModel{}, attachmentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AttachmentRepository) FindByID(ctx context.Context, attachmentID uint) (*attachment.Attachment, error) {
	var model models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, attachmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AttachmentRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*attachment.Attachment, error) {
	var attachmentModels []models.AttachmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC, id ASC").
		Find(&attachmentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}

	attachments := make([]*attachment.Attachment, len(attachmentModels))
	for i := range attachmentModels {
		a, err := r.mapper.ToDomain(&attachmentModels[i])
		if err != nil {
			return nil, err
		}
		attachments[i] = a
	}

	return attachments, nil
}
