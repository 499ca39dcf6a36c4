package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/infrastructure/persistence/mappers"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
)

type DeletionRequestRepository struct {
	db     *gorm.DB
	mapper mappers.AttachmentMapper
}

func NewDeletionRequestRepository(gdb *gorm.DB) *DeletionRequestRepository {
	return &DeletionRequestRepository{
		db:     gdb,
		mapper: mappers.NewAttachmentMapper(),
	}
}

func (r *DeletionRequestRepository) Save(ctx context.Context, request *attachment.DeletionRequest) error {
	model := r.mapper.RequestToModel(request)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save deletion request: %w", err)
	}

	return request.SetID(model.ID)
}

func (r *DeletionRequestRepository) Update(ctx context.Context, request *attachment.DeletionRequest) error {
	model := r.mapper.RequestToModel(request)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.DeletionRequestModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "attachment_id", "ticket_id", "requester_id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update deletion request: %w", result.Error)
	}

	return nil
}

func (r *DeletionRequestRepository) FindByID(ctx context.Context, requestID uint) (*attachment.DeletionRequest, error) {
	var model models.DeletionRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find deletion request: %w", err)
	}

	return r.mapper.RequestToDomain(&model)
}

func (r *DeletionRequestRepository) FindApprovedByAttachment(ctx context.Context, attachmentID, requesterID uint) (*attachment.DeletionRequest, error) {
	var model models.DeletionRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("attachment_id = ?", attachmentID).
		Where("requester_id = ?", requesterID).
		Where("status = ?", attachment.RequestApproved.String()).
		Order("decided_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find deletion request: %w", err)
	}

	return r.mapper.RequestToDomain(&model)
}

func (r *DeletionRequestRepository) FindPendingByApproverRole(ctx context.Context, role authorization.UserRole) ([]*attachment.DeletionRequest, error) {
	var requestModels []models.DeletionRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("approver_role = ?", role.String()).
		Where("status = ?", attachment.RequestPending.String()).
		Order("created_at ASC").
		Find(&requestModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending deletion requests: %w", err)
	}

	return r.toDomainSlice(requestModels)
}

func (r *DeletionRequestRepository) FindByRequester(ctx context.Context, requesterID uint) ([]*attachment.DeletionRequest, error) {
	var requestModels []models.DeletionRequestModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("requester_id = ?", requesterID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list deletion requests: %w", err)
	}

	return r.toDomainSlice(requestModels)
}

func (r *DeletionRequestRepository) HasOpenRequest(ctx context.Context, attachmentID uint) (bool, error) {
	var count int64
	tx := db.GetTxFromContext(ctx, r.db)

	openStatuses := []string{
		attachment.RequestPending.String(),
		attachment.RequestApproved.String(),
	}
	if err := tx.
		Model(&models.DeletionRequestModel{}).
		Where("attachment_id = ?", attachmentID).
		Where("status IN ?", openStatuses).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count open deletion requests: %w", err)
	}

	return count > 0, nil
}

func (r *DeletionRequestRepository) toDomainSlice(requestModels []models.DeletionRequestModel) ([]*attachment.DeletionRequest, error) {
	requests := make([]*attachment.DeletionRequest, len(requestModels))
	for i := range requestModels {
		req, err := r.mapper.RequestToDomain(&requestModels[i])
		if err != nil {
			return nil, err
		}
		requests[i] = req
	}
	return requests, nil
}
