package usecases

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ConfirmDeletionCommand struct {
	AttachmentID uint
	Actor        authorization.Actor
	OTPCode      string
}

type ConfirmDeletionResult struct {
	AttachmentID uint   `json:"attachment_id"`
	FileName     string `json:"file_name"`
	TicketID     uint   `json:"ticket_id"`
}

// ConfirmDeletionUseCase redeems an approved deletion request. The code is
// single-use: the request flips to used, the attachment row goes away and the
// stored file is removed best-effort afterwards.
type ConfirmDeletionUseCase struct {
	requestRepo    attachment.DeletionRequestRepository
	attachmentRepo attachment.AttachmentRepository
	activityRepo   ticket.ActivityRepository
	store          FileStore
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewConfirmDeletionUseCase(
	requestRepo attachment.DeletionRequestRepository,
	attachmentRepo attachment.AttachmentRepository,
	activityRepo ticket.ActivityRepository,
	store FileStore,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ConfirmDeletionUseCase {
	return &ConfirmDeletionUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		store:          store,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *ConfirmDeletionUseCase) Execute(ctx context.Context, cmd ConfirmDeletionCommand) (*ConfirmDeletionResult, error) {
	if cmd.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}
	if len(cmd.OTPCode) == 0 {
		return nil, errors.NewValidationError("confirmation code is required")
	}

	a, err := uc.attachmentRepo.FindByID(ctx, cmd.AttachmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("attachment not found")
		}
		return nil, err
	}

	// Redemption failures are unauthorized, not invalid input: the caller
	// holds no live capability for this attachment.
	request, err := uc.requestRepo.FindApprovedByAttachment(ctx, cmd.AttachmentID, cmd.Actor.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewUnauthorizedError("no approved deletion request for this attachment")
		}
		return nil, err
	}

	if err := request.VerifyRedemption(cmd.AttachmentID, cmd.Actor.ID, cmd.OTPCode, time.Now().UTC()); err != nil {
		return nil, errors.NewUnauthorizedError(err.Error())
	}

	if err := request.MarkUsed(); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.requestRepo.Update(txCtx, request); err != nil {
			return err
		}
		if err := uc.attachmentRepo.Delete(txCtx, a.ID()); err != nil {
			return err
		}
		activity, err := ticket.NewActivity(a.TicketID(), &cmd.Actor.ID, ticket.ActionAttachmentDeleted, a.FileName(), map[string]interface{}{
			"attachment_id": a.ID(),
			"request_id":    request.ID(),
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to delete attachment", "error", err, "attachment_id", a.ID())
		return nil, err
	}

	if !a.Inline() {
		if err := uc.store.Remove(ctx, a.StorageURL()); err != nil {
			uc.logger.Warnw("failed to remove stored file", "error", err, "attachment_id", a.ID())
		}
	}

	uc.logger.Infow("attachment deleted",
		"attachment_id", a.ID(),
		"ticket_id", a.TicketID(),
		"request_id", request.ID(),
	)

	return &ConfirmDeletionResult{
		AttachmentID: a.ID(),
		FileName:     a.FileName(),
		TicketID:     a.TicketID(),
	}, nil
}
