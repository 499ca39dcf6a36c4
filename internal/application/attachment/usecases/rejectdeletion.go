package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type RejectDeletionCommand struct {
	RequestID uint
	Actor     authorization.Actor
	Reason    string
}

type RejectDeletionUseCase struct {
	requestRepo    attachment.DeletionRequestRepository
	attachmentRepo attachment.AttachmentRepository
	ticketRepo     ticket.TicketRepository
	userRepo       user.UserRepository
	notifier       Notifier
	logger         logger.Interface
}

func NewRejectDeletionUseCase(
	requestRepo attachment.DeletionRequestRepository,
	attachmentRepo attachment.AttachmentRepository,
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	notifier Notifier,
	logger logger.Interface,
) *RejectDeletionUseCase {
	return &RejectDeletionUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *RejectDeletionUseCase) Execute(ctx context.Context, cmd RejectDeletionCommand) (*DeletionRequestResult, error) {
	if cmd.RequestID == 0 {
		return nil, errors.NewValidationError("deletion request ID is required")
	}

	request, err := uc.requestRepo.FindByID(ctx, cmd.RequestID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("deletion request not found")
		}
		return nil, err
	}

	if !request.CanBeDecidedBy(cmd.Actor.Role) {
		return nil, errors.NewForbiddenError("deletion request is assigned to another team")
	}

	if err := request.Reject(cmd.Actor.ID, cmd.Reason); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		uc.logger.Errorw("failed to update deletion request", "error", err, "request_id", request.ID())
		return nil, err
	}

	uc.logger.Infow("deletion request rejected",
		"request_id", request.ID(),
		"attachment_id", request.AttachmentID(),
		"decided_by", cmd.Actor.ID,
	)

	uc.notifyRequester(ctx, request, cmd.Reason)

	return newDeletionRequestResult(request), nil
}

func (uc *RejectDeletionUseCase) notifyRequester(ctx context.Context, request *attachment.DeletionRequest, reason string) {
	requester, err := uc.userRepo.FindByID(ctx, request.RequesterID())
	if err != nil {
		uc.logger.Warnw("failed to load requester for notification", "error", err, "request_id", request.ID())
		return
	}

	number := ""
	if t, err := uc.ticketRepo.FindByID(ctx, request.TicketID()); err == nil {
		number = t.Number()
	}
	fileName := ""
	if a, err := uc.attachmentRepo.FindByID(ctx, request.AttachmentID()); err == nil {
		fileName = a.FileName()
	}

	if err := uc.notifier.NotifyDeletionRejected(requester.Email(), number, fileName, reason); err != nil {
		uc.logger.Warnw("failed to send deletion rejection notification", "error", err, "request_id", request.ID())
	}
}
