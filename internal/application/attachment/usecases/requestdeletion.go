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

type RequestDeletionCommand struct {
	AttachmentID uint
	Actor        authorization.Actor
	Reason       string
}

// RequestDeletionUseCase opens a deletion request for an attachment. The
// request is routed to the opposite team for review; only one open request
// may exist per attachment.
type RequestDeletionUseCase struct {
	attachmentRepo attachment.AttachmentRepository
	requestRepo    attachment.DeletionRequestRepository
	ticketRepo     ticket.TicketRepository
	userRepo       user.UserRepository
	approverPolicy attachment.ApproverPolicy
	logger         logger.Interface
}

func NewRequestDeletionUseCase(
	attachmentRepo attachment.AttachmentRepository,
	requestRepo attachment.DeletionRequestRepository,
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	logger logger.Interface,
) *RequestDeletionUseCase {
	return &RequestDeletionUseCase{
		attachmentRepo: attachmentRepo,
		requestRepo:    requestRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		approverPolicy: attachment.DefaultApproverPolicy,
		logger:         logger,
	}
}

func (uc *RequestDeletionUseCase) Execute(ctx context.Context, cmd RequestDeletionCommand) (*DeletionRequestResult, error) {
	if cmd.AttachmentID == 0 {
		return nil, errors.NewValidationError("attachment ID is required")
	}
	if len(cmd.Reason) == 0 {
		return nil, errors.NewValidationError("deletion reason is required")
	}

	a, err := uc.attachmentRepo.FindByID(ctx, cmd.AttachmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("attachment not found")
		}
		return nil, err
	}

	t, err := uc.ticketRepo.FindByID(ctx, a.TicketID())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	if !uc.canRequest(cmd.Actor, a, t) {
		return nil, errors.NewForbiddenError("only the uploader, the ticket creator or an admin may request deletion")
	}

	open, err := uc.requestRepo.HasOpenRequest(ctx, a.ID())
	if err != nil {
		return nil, err
	}
	if open {
		return nil, errors.NewConflictError("an open deletion request already exists for this attachment")
	}

	creator, err := uc.userRepo.FindByID(ctx, t.CreatedBy())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket creator not found")
		}
		return nil, err
	}

	approverRole := uc.approverPolicy(cmd.Actor.Role, creator.Role())
	request, err := attachment.NewDeletionRequest(a.ID(), t.ID(), cmd.Actor.ID, cmd.Actor.Role, approverRole, cmd.Reason)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.requestRepo.Save(ctx, request); err != nil {
		uc.logger.Errorw("failed to save deletion request", "error", err, "attachment_id", a.ID())
		return nil, err
	}

	uc.logger.Infow("deletion requested",
		"attachment_id", a.ID(),
		"ticket_id", t.ID(),
		"requester_id", cmd.Actor.ID,
		"approver_role", approverRole.String(),
	)

	return newDeletionRequestResult(request), nil
}

func (uc *RequestDeletionUseCase) canRequest(actor authorization.Actor, a *attachment.Attachment, t *ticket.Ticket) bool {
	if actor.Role.IsAdmin() {
		return true
	}
	return actor.ID == a.UploadedBy() || actor.ID == t.CreatedBy()
}
