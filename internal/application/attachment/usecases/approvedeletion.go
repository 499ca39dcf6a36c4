package usecases

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

// Notifier delivers deletion-workflow mail. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	NotifyDeletionApproved(to, ticketNumber, fileName, otpCode string) error
	NotifyDeletionRejected(to, ticketNumber, fileName, reason string) error
}

type ApproveDeletionCommand struct {
	RequestID uint
	Actor     authorization.Actor
}

type ApproveDeletionResult struct {
	Request *DeletionRequestResult `json:"request"`
	// OTPCode is returned exactly once, at approval time. Only its hash is
	// stored.
	OTPCode   string    `json:"otp_code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ApproveDeletionUseCase lets a member of the assigned approver team approve
// a pending request, minting the one-time confirmation code the requester
// must redeem.
type ApproveDeletionUseCase struct {
	requestRepo    attachment.DeletionRequestRepository
	attachmentRepo attachment.AttachmentRepository
	ticketRepo     ticket.TicketRepository
	userRepo       user.UserRepository
	notifier       Notifier
	logger         logger.Interface
}

func NewApproveDeletionUseCase(
	requestRepo attachment.DeletionRequestRepository,
	attachmentRepo attachment.AttachmentRepository,
	ticketRepo ticket.TicketRepository,
	userRepo user.UserRepository,
	notifier Notifier,
	logger logger.Interface,
) *ApproveDeletionUseCase {
	return &ApproveDeletionUseCase{
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		ticketRepo:     ticketRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *ApproveDeletionUseCase) Execute(ctx context.Context, cmd ApproveDeletionCommand) (*ApproveDeletionResult, error) {
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

	otpCode, err := attachment.GenerateOTP(constants.DeletionOTPLength)
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().UTC().Add(attachment.OTPExpiry)

	if err := request.Approve(cmd.Actor.ID, attachment.HashOTP(otpCode), expiresAt); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	if err := uc.requestRepo.Update(ctx, request); err != nil {
		uc.logger.Errorw("failed to update deletion request", "error", err, "request_id", request.ID())
		return nil, err
	}

	uc.logger.Infow("deletion request approved",
		"request_id", request.ID(),
		"attachment_id", request.AttachmentID(),
		"decided_by", cmd.Actor.ID,
	)

	uc.notifyRequester(ctx, request, otpCode)

	return &ApproveDeletionResult{
		Request:   newDeletionRequestResult(request),
		OTPCode:   otpCode,
		ExpiresAt: expiresAt,
	}, nil
}

func (uc *ApproveDeletionUseCase) notifyRequester(ctx context.Context, request *attachment.DeletionRequest, otpCode string) {
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

	if err := uc.notifier.NotifyDeletionApproved(requester.Email(), number, fileName, otpCode); err != nil {
		uc.logger.Warnw("failed to send deletion approval notification", "error", err, "request_id", request.ID())
	}
}
