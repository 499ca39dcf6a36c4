package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

// Notifier is the slice of the notification service the ticket use cases
// need. Delivery is best-effort.
type Notifier interface {
	NotifyTicketResolved(to string, t *ticket.Ticket) error
}

type ResolveTicketCommand struct {
	Number      string
	Actor       authorization.Actor
	Remarks     string
	Attachments []uint
}

type ResolveTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	userRepo     user.UserRepository
	visibility   *VisibilityResolver
	txManager    *db.TransactionManager
	notifier     Notifier
	logger       logger.Interface
}

func NewResolveTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	userRepo user.UserRepository,
	visibility *VisibilityResolver,
	txManager *db.TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ResolveTicketUseCase {
	return &ResolveTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		visibility:   visibility,
		txManager:    txManager,
		notifier:     notifier,
		logger:       logger,
	}
}

func (uc *ResolveTicketUseCase) Execute(ctx context.Context, cmd ResolveTicketCommand) (*TicketResult, error) {
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}
	if len(cmd.Remarks) == 0 {
		return nil, errors.NewValidationError("resolution remarks are required")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, cmd.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	if err := uc.visibility.EnsureVisible(ctx, cmd.Actor, t); err != nil {
		return nil, err
	}

	previousStatus := t.Status()
	if err := t.Resolve(cmd.Remarks, cmd.Actor.ID); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		payload := map[string]interface{}{
			"from_status": previousStatus.String(),
			"to_status":   t.Status().String(),
			"attachments": cmd.Attachments,
		}
		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, ticket.ActionResolutionAdded, cmd.Remarks, payload)
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to resolve ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.notifyCreator(ctx, t)

	uc.logger.Infow("ticket resolved", "number", cmd.Number, "actor_id", cmd.Actor.ID)

	return newTicketResult(t), nil
}

func (uc *ResolveTicketUseCase) notifyCreator(ctx context.Context, t *ticket.Ticket) {
	creator, err := uc.userRepo.FindByID(ctx, t.CreatedBy())
	if err != nil {
		uc.logger.Warnw("failed to load creator for notification", "error", err, "number", t.Number())
		return
	}
	if err := uc.notifier.NotifyTicketResolved(creator.Email(), t); err != nil {
		uc.logger.Warnw("failed to send resolution notification", "error", err, "number", t.Number())
	}
}
