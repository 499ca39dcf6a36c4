package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ReopenTicketCommand struct {
	Number string
	Actor  authorization.Actor
	Reason string
}

type ReopenTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	visibility   *VisibilityResolver
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewReopenTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	visibility *VisibilityResolver,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ReopenTicketUseCase {
	return &ReopenTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		visibility:   visibility,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *ReopenTicketUseCase) Execute(ctx context.Context, cmd ReopenTicketCommand) (*TicketResult, error) {
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}
	if len(cmd.Reason) == 0 {
		return nil, errors.NewValidationError("reopen reason is required")
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
	if err := t.Reopen(cmd.Reason, cmd.Actor.ID); err != nil {
		return nil, errors.NewInvalidStateError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, ticket.ActionReopened, cmd.Reason, map[string]interface{}{
			"from_status": previousStatus.String(),
			"to_status":   t.Status().String(),
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to reopen ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.logger.Infow("ticket reopened", "number", cmd.Number, "actor_id", cmd.Actor.ID)

	return newTicketResult(t), nil
}
