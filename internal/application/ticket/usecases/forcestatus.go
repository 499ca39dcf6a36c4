package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type ForceStatusCommand struct {
	Number string
	Actor  authorization.Actor
	Status string
	Reason string
}

// ForceStatusUseCase is the administrative override: any valid status may be
// set regardless of the state machine. The route is admin-gated; the check
// here is the last line of defense.
type ForceStatusUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewForceStatusUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ForceStatusUseCase {
	return &ForceStatusUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *ForceStatusUseCase) Execute(ctx context.Context, cmd ForceStatusCommand) (*TicketResult, error) {
	if !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only admin may force ticket status")
	}
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}

	status, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, cmd.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	previousStatus := t.Status()
	if err := t.ForceStatus(status); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, ticket.ActionStatusForced, cmd.Reason, map[string]interface{}{
			"from_status": previousStatus.String(),
			"to_status":   status.String(),
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to force ticket status", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.logger.Infow("ticket status forced",
		"number", cmd.Number,
		"from", previousStatus.String(),
		"to", status.String(),
		"actor_id", cmd.Actor.ID)

	return newTicketResult(t), nil
}
