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

type DeleteTicketCommand struct {
	Number string
	Actor  authorization.Actor
}

type DeleteTicketResult struct {
	Number string
}

// DeleteTicketUseCase hard-deletes a ticket. Admin only; attachments and
// history rows are application-managed, so they go in the same transaction.
type DeleteTicketUseCase struct {
	ticketRepo ticket.TicketRepository
	txManager  *db.TransactionManager
	logger     logger.Interface
}

func NewDeleteTicketUseCase(
	ticketRepo ticket.TicketRepository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		ticketRepo: ticketRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

func (uc *DeleteTicketUseCase) Execute(ctx context.Context, cmd DeleteTicketCommand) (*DeleteTicketResult, error) {
	if !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only admin may delete tickets")
	}
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, cmd.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return uc.ticketRepo.Delete(txCtx, t.ID())
	})
	if err != nil {
		uc.logger.Errorw("failed to delete ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.logger.Infow("ticket deleted", "number", cmd.Number, "actor_id", cmd.Actor.ID)

	return &DeleteTicketResult{Number: cmd.Number}, nil
}
