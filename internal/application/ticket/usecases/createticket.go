package usecases

import (
	"context"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	BrandName      string
	Description    string
	IssueType      string
	ExpectedOutput string
	Priority       string
	CreatorID      uint
}

type CreateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	userRepo     user.UserRepository
	numberGen    ticket.NumberGenerator
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	userRepo user.UserRepository,
	numberGen ticket.NumberGenerator,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		numberGen:    numberGen,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*TicketResult, error) {
	if cmd.CreatorID == 0 {
		return nil, errors.NewValidationError("creator ID is required")
	}

	creator, err := uc.userRepo.FindByID(ctx, cmd.CreatorID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("creator not found")
		}
		uc.logger.Errorw("failed to load creator", "error", err, "user_id", cmd.CreatorID)
		return nil, err
	}

	priority := vo.Priority(cmd.Priority)
	if cmd.Priority == "" {
		priority = vo.PriorityMedium
	}

	newTicket, err := ticket.NewTicket(
		cmd.BrandName,
		cmd.Description,
		cmd.IssueType,
		cmd.ExpectedOutput,
		priority,
		cmd.CreatorID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		number, err := uc.numberGen.Generate(txCtx, creator.Role())
		if err != nil {
			return err
		}
		if err := newTicket.SetNumber(number); err != nil {
			return err
		}

		if err := uc.ticketRepo.Save(txCtx, newTicket); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(newTicket.ID(), &cmd.CreatorID, ticket.ActionCreated, "", map[string]interface{}{
			"number":   newTicket.Number(),
			"priority": newTicket.Priority().String(),
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to create ticket", "error", err, "creator_id", cmd.CreatorID)
		return nil, err
	}

	uc.logger.Infow("ticket created", "ticket_id", newTicket.ID(), "number", newTicket.Number())

	return newTicketResult(newTicket), nil
}
