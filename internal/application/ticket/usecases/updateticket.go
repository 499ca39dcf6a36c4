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

type UpdateTicketCommand struct {
	Number          string
	Actor           authorization.Actor
	BrandName       *string
	Description     *string
	IssueType       *string
	ExpectedOutput  *string
	Priority        *string
	CurrentAssignee *uint
}

type UpdateTicketUseCase struct {
	ticketRepo   ticket.TicketRepository
	activityRepo ticket.ActivityRepository
	visibility   *VisibilityResolver
	txManager    *db.TransactionManager
	logger       logger.Interface
}

func NewUpdateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	activityRepo ticket.ActivityRepository,
	visibility *VisibilityResolver,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *UpdateTicketUseCase {
	return &UpdateTicketUseCase{
		ticketRepo:   ticketRepo,
		activityRepo: activityRepo,
		visibility:   visibility,
		txManager:    txManager,
		logger:       logger,
	}
}

func (uc *UpdateTicketUseCase) Execute(ctx context.Context, cmd UpdateTicketCommand) (*TicketResult, error) {
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

	if err := uc.visibility.EnsureVisible(ctx, cmd.Actor, t); err != nil {
		return nil, err
	}

	patch, changed, err := uc.buildPatch(cmd)
	if err != nil {
		return nil, err
	}

	// Empty patch is a no-op; no activity is written.
	if patch.IsEmpty() {
		return newTicketResult(t), nil
	}

	if err := t.UpdateDetails(patch); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, ticket.ActionUpdated, "", map[string]interface{}{
			"fields": changed,
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to update ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.logger.Infow("ticket updated", "number", cmd.Number, "fields", changed)

	return newTicketResult(t), nil
}

func (uc *UpdateTicketUseCase) buildPatch(cmd UpdateTicketCommand) (ticket.TicketPatch, []string, error) {
	var patch ticket.TicketPatch
	var changed []string

	if cmd.BrandName != nil {
		patch.BrandName = cmd.BrandName
		changed = append(changed, "brand_name")
	}
	if cmd.Description != nil {
		patch.Description = cmd.Description
		changed = append(changed, "description")
	}
	if cmd.IssueType != nil {
		patch.IssueType = cmd.IssueType
		changed = append(changed, "issue_type")
	}
	if cmd.ExpectedOutput != nil {
		patch.ExpectedOutput = cmd.ExpectedOutput
		changed = append(changed, "expected_output")
	}
	if cmd.Priority != nil {
		priority := vo.Priority(*cmd.Priority)
		if !priority.IsValid() {
			return patch, nil, errors.NewValidationError("invalid priority")
		}
		patch.Priority = &priority
		changed = append(changed, "priority")
	}
	if cmd.CurrentAssignee != nil {
		patch.CurrentAssignee = cmd.CurrentAssignee
		changed = append(changed, "current_assignee")
	}

	return patch, changed, nil
}
