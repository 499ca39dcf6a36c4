package usecases

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type AutoAssignTicketCommand struct {
	Number string
	Actor  authorization.Actor
	// Role is the team the assignee is drawn from.
	Role string
}

type AutoAssignTicketResult struct {
	Number       string
	AssignedTo   uint
	AssigneeName string
	// ActiveLoad is the assignee's in-flight ticket count before this
	// assignment.
	ActiveLoad int64
}

// workloadStatuses are the states that count toward a member's live load.
var workloadStatuses = []vo.TicketStatus{vo.StatusOpen, vo.StatusProcessed, vo.StatusReopened}

// AutoAssignTicketUseCase picks the least-loaded eligible member of a team
// and assigns the ticket to them. The candidate rows are locked for the
// duration of the transaction so concurrent calls cannot pick the same
// least-loaded user from a stale count.
type AutoAssignTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	assignmentRepo ticket.AssignmentRepository
	activityRepo   ticket.ActivityRepository
	userRepo       user.UserRepository
	txManager      *db.TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewAutoAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	assignmentRepo ticket.AssignmentRepository,
	activityRepo ticket.ActivityRepository,
	userRepo user.UserRepository,
	txManager *db.TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AutoAssignTicketUseCase {
	return &AutoAssignTicketUseCase{
		ticketRepo:     ticketRepo,
		assignmentRepo: assignmentRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *AutoAssignTicketUseCase) Execute(ctx context.Context, cmd AutoAssignTicketCommand) (*AutoAssignTicketResult, error) {
	if !cmd.Actor.IsManager && !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may assign tickets")
	}
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}
	role := authorization.UserRole(cmd.Role)
	if !role.IsValid() {
		return nil, errors.NewValidationError("invalid role")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, cmd.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	previous := t.AssignedTo()

	var assignee *user.User
	var activeLoad int64

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		candidates, err := uc.userRepo.FindAssignableByRole(txCtx, role, true)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return errors.NewNotFoundError("no eligible assignee")
		}

		ids := make([]uint, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID()
		}
		counts, err := uc.ticketRepo.CountByAssigneeInStatuses(txCtx, ids, workloadStatuses)
		if err != nil {
			return err
		}

		// Candidates are ordered by account creation, so the first minimum
		// wins ties.
		assignee = candidates[0]
		activeLoad = counts[assignee.ID()]
		for _, c := range candidates[1:] {
			if counts[c.ID()] < activeLoad {
				assignee = c
				activeLoad = counts[c.ID()]
			}
		}

		if err := t.Assign(assignee.ID()); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		record, err := ticket.NewAssignment(t.ID(), assignee.ID(), cmd.Actor.ID, previous, true, "")
		if err != nil {
			return err
		}
		if err := uc.assignmentRepo.Save(txCtx, record); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, assignmentAction(previous != nil),
			fmt.Sprintf("auto-assigned to %s", assignee.Name()), map[string]interface{}{
				"assigned_to": assignee.ID(),
				"auto":        true,
			})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return nil, err
		}
		uc.logger.Errorw("failed to auto-assign ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	if err := uc.notifier.NotifyTicketAssigned(assignee.Email(), t, "auto-assignment"); err != nil {
		uc.logger.Warnw("failed to send assignment notification", "error", err, "number", t.Number())
	}

	uc.logger.Infow("ticket auto-assigned",
		"number", cmd.Number,
		"assigned_to", assignee.ID(),
		"active_load", activeLoad,
	)

	return &AutoAssignTicketResult{
		Number:       t.Number(),
		AssignedTo:   assignee.ID(),
		AssigneeName: assignee.Name(),
		ActiveLoad:   activeLoad,
	}, nil
}
