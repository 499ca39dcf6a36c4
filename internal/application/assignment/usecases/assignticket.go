package usecases

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

// Notifier delivers assignment notices. Failures are logged, never surfaced.
type Notifier interface {
	NotifyTicketAssigned(to string, t *ticket.Ticket, assignedByName string) error
}

type AssignTicketCommand struct {
	Number     string
	Actor      authorization.Actor
	AssigneeID uint
	Notes      string
}

type AssignTicketResult struct {
	Number           string
	AssignedTo       uint
	AssigneeName     string
	PreviousAssignee *uint
	Reassigned       bool
}

// AssignTicketUseCase sets the working assignee of a ticket. Assignment
// never moves the status; the state machine is driven by resolve/reopen/close
// only.
type AssignTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	assignmentRepo ticket.AssignmentRepository
	activityRepo   ticket.ActivityRepository
	userRepo       user.UserRepository
	txManager      *db.TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewAssignTicketUseCase(
	ticketRepo ticket.TicketRepository,
	assignmentRepo ticket.AssignmentRepository,
	activityRepo ticket.ActivityRepository,
	userRepo user.UserRepository,
	txManager *db.TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AssignTicketUseCase {
	return &AssignTicketUseCase{
		ticketRepo:     ticketRepo,
		assignmentRepo: assignmentRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *AssignTicketUseCase) Execute(ctx context.Context, cmd AssignTicketCommand) (*AssignTicketResult, error) {
	if !cmd.Actor.IsManager && !cmd.Actor.Role.IsAdmin() {
		return nil, errors.NewForbiddenError("only managers may assign tickets")
	}
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}
	if cmd.AssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, cmd.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	target, err := uc.userRepo.FindByID(ctx, cmd.AssigneeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("assignee not found")
		}
		return nil, err
	}
	if !target.IsActive() {
		return nil, errors.NewInvalidStateError("assignee account is deactivated")
	}

	previous := t.AssignedTo()
	reassigned := previous != nil

	if err := t.Assign(target.ID()); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return err
		}

		record, err := ticket.NewAssignment(t.ID(), target.ID(), cmd.Actor.ID, previous, false, cmd.Notes)
		if err != nil {
			return err
		}
		if err := uc.assignmentRepo.Save(txCtx, record); err != nil {
			return err
		}

		activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, assignmentAction(reassigned), uc.assignmentComment(txCtx, target, previous), map[string]interface{}{
			"assigned_to": target.ID(),
			"auto":        false,
		})
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		uc.logger.Errorw("failed to assign ticket", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.notifyAssignee(ctx, t, target, cmd.Actor)

	uc.logger.Infow("ticket assigned",
		"number", cmd.Number,
		"assigned_to", target.ID(),
		"reassigned", reassigned,
	)

	return &AssignTicketResult{
		Number:           t.Number(),
		AssignedTo:       target.ID(),
		AssigneeName:     target.Name(),
		PreviousAssignee: previous,
		Reassigned:       reassigned,
	}, nil
}

func assignmentAction(reassigned bool) ticket.Action {
	if reassigned {
		return ticket.ActionReassigned
	}
	return ticket.ActionAssigned
}

// assignmentComment words the audit entry, naming the previous assignee on a
// reassignment.
func (uc *AssignTicketUseCase) assignmentComment(ctx context.Context, target *user.User, previous *uint) string {
	if previous == nil {
		return fmt.Sprintf("assigned to %s", target.Name())
	}
	previousName := fmt.Sprintf("user #%d", *previous)
	if prev, err := uc.userRepo.FindByID(ctx, *previous); err == nil {
		previousName = prev.Name()
	}
	return fmt.Sprintf("reassigned from %s to %s", previousName, target.Name())
}

func (uc *AssignTicketUseCase) notifyAssignee(ctx context.Context, t *ticket.Ticket, target *user.User, actor authorization.Actor) {
	assignedByName := fmt.Sprintf("user #%d", actor.ID)
	if assigner, err := uc.userRepo.FindByID(ctx, actor.ID); err == nil {
		assignedByName = assigner.Name()
	}
	if err := uc.notifier.NotifyTicketAssigned(target.Email(), t, assignedByName); err != nil {
		uc.logger.Warnw("failed to send assignment notification", "error", err, "number", t.Number())
	}
}
