package usecases

import (
	"context"
	"testing"

	"stagedesk/internal/application/ticket/testutil"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
)

func TestUpdateTicket_PatchesFieldsAndRecordsActivity(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0040", vo.PriorityLow, creator.ID())

	uc := NewUpdateTicketUseCase(ticketRepo, activityRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	newDescription := "Blank screen only when a coupon is applied"
	newPriority := "urgent"
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		Number:      tk.Number(),
		Actor:       creator.Actor(),
		Description: &newDescription,
		Priority:    &newPriority,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Description != newDescription {
		t.Errorf("Description = %q, want patched value", result.Description)
	}
	if result.Priority != "urgent" {
		t.Errorf("Priority = %v, want urgent", result.Priority)
	}

	activities := activityRepo.ActivitiesFor(tk.ID())
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	fields, ok := activities[0].Payload()["fields"].([]string)
	if !ok || len(fields) != 2 {
		t.Errorf("payload fields = %v, want [description priority]", activities[0].Payload()["fields"])
	}
}

func TestUpdateTicket_PatchesCurrentAssignee(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	assignee := createTestUser(t, userRepo, "assignee@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0043", vo.PriorityLow, creator.ID())

	uc := NewUpdateTicketUseCase(ticketRepo, activityRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	assigneeID := assignee.ID()
	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		Number:          tk.Number(),
		Actor:           creator.Actor(),
		CurrentAssignee: &assigneeID,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.CurrentAssignee == nil || *result.CurrentAssignee != assigneeID {
		t.Errorf("CurrentAssignee = %v, want %d", result.CurrentAssignee, assigneeID)
	}

	activities := activityRepo.ActivitiesFor(tk.ID())
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	fields, ok := activities[0].Payload()["fields"].([]string)
	if !ok || len(fields) != 1 || fields[0] != "current_assignee" {
		t.Errorf("payload fields = %v, want [current_assignee]", activities[0].Payload()["fields"])
	}
}

func TestUpdateTicket_EmptyPatchIsNoOp(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0041", vo.PriorityLow, creator.ID())

	uc := NewUpdateTicketUseCase(ticketRepo, activityRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), UpdateTicketCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Number != tk.Number() {
		t.Errorf("Number = %v, want %v", result.Number, tk.Number())
	}
	if got := len(activityRepo.ActivitiesFor(tk.ID())); got != 0 {
		t.Errorf("expected no activities for an empty patch, got %d", got)
	}
}

func TestUpdateTicket_InvalidPriority(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0042", vo.PriorityLow, creator.ID())

	uc := NewUpdateTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	bogus := "critical"
	_, err := uc.Execute(context.Background(), UpdateTicketCommand{
		Number:   tk.Number(),
		Actor:    creator.Actor(),
		Priority: &bogus,
	})
	assertErrorType(t, err, errors.ErrorTypeValidation)
}
