package usecases

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"stagedesk/internal/application/ticket/testutil"
	"stagedesk/internal/domain/ticket"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/domain/user"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
)

func createTestUser(t *testing.T, repo *testutil.MockUserRepository, email string, role authorization.UserRole) *user.User {
	t.Helper()
	u, err := user.NewUser("uuid-"+email, email, "hashed-password", strings.Split(email, "@")[0], role)
	if err != nil {
		t.Fatalf("NewUser() error = %v", err)
	}
	repo.AddUser(u)
	return u
}

func createTestTicket(t *testing.T, repo *testutil.MockTicketRepository, number string, priority vo.Priority, createdBy uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Acme Store", "Checkout page renders a blank screen", "bug", "Checkout completes", priority, createdBy)
	if err != nil {
		t.Fatalf("NewTicket() error = %v", err)
	}
	if err := tk.SetNumber(number); err != nil {
		t.Fatalf("SetNumber() error = %v", err)
	}
	repo.AddTicket(tk)
	return tk
}

func TestCreateTicket_Success(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()
	numberGen := ticket.NewDefaultNumberGenerator()
	txManager := testutil.NewTestTxManager(t)
	log := testutil.NewMockLogger()

	creator := createTestUser(t, userRepo, "growth1@example.com", authorization.RoleGrowth)

	uc := NewCreateTicketUseCase(ticketRepo, activityRepo, userRepo, numberGen, txManager, log)

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		BrandName:      "Acme Store",
		Description:    "Checkout page renders a blank screen",
		IssueType:      "bug",
		ExpectedOutput: "Checkout completes",
		Priority:       "high",
		CreatorID:      creator.ID(),
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	if result.Status != string(vo.StatusOpen) {
		t.Errorf("result.Status = %v, want %v", result.Status, vo.StatusOpen)
	}
	if result.Priority != "high" {
		t.Errorf("result.Priority = %v, want high", result.Priority)
	}
	if !strings.HasPrefix(result.Number, "GROW-") {
		t.Errorf("result.Number = %v, want GROW- prefix", result.Number)
	}

	saved, err := ticketRepo.FindByNumber(context.Background(), result.Number)
	if err != nil {
		t.Fatalf("ticket was not saved: %v", err)
	}

	activities := activityRepo.ActivitiesFor(saved.ID())
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	if activities[0].Action() != ticket.ActionCreated {
		t.Errorf("activity action = %v, want %v", activities[0].Action(), ticket.ActionCreated)
	}
}

func TestCreateTicket_DefaultsToMediumPriority(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()
	creator := createTestUser(t, userRepo, "ops1@example.com", authorization.RoleOps)

	uc := NewCreateTicketUseCase(ticketRepo, activityRepo, userRepo, ticket.NewDefaultNumberGenerator(), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), CreateTicketCommand{
		BrandName:   "Acme Store",
		Description: "Report export is slow",
		IssueType:   "performance",
		CreatorID:   creator.ID(),
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Priority != string(vo.PriorityMedium) {
		t.Errorf("result.Priority = %v, want medium", result.Priority)
	}
	if !strings.HasPrefix(result.Number, "OPS-") {
		t.Errorf("result.Number = %v, want OPS- prefix", result.Number)
	}
}

func TestCreateTicket_UnknownCreator(t *testing.T) {
	uc := NewCreateTicketUseCase(
		testutil.NewMockTicketRepository(),
		testutil.NewMockActivityRepository(),
		testutil.NewMockUserRepository(),
		ticket.NewDefaultNumberGenerator(),
		testutil.NewTestTxManager(t),
		testutil.NewMockLogger(),
	)

	_, err := uc.Execute(context.Background(), CreateTicketCommand{
		BrandName:   "Acme Store",
		Description: "desc",
		IssueType:   "bug",
		CreatorID:   42,
	})
	assertErrorType(t, err, errors.ErrorTypeNotFound)
}

// TestTicketLifecycle_FullLoop walks a ticket through the complete
// resolve/reopen/resolve/close loop and checks the state and the audit trail
// after every step.
func TestTicketLifecycle_FullLoop(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()
	txManager := testutil.NewTestTxManager(t)
	notifier := testutil.NewMockNotifier()
	log := testutil.NewMockLogger()
	visibility := NewVisibilityResolver(userRepo)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityHigh, creator.ID())
	actor := creator.Actor()

	resolve := NewResolveTicketUseCase(ticketRepo, activityRepo, userRepo, visibility, txManager, notifier, log)
	reopen := NewReopenTicketUseCase(ticketRepo, activityRepo, visibility, txManager, log)
	closeUC := NewCloseTicketUseCase(ticketRepo, activityRepo, visibility, txManager, log)

	// open -> processed
	result, err := resolve.Execute(context.Background(), ResolveTicketCommand{
		Number:  tk.Number(),
		Actor:   actor,
		Remarks: "Cleared the CDN cache",
	})
	if err != nil {
		t.Fatalf("resolve: unexpected error = %v", err)
	}
	if result.Status != string(vo.StatusProcessed) {
		t.Fatalf("status after resolve = %v, want processed", result.Status)
	}
	if result.PrimaryResolutionRemarks != "Cleared the CDN cache" {
		t.Errorf("primary remarks = %q, want first resolution snapshot", result.PrimaryResolutionRemarks)
	}

	// processed -> re-opened
	result, err = reopen.Execute(context.Background(), ReopenTicketCommand{
		Number: tk.Number(),
		Actor:  actor,
		Reason: "Still blank on Safari",
	})
	if err != nil {
		t.Fatalf("reopen: unexpected error = %v", err)
	}
	if result.Status != string(vo.StatusReopened) {
		t.Fatalf("status after reopen = %v, want re-opened", result.Status)
	}

	// re-opened -> processed; primary remarks stay frozen
	result, err = resolve.Execute(context.Background(), ResolveTicketCommand{
		Number:  tk.Number(),
		Actor:   actor,
		Remarks: "Fixed the Safari-only script error",
	})
	if err != nil {
		t.Fatalf("second resolve: unexpected error = %v", err)
	}
	if result.ResolutionRemarks != "Fixed the Safari-only script error" {
		t.Errorf("resolution remarks = %q, want latest remarks", result.ResolutionRemarks)
	}
	if result.PrimaryResolutionRemarks != "Cleared the CDN cache" {
		t.Errorf("primary remarks = %q, want unchanged first snapshot", result.PrimaryResolutionRemarks)
	}

	// processed -> resolved
	result, err = closeUC.Execute(context.Background(), CloseTicketCommand{
		Number:            tk.Number(),
		Actor:             actor,
		AcceptanceRemarks: "Verified on Safari and Chrome",
	})
	if err != nil {
		t.Fatalf("close: unexpected error = %v", err)
	}
	if result.Status != string(vo.StatusResolved) {
		t.Fatalf("status after close = %v, want resolved", result.Status)
	}
	if result.ResolvedAt == nil {
		t.Error("ResolvedAt should be set after close")
	}

	// resolved is terminal
	_, err = reopen.Execute(context.Background(), ReopenTicketCommand{
		Number: tk.Number(),
		Actor:  actor,
		Reason: "one more try",
	})
	assertErrorType(t, err, errors.ErrorTypeInvalidState)

	activities := activityRepo.ActivitiesFor(tk.ID())
	wantActions := []ticket.Action{
		ticket.ActionResolutionAdded,
		ticket.ActionReopened,
		ticket.ActionResolutionAdded,
		ticket.ActionClosed,
	}
	if len(activities) != len(wantActions) {
		t.Fatalf("expected %d activities, got %d", len(wantActions), len(activities))
	}
	for i, want := range wantActions {
		if activities[i].Action() != want {
			t.Errorf("activity[%d] = %v, want %v", i, activities[i].Action(), want)
		}
	}
}

func TestResolveTicket_RequiresRemarks(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0002", vo.PriorityLow, creator.ID())

	uc := NewResolveTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), userRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockNotifier(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ResolveTicketCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
	})
	assertErrorType(t, err, errors.ErrorTypeValidation)
}

func TestResolveTicket_RecordsAttachmentsInActivity(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	worker := createTestUser(t, userRepo, "worker@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0007", vo.PriorityMedium, creator.ID())
	if err := tk.Assign(worker.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	uc := NewResolveTicketUseCase(ticketRepo, activityRepo, userRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockNotifier(), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ResolveTicketCommand{
		Number:      tk.Number(),
		Actor:       worker.Actor(),
		Remarks:     "replaced the broken embed",
		Attachments: []uint{11, 12},
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	activities := activityRepo.ActivitiesFor(tk.ID())
	if len(activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(activities))
	}
	attached, ok := activities[0].Payload()["attachments"].([]uint)
	if !ok || len(attached) != 2 || attached[0] != 11 || attached[1] != 12 {
		t.Errorf("payload attachments = %v, want [11 12]", activities[0].Payload()["attachments"])
	}
}

func TestResolveTicket_NotifiesCreator(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	worker := createTestUser(t, userRepo, "worker@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0003", vo.PriorityMedium, creator.ID())
	if err := tk.Assign(worker.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	uc := NewResolveTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), userRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), notifier, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ResolveTicketCommand{
		Number:  tk.Number(),
		Actor:   worker.Actor(),
		Remarks: "done",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	calls := notifier.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(calls))
	}
	if calls[0].Kind != "ticket_resolved" || calls[0].To != creator.Email() {
		t.Errorf("notification = %+v, want ticket_resolved to creator", calls[0])
	}
}

func TestResolveTicket_NotificationFailureDoesNotFail(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()
	notifier.SetError(fmt.Errorf("smtp unreachable"))

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "OPS-20260830-0001", vo.PriorityMedium, creator.ID())

	uc := NewResolveTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), userRepo, NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), notifier, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), ResolveTicketCommand{
		Number:  tk.Number(),
		Actor:   creator.Actor(),
		Remarks: "rebuilt the index",
	})
	if err != nil {
		t.Fatalf("Execute() should not fail on notification error, got %v", err)
	}
	if result.Status != string(vo.StatusProcessed) {
		t.Errorf("status = %v, want processed", result.Status)
	}
}

func TestReopenTicket_RequiresReason(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0004", vo.PriorityLow, creator.ID())

	uc := NewReopenTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ReopenTicketCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
	})
	assertErrorType(t, err, errors.ErrorTypeValidation)
}

func TestCloseTicket_InvalidFromOpen(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0005", vo.PriorityLow, creator.ID())

	uc := NewCloseTicketUseCase(ticketRepo, testutil.NewMockActivityRepository(), NewVisibilityResolver(userRepo), testutil.NewTestTxManager(t), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), CloseTicketCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
	})
	assertErrorType(t, err, errors.ErrorTypeInvalidState)
}

func TestForceStatus_AdminOnly(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	activityRepo := testutil.NewMockActivityRepository()
	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	admin := createTestUser(t, userRepo, "admin@example.com", authorization.RoleAdmin)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0006", vo.PriorityUrgent, creator.ID())

	uc := NewForceStatusUseCase(ticketRepo, activityRepo, testutil.NewTestTxManager(t), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ForceStatusCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
		Status: "closed",
	})
	assertErrorType(t, err, errors.ErrorTypeForbidden)

	result, err := uc.Execute(context.Background(), ForceStatusCommand{
		Number: tk.Number(),
		Actor:  admin.Actor(),
		Status: "closed",
		Reason: "duplicate of another ticket",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Status != string(vo.StatusClosed) {
		t.Errorf("status = %v, want closed", result.Status)
	}

	activities := activityRepo.ActivitiesFor(tk.ID())
	if len(activities) != 1 || activities[0].Action() != ticket.ActionStatusForced {
		t.Errorf("expected one status_forced activity, got %+v", activities)
	}
}

func TestDeleteTicket_AdminOnly(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleOps)
	admin := createTestUser(t, userRepo, "admin@example.com", authorization.RoleAdmin)
	tk := createTestTicket(t, ticketRepo, "OPS-20260830-0002", vo.PriorityLow, creator.ID())

	uc := NewDeleteTicketUseCase(ticketRepo, testutil.NewTestTxManager(t), testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), DeleteTicketCommand{Number: tk.Number(), Actor: creator.Actor()})
	assertErrorType(t, err, errors.ErrorTypeForbidden)

	_, err = uc.Execute(context.Background(), DeleteTicketCommand{Number: tk.Number(), Actor: admin.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}

	_, err = ticketRepo.FindByNumber(context.Background(), tk.Number())
	if err == nil {
		t.Error("ticket should be gone after delete")
	}
}

func assertErrorType(t *testing.T, err error, want errors.ErrorType) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T: %v", err, err)
	}
	if appErr.Type != want {
		t.Errorf("error type = %v, want %v", appErr.Type, want)
	}
}
