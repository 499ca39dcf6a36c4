package usecases

import (
	"context"
	"testing"

	"stagedesk/internal/application/ticket/testutil"
	ticketuc "stagedesk/internal/application/ticket/usecases"
	vo "stagedesk/internal/domain/ticket/valueobjects"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
)

func TestGetIncomingTickets_OppositeTeamUnassignedOnly(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	growthManager := createTestManager(t, userRepo, "gmanager@example.com", authorization.RoleGrowth)
	opsMember := createTestUser(t, userRepo, "ops1@example.com", authorization.RoleOps)
	growthMember := createTestUser(t, userRepo, "growth1@example.com", authorization.RoleGrowth)

	// Incoming for the growth manager: ops-created, open, unassigned.
	incoming := createTestTicket(t, ticketRepo, "OPS-20260830-0001", vo.PriorityHigh, opsMember.ID())
	// Assigned ops ticket is not incoming anymore.
	taken := createTestTicket(t, ticketRepo, "OPS-20260830-0002", vo.PriorityLow, opsMember.ID())
	if err := taken.Assign(growthMember.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
	// Own-team ticket is not incoming.
	createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityMedium, growthMember.ID())

	uc := NewGetIncomingTicketsUseCase(ticketRepo, userRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetIncomingTicketsQuery{Actor: growthManager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("Total = %d, want 1", result.Total)
	}
	if result.Tickets[0].Number != incoming.Number() {
		t.Errorf("Number = %v, want %v", result.Tickets[0].Number, incoming.Number())
	}
}

func TestGetOutgoingTickets_OwnTeamCreations(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}
	outsider := createTestUser(t, userRepo, "outsider@example.com", authorization.RoleOps)

	createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityMedium, manager.ID())
	createTestTicket(t, ticketRepo, "GROW-20260830-0002", vo.PriorityMedium, report.ID())
	createTestTicket(t, ticketRepo, "OPS-20260830-0001", vo.PriorityMedium, outsider.ID())

	uc := NewGetOutgoingTicketsUseCase(ticketRepo, userRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetOutgoingTicketsQuery{Actor: manager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want the team's two tickets", result.Total)
	}
}

func TestGetUnassignedTickets_ScopedBacklog(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}

	backlog := createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityUrgent, report.ID())
	assigned := createTestTicket(t, ticketRepo, "GROW-20260830-0002", vo.PriorityLow, report.ID())
	if err := assigned.Assign(report.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	uc := NewGetUnassignedTicketsUseCase(ticketRepo, ticketuc.NewVisibilityResolver(userRepo), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetUnassignedTicketsQuery{Actor: manager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 1 || result.Tickets[0].Number != backlog.Number() {
		t.Errorf("backlog = %+v, want only %v", result.Tickets, backlog.Number())
	}
}

func TestGetTeamMetrics_CountsByStatus(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}

	createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityHigh, report.ID())
	processed := createTestTicket(t, ticketRepo, "GROW-20260830-0002", vo.PriorityHigh, report.ID())
	if err := processed.Resolve("done", report.ID()); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	uc := NewGetTeamMetricsUseCase(ticketRepo, ticketuc.NewVisibilityResolver(userRepo), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetTeamMetricsQuery{Actor: manager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 2 {
		t.Errorf("Total = %d, want 2", result.Total)
	}
	if result.ByStatus["open"] != 1 || result.ByStatus["processed"] != 1 {
		t.Errorf("ByStatus = %v, want one open and one processed", result.ByStatus)
	}
	if result.Unassigned != 2 {
		t.Errorf("Unassigned = %d, want 2", result.Unassigned)
	}
}

func TestGetTeamWorkload_PerMemberCounts(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}

	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", vo.PriorityHigh, manager.ID())
	if err := tk.Assign(report.ID()); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}

	uc := NewGetTeamWorkloadUseCase(ticketRepo, userRepo, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), GetTeamWorkloadQuery{Actor: manager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if len(result.Workloads) != 1 {
		t.Fatalf("expected 1 workload row, got %d", len(result.Workloads))
	}
	row := result.Workloads[0]
	if row.Member.ID != report.ID() {
		t.Errorf("member = %d, want %d", row.Member.ID, report.ID())
	}
	if row.ByStatus["open"] != 1 || row.Active != 1 {
		t.Errorf("workload = %+v, want one active open ticket", row)
	}
}

func TestDashboards_NonManagerForbidden(t *testing.T) {
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	member := createTestUser(t, userRepo, "member@example.com", authorization.RoleGrowth)
	visibility := ticketuc.NewVisibilityResolver(userRepo)
	log := testutil.NewMockLogger()

	_, err := NewGetTeamMetricsUseCase(ticketRepo, visibility, log).Execute(context.Background(), GetTeamMetricsQuery{Actor: member.Actor()})
	assertErrorType(t, err, errors.ErrorTypeForbidden)

	_, err = NewGetIncomingTicketsUseCase(ticketRepo, userRepo, log).Execute(context.Background(), GetIncomingTicketsQuery{Actor: member.Actor()})
	assertErrorType(t, err, errors.ErrorTypeForbidden)

	_, err = NewGetTeamUseCase(userRepo, log).Execute(context.Background(), GetTeamQuery{Actor: member.Actor()})
	assertErrorType(t, err, errors.ErrorTypeForbidden)
}

func TestToggleUserActive_DirectManagerOnly(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	otherManager := createTestManager(t, userRepo, "other@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}

	uc := NewToggleUserActiveUseCase(userRepo, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), ToggleUserActiveCommand{TargetID: report.ID(), Actor: otherManager.Actor()})
	assertErrorType(t, err, errors.ErrorTypeForbidden)

	result, err := uc.Execute(context.Background(), ToggleUserActiveCommand{TargetID: report.ID(), Actor: manager.Actor()})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.IsActive {
		t.Error("IsActive should be false after toggling an active user")
	}
}

func TestToggleAutoAssign_SelfAndManager(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()

	manager := createTestManager(t, userRepo, "manager@example.com", authorization.RoleGrowth)
	report := createTestUser(t, userRepo, "report@example.com", authorization.RoleGrowth)
	if err := report.AssignManager(manager.ID()); err != nil {
		t.Fatalf("AssignManager() error = %v", err)
	}
	stranger := createTestUser(t, userRepo, "stranger@example.com", authorization.RoleOps)

	uc := NewToggleAutoAssignUseCase(userRepo, testutil.NewMockLogger())

	// Self toggle with TargetID zero.
	result, err := uc.Execute(context.Background(), ToggleAutoAssignCommand{Actor: report.Actor(), Enabled: false})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.AutoAssignEnabled {
		t.Error("flag should be disabled after self opt-out")
	}

	// Manager toggles a team member.
	result, err = uc.Execute(context.Background(), ToggleAutoAssignCommand{TargetID: report.ID(), Actor: manager.Actor(), Enabled: true})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if !result.AutoAssignEnabled {
		t.Error("flag should be enabled after manager opt-in")
	}

	// Unrelated user may not touch the flag.
	_, err = uc.Execute(context.Background(), ToggleAutoAssignCommand{TargetID: report.ID(), Actor: stranger.Actor(), Enabled: false})
	assertErrorType(t, err, errors.ErrorTypeForbidden)
}
