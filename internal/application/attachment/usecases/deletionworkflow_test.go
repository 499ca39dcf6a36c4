package usecases

import (
	"context"
	"testing"
	"time"

	"stagedesk/internal/application/ticket/testutil"
	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/errors"
)

func createTestAttachment(t *testing.T, repo *testutil.MockAttachmentRepository, ticketID, uploadedBy uint) *attachment.Attachment {
	t.Helper()
	a, err := attachment.NewAttachment(ticketID, "invoice.pdf", "https://files.test/tickets/1/1_invoice.pdf",
		2048, "application/pdf", uploadedBy, attachment.ContextInitial, false)
	if err != nil {
		t.Fatalf("NewAttachment() error = %v", err)
	}
	repo.AddAttachment(a)
	return a
}

func createPendingRequest(t *testing.T, repo *testutil.MockDeletionRequestRepository, a *attachment.Attachment, requester *authorization.Actor) *attachment.DeletionRequest {
	t.Helper()
	r, err := attachment.NewDeletionRequest(a.ID(), a.TicketID(), requester.ID, requester.Role,
		requester.Role.PeerRole(), "uploaded the wrong file")
	if err != nil {
		t.Fatalf("NewDeletionRequest() error = %v", err)
	}
	repo.AddRequest(r)
	return r
}

func TestRequestDeletion_RoutesToPeerTeam(t *testing.T) {
	attachmentRepo := testutil.NewMockAttachmentRepository()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewRequestDeletionUseCase(attachmentRepo, requestRepo, ticketRepo, userRepo, testutil.NewMockLogger())

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), creator.ID())

	result, err := uc.Execute(context.Background(), RequestDeletionCommand{
		AttachmentID: a.ID(),
		Actor:        creator.Actor(),
		Reason:       "contains customer data",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Status != "pending" {
		t.Errorf("status = %s, want pending", result.Status)
	}
	if result.ApproverRole != authorization.RoleOps.String() {
		t.Errorf("approver role = %s, want %s", result.ApproverRole, authorization.RoleOps)
	}
}

func TestRequestDeletion_AdminRoutedByTicketCreator(t *testing.T) {
	attachmentRepo := testutil.NewMockAttachmentRepository()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewRequestDeletionUseCase(attachmentRepo, requestRepo, ticketRepo, userRepo, testutil.NewMockLogger())

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	admin := createTestUser(t, userRepo, "admin@example.com", authorization.RoleAdmin)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), creator.ID())

	result, err := uc.Execute(context.Background(), RequestDeletionCommand{
		AttachmentID: a.ID(),
		Actor:        admin.Actor(),
		Reason:       "cleanup",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	// Admin requests go to the ticket creator's peer team.
	if result.ApproverRole != authorization.RoleOps.String() {
		t.Errorf("approver role = %s, want %s", result.ApproverRole, authorization.RoleOps)
	}
}

func TestRequestDeletion_OpenRequestConflict(t *testing.T) {
	attachmentRepo := testutil.NewMockAttachmentRepository()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewRequestDeletionUseCase(attachmentRepo, requestRepo, ticketRepo, userRepo, testutil.NewMockLogger())

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), creator.ID())
	actor := creator.Actor()
	createPendingRequest(t, requestRepo, a, &actor)

	_, err := uc.Execute(context.Background(), RequestDeletionCommand{
		AttachmentID: a.ID(),
		Actor:        actor,
		Reason:       "second attempt",
	})
	assertErrorType(t, err, errors.ErrorTypeConflict)
}

func TestRequestDeletion_ForbiddenForUnrelatedUser(t *testing.T) {
	attachmentRepo := testutil.NewMockAttachmentRepository()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewRequestDeletionUseCase(attachmentRepo, requestRepo, ticketRepo, userRepo, testutil.NewMockLogger())

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	bystander := createTestUser(t, userRepo, "bystander@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), creator.ID())

	_, err := uc.Execute(context.Background(), RequestDeletionCommand{
		AttachmentID: a.ID(),
		Actor:        bystander.Actor(),
		Reason:       "not my file anyway",
	})
	assertErrorType(t, err, errors.ErrorTypeForbidden)
}

func newApproveUseCase(t *testing.T) (*ApproveDeletionUseCase, *testutil.MockDeletionRequestRepository, *testutil.MockAttachmentRepository, *testutil.MockTicketRepository, *testutil.MockUserRepository, *testutil.MockNotifier) {
	t.Helper()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()
	uc := NewApproveDeletionUseCase(requestRepo, attachmentRepo, ticketRepo, userRepo, notifier, testutil.NewMockLogger())
	return uc, requestRepo, attachmentRepo, ticketRepo, userRepo, notifier
}

func TestApproveDeletion_MintsOTPAndNotifies(t *testing.T) {
	uc, requestRepo, attachmentRepo, ticketRepo, userRepo, notifier := newApproveUseCase(t)

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	approver := createTestUser(t, userRepo, "approver@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	actor := requester.Actor()
	request := createPendingRequest(t, requestRepo, a, &actor)

	result, err := uc.Execute(context.Background(), ApproveDeletionCommand{
		RequestID: request.ID(),
		Actor:     approver.Actor(),
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if len(result.OTPCode) != constants.DeletionOTPLength {
		t.Errorf("otp length = %d, want %d", len(result.OTPCode), constants.DeletionOTPLength)
	}
	if result.Request.Status != "approved" {
		t.Errorf("status = %s, want approved", result.Request.Status)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Error("otp expiry should be in the future")
	}

	calls := notifier.Calls()
	if len(calls) != 1 || calls[0].Kind != "deletion_approved" {
		t.Fatalf("expected one deletion_approved notification, got %v", calls)
	}
	if calls[0].To != requester.Email() {
		t.Errorf("notification sent to %s, want %s", calls[0].To, requester.Email())
	}
}

func TestApproveDeletion_WrongTeamForbidden(t *testing.T) {
	uc, requestRepo, attachmentRepo, ticketRepo, userRepo, _ := newApproveUseCase(t)

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	teammate := createTestUser(t, userRepo, "teammate@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	actor := requester.Actor()
	request := createPendingRequest(t, requestRepo, a, &actor)

	_, err := uc.Execute(context.Background(), ApproveDeletionCommand{
		RequestID: request.ID(),
		Actor:     teammate.Actor(),
	})
	assertErrorType(t, err, errors.ErrorTypeForbidden)
}

func TestApproveDeletion_AlreadyDecided(t *testing.T) {
	uc, requestRepo, attachmentRepo, ticketRepo, userRepo, _ := newApproveUseCase(t)

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	approver := createTestUser(t, userRepo, "approver@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	actor := requester.Actor()
	request := createPendingRequest(t, requestRepo, a, &actor)

	if _, err := uc.Execute(context.Background(), ApproveDeletionCommand{RequestID: request.ID(), Actor: approver.Actor()}); err != nil {
		t.Fatalf("first approval failed: %v", err)
	}
	_, err := uc.Execute(context.Background(), ApproveDeletionCommand{RequestID: request.ID(), Actor: approver.Actor()})
	assertErrorType(t, err, errors.ErrorTypeInvalidState)
}

func TestRejectDeletion_RecordsReasonAndNotifies(t *testing.T) {
	requestRepo := testutil.NewMockDeletionRequestRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	notifier := testutil.NewMockNotifier()
	uc := NewRejectDeletionUseCase(requestRepo, attachmentRepo, ticketRepo, userRepo, notifier, testutil.NewMockLogger())

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	approver := createTestUser(t, userRepo, "approver@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	actor := requester.Actor()
	request := createPendingRequest(t, requestRepo, a, &actor)

	result, err := uc.Execute(context.Background(), RejectDeletionCommand{
		RequestID: request.ID(),
		Actor:     approver.Actor(),
		Reason:    "file is still referenced in the resolution",
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Status != "rejected" {
		t.Errorf("status = %s, want rejected", result.Status)
	}
	if result.RejectionReason != "file is still referenced in the resolution" {
		t.Errorf("rejection reason = %q", result.RejectionReason)
	}

	calls := notifier.Calls()
	if len(calls) != 1 || calls[0].Kind != "deletion_rejected" {
		t.Fatalf("expected one deletion_rejected notification, got %v", calls)
	}
}

type confirmFixture struct {
	uc             *ConfirmDeletionUseCase
	requestRepo    *testutil.MockDeletionRequestRepository
	attachmentRepo *testutil.MockAttachmentRepository
	activityRepo   *testutil.MockActivityRepository
	store          *testutil.MockFileStore
	attachment     *attachment.Attachment
	request        *attachment.DeletionRequest
	requester      authorization.Actor
	otpCode        string
}

// newConfirmFixture seeds an attachment with an approved deletion request
// and returns the plaintext code minted at approval.
func newConfirmFixture(t *testing.T, expiresAt time.Time) *confirmFixture {
	t.Helper()
	requestRepo := testutil.NewMockDeletionRequestRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	activityRepo := testutil.NewMockActivityRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	store := testutil.NewMockFileStore()
	uc := NewConfirmDeletionUseCase(requestRepo, attachmentRepo, activityRepo, store, testutil.NewTestTxManager(t), testutil.NewMockLogger())

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	approver := createTestUser(t, userRepo, "approver@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	actor := requester.Actor()
	request := createPendingRequest(t, requestRepo, a, &actor)

	otpCode, err := attachment.GenerateOTP(constants.DeletionOTPLength)
	if err != nil {
		t.Fatalf("GenerateOTP() error = %v", err)
	}
	if err := request.Approve(approver.ID(), attachment.HashOTP(otpCode), expiresAt); err != nil {
		t.Fatalf("Approve() error = %v", err)
	}

	return &confirmFixture{
		uc:             uc,
		requestRepo:    requestRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		store:          store,
		attachment:     a,
		request:        request,
		requester:      actor,
		otpCode:        otpCode,
	}
}

func TestConfirmDeletion_DeletesAttachment(t *testing.T) {
	f := newConfirmFixture(t, time.Now().UTC().Add(attachment.OTPExpiry))

	result, err := f.uc.Execute(context.Background(), ConfirmDeletionCommand{
		AttachmentID: f.attachment.ID(),
		Actor:        f.requester,
		OTPCode:      f.otpCode,
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.FileName != f.attachment.FileName() {
		t.Errorf("file name = %s, want %s", result.FileName, f.attachment.FileName())
	}
	if f.attachmentRepo.Exists(f.attachment.ID()) {
		t.Error("attachment row should be gone")
	}
	if f.request.Status() != attachment.RequestUsed {
		t.Errorf("request status = %s, want used", f.request.Status())
	}

	removed := f.store.Removed()
	if len(removed) != 1 || removed[0] != f.attachment.StorageURL() {
		t.Errorf("removed = %v, want [%s]", removed, f.attachment.StorageURL())
	}

	activities := f.activityRepo.ActivitiesFor(f.attachment.TicketID())
	if len(activities) != 1 || activities[0].Action() != ticket.ActionAttachmentDeleted {
		t.Fatalf("expected one attachment_deleted activity, got %v", activities)
	}
}

func TestConfirmDeletion_WrongCode(t *testing.T) {
	f := newConfirmFixture(t, time.Now().UTC().Add(attachment.OTPExpiry))

	_, err := f.uc.Execute(context.Background(), ConfirmDeletionCommand{
		AttachmentID: f.attachment.ID(),
		Actor:        f.requester,
		OTPCode:      "00000000",
	})
	assertErrorType(t, err, errors.ErrorTypeUnauthorized)
	if !f.attachmentRepo.Exists(f.attachment.ID()) {
		t.Error("attachment must survive a failed redemption")
	}
}

func TestConfirmDeletion_ExpiredCode(t *testing.T) {
	f := newConfirmFixture(t, time.Now().UTC().Add(-time.Minute))

	_, err := f.uc.Execute(context.Background(), ConfirmDeletionCommand{
		AttachmentID: f.attachment.ID(),
		Actor:        f.requester,
		OTPCode:      f.otpCode,
	})
	assertErrorType(t, err, errors.ErrorTypeUnauthorized)
	if !f.attachmentRepo.Exists(f.attachment.ID()) {
		t.Error("attachment must survive an expired redemption")
	}
}

func TestConfirmDeletion_WrongRequester(t *testing.T) {
	f := newConfirmFixture(t, time.Now().UTC().Add(attachment.OTPExpiry))

	// A valid code is worthless in anyone else's hands.
	_, err := f.uc.Execute(context.Background(), ConfirmDeletionCommand{
		AttachmentID: f.attachment.ID(),
		Actor:        authorization.Actor{ID: f.requester.ID + 100, Role: authorization.RoleOps},
		OTPCode:      f.otpCode,
	})
	assertErrorType(t, err, errors.ErrorTypeUnauthorized)
	if !f.attachmentRepo.Exists(f.attachment.ID()) {
		t.Error("attachment must survive a redemption by the wrong user")
	}
}

func TestConfirmDeletion_CodeIsSingleUse(t *testing.T) {
	f := newConfirmFixture(t, time.Now().UTC().Add(attachment.OTPExpiry))

	cmd := ConfirmDeletionCommand{
		AttachmentID: f.attachment.ID(),
		Actor:        f.requester,
		OTPCode:      f.otpCode,
	}
	if _, err := f.uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	_, err := f.uc.Execute(context.Background(), cmd)
	assertErrorType(t, err, errors.ErrorTypeUnauthorized)
}

func TestListPendingDeletions_FiltersByApproverRole(t *testing.T) {
	requestRepo := testutil.NewMockDeletionRequestRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewListPendingDeletionsUseCase(requestRepo, testutil.NewMockLogger())

	growth := createTestUser(t, userRepo, "growth@example.com", authorization.RoleGrowth)
	ops := createTestUser(t, userRepo, "ops@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", growth.ID())
	a1 := createTestAttachment(t, attachmentRepo, tk.ID(), growth.ID())
	a2 := createTestAttachment(t, attachmentRepo, tk.ID(), ops.ID())

	growthActor := growth.Actor()
	opsActor := ops.Actor()
	createPendingRequest(t, requestRepo, a1, &growthActor) // reviewed by ops
	createPendingRequest(t, requestRepo, a2, &opsActor)    // reviewed by growth

	result, err := uc.Execute(context.Background(), ListPendingDeletionsQuery{Actor: opsActor})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("total = %d, want 1", result.Total)
	}
	if result.Requests[0].AttachmentID != a1.ID() {
		t.Errorf("pending queue holds attachment %d, want %d", result.Requests[0].AttachmentID, a1.ID())
	}
}

func TestListMyDeletionRequests_AllStatuses(t *testing.T) {
	requestRepo := testutil.NewMockDeletionRequestRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	ticketRepo := testutil.NewMockTicketRepository()
	userRepo := testutil.NewMockUserRepository()
	uc := NewListMyDeletionRequestsUseCase(requestRepo, testutil.NewMockLogger())

	requester := createTestUser(t, userRepo, "requester@example.com", authorization.RoleGrowth)
	approver := createTestUser(t, userRepo, "approver@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", requester.ID())
	a1 := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())
	a2 := createTestAttachment(t, attachmentRepo, tk.ID(), requester.ID())

	actor := requester.Actor()
	createPendingRequest(t, requestRepo, a1, &actor)
	rejected := createPendingRequest(t, requestRepo, a2, &actor)
	if err := rejected.Reject(approver.ID(), "keep it"); err != nil {
		t.Fatalf("Reject() error = %v", err)
	}

	result, err := uc.Execute(context.Background(), ListMyDeletionRequestsQuery{Actor: actor})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("total = %d, want 2", result.Total)
	}
}
