package usecases

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"stagedesk/internal/application/ticket/testutil"
	ticketuc "stagedesk/internal/application/ticket/usecases"
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

func createTestTicket(t *testing.T, repo *testutil.MockTicketRepository, number string, createdBy uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket("Acme Store", "Checkout fails intermittently", "bug", "Checkout completes", vo.PriorityMedium, createdBy)
	if err != nil {
		t.Fatalf("NewTicket() error = %v", err)
	}
	if err := tk.SetNumber(number); err != nil {
		t.Fatalf("SetNumber() error = %v", err)
	}
	repo.AddTicket(tk)
	return tk
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

func pngUpload(fileName string, size int) FileUpload {
	return FileUpload{
		FileName: fileName,
		MimeType: "image/png",
		Content:  bytes.Repeat([]byte{0x89}, size),
	}
}

func newUploadUseCase(t *testing.T) (*UploadAttachmentsUseCase, *testutil.MockTicketRepository, *testutil.MockAttachmentRepository, *testutil.MockActivityRepository, *testutil.MockUserRepository, *testutil.MockFileStore) {
	t.Helper()
	ticketRepo := testutil.NewMockTicketRepository()
	attachmentRepo := testutil.NewMockAttachmentRepository()
	activityRepo := testutil.NewMockActivityRepository()
	userRepo := testutil.NewMockUserRepository()
	store := testutil.NewMockFileStore()
	uc := NewUploadAttachmentsUseCase(ticketRepo, attachmentRepo, activityRepo,
		ticketuc.NewVisibilityResolver(userRepo), store, testutil.NewTestTxManager(t), testutil.NewMockLogger())
	return uc, ticketRepo, attachmentRepo, activityRepo, userRepo, store
}

func TestUploadAttachments_Success(t *testing.T) {
	uc, ticketRepo, attachmentRepo, activityRepo, userRepo, store := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())

	result, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number:        tk.Number(),
		Actor:         creator.Actor(),
		UploadContext: "initial",
		Files:         []FileUpload{pngUpload("before.png", 128), pngUpload("after.png", 256)},
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if len(result.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(result.Attachments))
	}
	for _, a := range result.Attachments {
		if a.Inline {
			t.Errorf("attachment %s should not be inline", a.FileName)
		}
		if a.UploadContext != "initial" {
			t.Errorf("upload context = %s, want initial", a.UploadContext)
		}
		if _, ok := store.StoredContent(a.StorageURL); !ok {
			t.Errorf("no stored content for %s", a.StorageURL)
		}
		if !attachmentRepo.Exists(a.ID) {
			t.Errorf("attachment %d not persisted", a.ID)
		}
	}

	activities := activityRepo.ActivitiesFor(tk.ID())
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	for _, a := range activities {
		if a.Action() != ticket.ActionAttachmentAdded {
			t.Errorf("action = %v, want attachment_added", a.Action())
		}
	}
}

func TestUploadAttachments_TooManyFiles(t *testing.T) {
	uc, ticketRepo, _, _, userRepo, _ := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())

	files := make([]FileUpload, 6)
	for i := range files {
		files[i] = pngUpload("shot.png", 64)
	}
	_, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
		Files:  files,
	})
	assertErrorType(t, err, errors.ErrorTypeValidation)
}

func TestUploadAttachments_DisallowedMimeType(t *testing.T) {
	uc, ticketRepo, _, _, userRepo, _ := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())

	_, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
		Files: []FileUpload{{
			FileName: "payload.exe",
			MimeType: "application/x-msdownload",
			Content:  []byte{0x4d, 0x5a},
		}},
	})
	assertErrorType(t, err, errors.ErrorTypeValidation)
}

func TestUploadAttachments_InlineFallbackOnStorageFailure(t *testing.T) {
	uc, ticketRepo, _, _, userRepo, store := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())
	store.SetSaveError(context.DeadlineExceeded)

	result, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number: tk.Number(),
		Actor:  creator.Actor(),
		Files:  []FileUpload{pngUpload("before.png", 64)},
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	a := result.Attachments[0]
	if !a.Inline {
		t.Error("attachment should fall back to inline on storage failure")
	}
	if !strings.HasPrefix(a.StorageURL, "data:image/png;base64,") {
		t.Errorf("storage URL = %s, want data URL", a.StorageURL)
	}
}

func TestUploadAttachments_UnknownContextDefaultsToAdditional(t *testing.T) {
	uc, ticketRepo, _, _, userRepo, _ := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())

	result, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number:        tk.Number(),
		Actor:         creator.Actor(),
		UploadContext: "bogus",
		Files:         []FileUpload{pngUpload("note.png", 64)},
	})
	if err != nil {
		t.Fatalf("Execute() unexpected error = %v", err)
	}
	if result.Attachments[0].UploadContext != "additional" {
		t.Errorf("upload context = %s, want additional", result.Attachments[0].UploadContext)
	}
}

func TestUploadAttachments_ForbiddenOutsideScope(t *testing.T) {
	uc, ticketRepo, _, _, userRepo, _ := newUploadUseCase(t)

	creator := createTestUser(t, userRepo, "creator@example.com", authorization.RoleGrowth)
	outsider := createTestUser(t, userRepo, "outsider@example.com", authorization.RoleOps)
	tk := createTestTicket(t, ticketRepo, "GROW-20260830-0001", creator.ID())

	_, err := uc.Execute(context.Background(), UploadAttachmentsCommand{
		Number: tk.Number(),
		Actor:  outsider.Actor(),
		Files:  []FileUpload{pngUpload("note.png", 64)},
	})
	assertErrorType(t, err, errors.ErrorTypeForbidden)
}
