package usecases

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	ticketuc "stagedesk/internal/application/ticket/usecases"
	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/db"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

// FileStore persists uploaded content and yields the URL stored on the
// attachment row.
type FileStore interface {
	Save(ctx context.Context, ticketID uint, fileName string, content io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// FileUpload is one file from a multipart upload, fully read into memory.
// Uploads are capped at 20MB so buffering is acceptable.
type FileUpload struct {
	FileName string
	MimeType string
	Content  []byte
}

type UploadAttachmentsCommand struct {
	Number        string
	Actor         authorization.Actor
	UploadContext string
	Files         []FileUpload
}

type UploadAttachmentsResult struct {
	Attachments []*AttachmentResult `json:"attachments"`
}

// UploadAttachmentsUseCase stores up to five files against a ticket. A
// storage failure degrades the file to an inline base64 payload instead of
// failing the upload.
type UploadAttachmentsUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.AttachmentRepository
	activityRepo   ticket.ActivityRepository
	visibility     *ticketuc.VisibilityResolver
	store          FileStore
	txManager      *db.TransactionManager
	logger         logger.Interface
}

func NewUploadAttachmentsUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.AttachmentRepository,
	activityRepo ticket.ActivityRepository,
	visibility *ticketuc.VisibilityResolver,
	store FileStore,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *UploadAttachmentsUseCase {
	return &UploadAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		activityRepo:   activityRepo,
		visibility:     visibility,
		store:          store,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *UploadAttachmentsUseCase) Execute(ctx context.Context, cmd UploadAttachmentsCommand) (*UploadAttachmentsResult, error) {
	if len(cmd.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}
	if len(cmd.Files) == 0 {
		return nil, errors.NewValidationError("at least one file is required")
	}
	if len(cmd.Files) > constants.MaxAttachmentsPerUpload {
		return nil, errors.NewValidationError(fmt.Sprintf("at most %d files may be uploaded at once", constants.MaxAttachmentsPerUpload))
	}
	for _, f := range cmd.Files {
		if len(f.Content) == 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("file %s is empty", f.FileName))
		}
		if len(f.Content) > constants.MaxAttachmentSizeBytes {
			return nil, errors.NewValidationError(fmt.Sprintf("file %s exceeds the 20MB limit", f.FileName))
		}
		if !attachment.IsAllowedMimeType(f.MimeType) {
			return nil, errors.NewValidationError(fmt.Sprintf("file type %s is not allowed", f.MimeType))
		}
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

	uploadContext := attachment.ParseUploadContext(cmd.UploadContext)

	attachments := make([]*attachment.Attachment, 0, len(cmd.Files))
	for _, f := range cmd.Files {
		url, inline := uc.storeFile(ctx, t.ID(), f)
		a, err := attachment.NewAttachment(t.ID(), f.FileName, url, int64(len(f.Content)), f.MimeType, cmd.Actor.ID, uploadContext, inline)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		attachments = append(attachments, a)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		for _, a := range attachments {
			if err := uc.attachmentRepo.Save(txCtx, a); err != nil {
				return err
			}
			activity, err := ticket.NewActivity(t.ID(), &cmd.Actor.ID, ticket.ActionAttachmentAdded, a.FileName(), map[string]interface{}{
				"attachment_id":  a.ID(),
				"upload_context": uploadContext.String(),
			})
			if err != nil {
				return err
			}
			if err := uc.activityRepo.Save(txCtx, activity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to save attachments", "error", err, "number", cmd.Number)
		return nil, err
	}

	uc.logger.Infow("attachments uploaded",
		"number", cmd.Number,
		"count", len(attachments),
		"upload_context", uploadContext.String(),
	)

	results := make([]*AttachmentResult, 0, len(attachments))
	for _, a := range attachments {
		results = append(results, newAttachmentResult(a))
	}
	return &UploadAttachmentsResult{Attachments: results}, nil
}

// storeFile writes the content to the configured store and falls back to an
// inline data URL when storage is unavailable.
func (uc *UploadAttachmentsUseCase) storeFile(ctx context.Context, ticketID uint, f FileUpload) (string, bool) {
	url, err := uc.store.Save(ctx, ticketID, f.FileName, bytes.NewReader(f.Content))
	if err != nil {
		uc.logger.Warnw("storage failed, keeping attachment inline",
			"error", err,
			"file_name", f.FileName,
		)
		return inlineDataURL(f), true
	}
	return url, strings.HasPrefix(url, "data:")
}

func inlineDataURL(f FileUpload) string {
	return fmt.Sprintf("data:%s;base64,%s", f.MimeType, base64.StdEncoding.EncodeToString(f.Content))
}
