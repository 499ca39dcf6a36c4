package usecases

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/domain/ticket"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
)

type GetTicketQuery struct {
	Number string
	Actor  authorization.Actor
}

type AttachmentResult struct {
	ID            uint      `json:"id"`
	FileName      string    `json:"file_name"`
	StorageURL    string    `json:"storage_url"`
	SizeBytes     int64     `json:"size_bytes"`
	MimeType      string    `json:"mime_type"`
	UploadedBy    uint      `json:"uploaded_by"`
	UploadContext string    `json:"upload_context"`
	Inline        bool      `json:"inline"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetTicketResult struct {
	Ticket      *TicketResult       `json:"ticket"`
	Attachments []*AttachmentResult `json:"attachments"`
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	attachmentRepo attachment.AttachmentRepository
	visibility     *VisibilityResolver
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	attachmentRepo attachment.AttachmentRepository,
	visibility *VisibilityResolver,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		visibility:     visibility,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*GetTicketResult, error) {
	if len(query.Number) == 0 {
		return nil, errors.NewValidationError("ticket number is required")
	}

	t, err := uc.ticketRepo.FindByNumber(ctx, query.Number)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("ticket not found")
		}
		return nil, err
	}

	if err := uc.visibility.EnsureVisible(ctx, query.Actor, t); err != nil {
		return nil, err
	}

	attachments, err := uc.attachmentRepo.FindByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list ticket attachments", "error", err, "number", query.Number)
		return nil, err
	}

	results := make([]*AttachmentResult, 0, len(attachments))
	for _, a := range attachments {
		results = append(results, newAttachmentResult(a))
	}

	return &GetTicketResult{
		Ticket:      newTicketResult(t),
		Attachments: results,
	}, nil
}

func newAttachmentResult(a *attachment.Attachment) *AttachmentResult {
	return &AttachmentResult{
		ID:            a.ID(),
		FileName:      a.FileName(),
		StorageURL:    a.StorageURL(),
		SizeBytes:     a.SizeBytes(),
		MimeType:      a.MimeType(),
		UploadedBy:    a.UploadedBy(),
		UploadContext: string(a.UploadContext()),
		Inline:        a.Inline(),
		CreatedAt:     a.CreatedAt(),
	}
}
