package usecases

import (
	"time"

	"stagedesk/internal/domain/attachment"
)

type AttachmentResult struct {
	ID            uint      `json:"id"`
	TicketID      uint      `json:"ticket_id"`
	FileName      string    `json:"file_name"`
	StorageURL    string    `json:"storage_url"`
	SizeBytes     int64     `json:"size_bytes"`
	MimeType      string    `json:"mime_type"`
	UploadedBy    uint      `json:"uploaded_by"`
	UploadContext string    `json:"upload_context"`
	Inline        bool      `json:"inline"`
	CreatedAt     time.Time `json:"created_at"`
}

func newAttachmentResult(a *attachment.Attachment) *AttachmentResult {
	return &AttachmentResult{
		ID:            a.ID(),
		TicketID:      a.TicketID(),
		FileName:      a.FileName(),
		StorageURL:    a.StorageURL(),
		SizeBytes:     a.SizeBytes(),
		MimeType:      a.MimeType(),
		UploadedBy:    a.UploadedBy(),
		UploadContext: a.UploadContext().String(),
		Inline:        a.Inline(),
		CreatedAt:     a.CreatedAt(),
	}
}

type DeletionRequestResult struct {
	ID              uint       `json:"id"`
	AttachmentID    uint       `json:"attachment_id"`
	TicketID        uint       `json:"ticket_id"`
	RequesterID     uint       `json:"requester_id"`
	RequesterRole   string     `json:"requester_role"`
	ApproverRole    string     `json:"approver_role"`
	Status          string     `json:"status"`
	Reason          string     `json:"reason"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	DecidedBy       *uint      `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newDeletionRequestResult(r *attachment.DeletionRequest) *DeletionRequestResult {
	return &DeletionRequestResult{
		ID:              r.ID(),
		AttachmentID:    r.AttachmentID(),
		TicketID:        r.TicketID(),
		RequesterID:     r.RequesterID(),
		RequesterRole:   r.RequesterRole().String(),
		ApproverRole:    r.ApproverRole().String(),
		Status:          r.Status().String(),
		Reason:          r.Reason(),
		RejectionReason: r.RejectionReason(),
		DecidedBy:       r.DecidedBy(),
		DecidedAt:       r.DecidedAt(),
		CreatedAt:       r.CreatedAt(),
	}
}

func newDeletionRequestResults(requests []*attachment.DeletionRequest) []*DeletionRequestResult {
	results := make([]*DeletionRequestResult, 0, len(requests))
	for _, r := range requests {
		results = append(results, newDeletionRequestResult(r))
	}
	return results
}
