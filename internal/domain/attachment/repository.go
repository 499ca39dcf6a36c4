package attachment

import (
	"context"

	"stagedesk/internal/shared/authorization"
)

type AttachmentRepository interface {
	Save(ctx context.Context, attachment *Attachment) error
	Delete(ctx context.Context, attachmentID uint) error
	FindByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	FindByTicketID(ctx context.Context, ticketID uint) ([]*Attachment, error)
}

type DeletionRequestRepository interface {
	Save(ctx context.Context, request *DeletionRequest) error
	Update(ctx context.Context, request *DeletionRequest) error
	FindByID(ctx context.Context, requestID uint) (*DeletionRequest, error)
	// FindApprovedByAttachment returns the approved request for an
	// attachment/requester pair, if any.
	FindApprovedByAttachment(ctx context.Context, attachmentID, requesterID uint) (*DeletionRequest, error)
	// FindPendingByApproverRole lists requests awaiting review by a team.
	FindPendingByApproverRole(ctx context.Context, role authorization.UserRole) ([]*DeletionRequest, error)
	FindByRequester(ctx context.Context, requesterID uint) ([]*DeletionRequest, error)
	// HasOpenRequest reports whether a pending or approved request already
	// exists for the attachment.
	HasOpenRequest(ctx context.Context, attachmentID uint) (bool, error)
}
