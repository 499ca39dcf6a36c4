package mappers

import (
	"fmt"

	"stagedesk/internal/domain/attachment"
	"stagedesk/internal/infrastructure/persistence/models"
	"stagedesk/internal/shared/authorization"
)

type AttachmentMapper interface {
	ToModel(a *attachment.Attachment) *models.AttachmentModel
	ToDomain(model *models.AttachmentModel) (*attachment.Attachment, error)
	RequestToModel(r *attachment.DeletionRequest) *models.DeletionRequestModel
	RequestToDomain(model *models.DeletionRequestModel) (*attachment.DeletionRequest, error)
}

type AttachmentMapperImpl struct{}

func NewAttachmentMapper() AttachmentMapper {
	return &AttachmentMapperImpl{}
}

func (m *AttachmentMapperImpl) ToModel(a *attachment.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:            a.ID(),
		TicketID:      a.TicketID(),
		FileName:      a.FileName(),
		StorageURL:    a.StorageURL(),
		SizeBytes:     a.SizeBytes(),
		MimeType:      a.MimeType(),
		UploadedBy:    a.UploadedBy(),
		UploadContext: a.UploadContext().String(),
		Inline:        a.Inline(),
		CreatedAt:     a.CreatedAt().UnixMilli(),
	}
}

func (m *AttachmentMapperImpl) ToDomain(model *models.AttachmentModel) (*attachment.Attachment, error) {
	return attachment.ReconstructAttachment(
		model.ID,
		model.TicketID,
		model.FileName,
		model.StorageURL,
		model.SizeBytes,
		model.MimeType,
		model.UploadedBy,
		attachment.ParseUploadContext(model.UploadContext),
		model.Inline,
		millisToTime(model.CreatedAt),
	)
}

func (m *AttachmentMapperImpl) RequestToModel(r *attachment.DeletionRequest) *models.DeletionRequestModel {
	return &models.DeletionRequestModel{
		ID:              r.ID(),
		AttachmentID:    r.AttachmentID(),
		TicketID:        r.TicketID(),
		RequesterID:     r.RequesterID(),
		RequesterRole:   r.RequesterRole().String(),
		ApproverRole:    r.ApproverRole().String(),
		Status:          r.Status().String(),
		Reason:          r.Reason(),
		RejectionReason: r.RejectionReason(),
		OTPHash:         r.OTPHash(),
		OTPExpiresAt:    timePtrToMillisPtr(r.OTPExpiresAt()),
		DecidedBy:       r.DecidedBy(),
		DecidedAt:       timePtrToMillisPtr(r.DecidedAt()),
		CreatedAt:       r.CreatedAt().UnixMilli(),
		UpdatedAt:       r.UpdatedAt().UnixMilli(),
	}
}

func (m *AttachmentMapperImpl) RequestToDomain(model *models.DeletionRequestModel) (*attachment.DeletionRequest, error) {
	status := attachment.RequestStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("deletion request %d has invalid status %q", model.ID, model.Status)
	}

	return attachment.ReconstructDeletionRequest(
		model.ID,
		model.AttachmentID,
		model.TicketID,
		model.RequesterID,
		authorization.UserRole(model.RequesterRole),
		authorization.UserRole(model.ApproverRole),
		status,
		model.Reason,
		model.RejectionReason,
		model.OTPHash,
		millisPtrToTimePtr(model.OTPExpiresAt),
		model.DecidedBy,
		millisPtrToTimePtr(model.DecidedAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
