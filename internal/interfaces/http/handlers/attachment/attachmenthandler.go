package attachment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/application/attachment/usecases"
	"stagedesk/internal/shared/authorization"
	"stagedesk/internal/shared/errors"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

// AttachmentHandler serves uploads and the OTP-gated deletion workflow.
type AttachmentHandler struct {
	uploadUC          usecases.UploadAttachmentsExecutor
	requestDeletionUC usecases.RequestDeletionExecutor
	approveDeletionUC usecases.ApproveDeletionExecutor
	rejectDeletionUC  usecases.RejectDeletionExecutor
	confirmDeletionUC usecases.ConfirmDeletionExecutor
	listPendingUC     usecases.ListPendingDeletionsExecutor
	listMineUC        usecases.ListMyDeletionRequestsExecutor
	logger            logger.Interface
}

func NewAttachmentHandler(
	uploadUC usecases.UploadAttachmentsExecutor,
	requestDeletionUC usecases.RequestDeletionExecutor,
	approveDeletionUC usecases.ApproveDeletionExecutor,
	rejectDeletionUC usecases.RejectDeletionExecutor,
	confirmDeletionUC usecases.ConfirmDeletionExecutor,
	listPendingUC usecases.ListPendingDeletionsExecutor,
	listMineUC usecases.ListMyDeletionRequestsExecutor,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC:          uploadUC,
		requestDeletionUC: requestDeletionUC,
		approveDeletionUC: approveDeletionUC,
		rejectDeletionUC:  rejectDeletionUC,
		confirmDeletionUC: confirmDeletionUC,
		listPendingUC:     listPendingUC,
		listMineUC:        listMineUC,
		logger:            logger.NewLogger(),
	}
}

// UploadAttachments handles POST /tickets/:number/attachments
func (h *AttachmentHandler) UploadAttachments(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("ticket number is required"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.logger.Warnw("invalid multipart form for attachment upload", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("multipart form is required"))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("at least one file is required"))
		return
	}

	uploads, err := parseUploads(files)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	uploadContext := c.PostForm("upload_context")

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentsCommand{
		Number:        number,
		Actor:         authorization.ActorFromContext(c),
		UploadContext: uploadContext,
		Files:         uploads,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachments uploaded successfully")
}

// RequestDeletion handles POST /attachments/:id/request-deletion
func (h *AttachmentHandler) RequestDeletion(c *gin.Context) {
	attachmentID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RequestDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.requestDeletionUC.Execute(c.Request.Context(), usecases.RequestDeletionCommand{
		AttachmentID: attachmentID,
		Actor:        authorization.ActorFromContext(c),
		Reason:       utils.SanitizeText(req.Reason),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Deletion request submitted")
}

// ApproveDeletion handles POST /deletion-requests/:id/approve
func (h *AttachmentHandler) ApproveDeletion(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.approveDeletionUC.Execute(c.Request.Context(), usecases.ApproveDeletionCommand{
		RequestID: requestID,
		Actor:     authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Deletion request approved", result)
}

// RejectDeletion handles POST /deletion-requests/:id/reject
func (h *AttachmentHandler) RejectDeletion(c *gin.Context) {
	requestID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RejectDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.rejectDeletionUC.Execute(c.Request.Context(), usecases.RejectDeletionCommand{
		RequestID: requestID,
		Actor:     authorization.ActorFromContext(c),
		Reason:    utils.SanitizeText(req.Reason),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Deletion request rejected", result)
}

// ConfirmDeletion handles DELETE /attachments/:id
func (h *AttachmentHandler) ConfirmDeletion(c *gin.Context) {
	attachmentID, err := parseRequestID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ConfirmDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.confirmDeletionUC.Execute(c.Request.Context(), usecases.ConfirmDeletionCommand{
		AttachmentID: attachmentID,
		Actor:        authorization.ActorFromContext(c),
		OTPCode:      req.OTPCode,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Attachment deleted", result)
}

// ListPendingDeletions handles GET /deletion-requests/pending
func (h *AttachmentHandler) ListPendingDeletions(c *gin.Context) {
	result, err := h.listPendingUC.Execute(c.Request.Context(), usecases.ListPendingDeletionsQuery{
		Actor: authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListMyDeletionRequests handles GET /deletion-requests/my-requests
func (h *AttachmentHandler) ListMyDeletionRequests(c *gin.Context) {
	result, err := h.listMineUC.Execute(c.Request.Context(), usecases.ListMyDeletionRequestsQuery{
		Actor: authorization.ActorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
