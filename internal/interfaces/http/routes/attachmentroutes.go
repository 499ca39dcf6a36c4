package routes

import (
	"github.com/gin-gonic/gin"

	attachmenthandlers "stagedesk/internal/interfaces/http/handlers/attachment"
	"stagedesk/internal/interfaces/http/middleware"
	"stagedesk/internal/shared/authorization"
)

type AttachmentRouteConfig struct {
	AttachmentHandler *attachmenthandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Policy            *authorization.Policy
}

// SetupAttachmentRoutes configures the deletion-approval workflow routes.
// Uploads hang off the ticket routes; everything here is keyed by attachment
// or deletion-request id.
func SetupAttachmentRoutes(api *gin.RouterGroup, cfg *AttachmentRouteConfig) {
	attachments := api.Group("/attachments")
	attachments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		attachments.POST("/:id/request-deletion",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceDeletionRequest, authorization.ActionCreate),
			cfg.AttachmentHandler.RequestDeletion)
		// OTP redemption is bound to the requester of the approved request,
		// which the use case enforces; no role grant applies here.
		attachments.DELETE("/:id",
			cfg.AttachmentHandler.ConfirmDeletion)
	}

	requests := api.Group("/deletion-requests")
	requests.Use(cfg.AuthMiddleware.RequireAuth())
	{
		requests.GET("/pending",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceDeletionRequest, authorization.ActionReview),
			cfg.AttachmentHandler.ListPendingDeletions)
		requests.GET("/my-requests",
			cfg.AttachmentHandler.ListMyDeletionRequests)

		requests.POST("/:id/approve",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceDeletionRequest, authorization.ActionReview),
			cfg.AttachmentHandler.ApproveDeletion)
		requests.POST("/:id/reject",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceDeletionRequest, authorization.ActionReview),
			cfg.AttachmentHandler.RejectDeletion)
	}
}
