package routes

import (
	"github.com/gin-gonic/gin"

	assignmenthandlers "stagedesk/internal/interfaces/http/handlers/assignment"
	attachmenthandlers "stagedesk/internal/interfaces/http/handlers/attachment"
	tickethandlers "stagedesk/internal/interfaces/http/handlers/ticket"
	"stagedesk/internal/interfaces/http/middleware"
	"stagedesk/internal/shared/authorization"
)

type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.TicketHandler
	AssignmentHandler *assignmenthandlers.AssignmentHandler
	AttachmentHandler *attachmenthandlers.AttachmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Policy            *authorization.Policy
}

func SetupTicketRoutes(api *gin.RouterGroup, cfg *TicketRouteConfig) {
	tickets := api.Group("/tickets")
	tickets.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Register specific paths before parameterized ones to avoid route
		// conflicts.

		tickets.POST("",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionCreate),
			cfg.TicketHandler.CreateTicket)
		tickets.GET("",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionView),
			cfg.TicketHandler.ListTickets)

		tickets.POST("/:number/resolve",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionResolve),
			cfg.TicketHandler.ResolveTicket)
		tickets.POST("/:number/reopen",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionReopen),
			cfg.TicketHandler.ReopenTicket)
		tickets.POST("/:number/close",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionClose),
			cfg.TicketHandler.CloseTicket)
		tickets.POST("/:number/force-status",
			authorization.RequireAdmin(),
			cfg.TicketHandler.ForceStatus)
		tickets.GET("/:number/activities",
			cfg.TicketHandler.GetActivities)

		tickets.POST("/:number/attachments",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceAttachment, authorization.ActionUpload),
			cfg.AttachmentHandler.UploadAttachments)

		tickets.POST("/:number/assign",
			authorization.RequireManager(),
			cfg.AssignmentHandler.AssignTicket)
		tickets.POST("/:number/auto-assign",
			authorization.RequireManager(),
			cfg.AssignmentHandler.AutoAssignTicket)

		tickets.GET("/:number",
			cfg.TicketHandler.GetTicket)
		tickets.PATCH("/:number",
			authorization.RequirePermission(cfg.Policy, authorization.ResourceTicket, authorization.ActionUpdate),
			cfg.TicketHandler.UpdateTicket)
		tickets.DELETE("/:number",
			authorization.RequireAdmin(),
			cfg.TicketHandler.DeleteTicket)
	}
}
