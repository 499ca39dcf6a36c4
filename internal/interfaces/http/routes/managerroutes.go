package routes

import (
	"github.com/gin-gonic/gin"

	assignmenthandlers "stagedesk/internal/interfaces/http/handlers/assignment"
	"stagedesk/internal/interfaces/http/middleware"
	"stagedesk/internal/shared/authorization"
)

type ManagerRouteConfig struct {
	AssignmentHandler *assignmenthandlers.AssignmentHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupManagerRoutes configures the manager dashboard. The whole group is
// gated on the manager flag (admin passes too).
func SetupManagerRoutes(api *gin.RouterGroup, cfg *ManagerRouteConfig) {
	managers := api.Group("/managers")
	managers.Use(cfg.AuthMiddleware.RequireAuth(), authorization.RequireManager())
	{
		managers.GET("/team", cfg.AssignmentHandler.GetTeam)
		managers.GET("/metrics", cfg.AssignmentHandler.GetTeamMetrics)
		managers.GET("/workload", cfg.AssignmentHandler.GetTeamWorkload)
		managers.GET("/incoming", cfg.AssignmentHandler.GetIncomingTickets)
		managers.GET("/outgoing", cfg.AssignmentHandler.GetOutgoingTickets)
		managers.GET("/tickets/pending", cfg.AssignmentHandler.GetUnassignedTickets)

		managers.PATCH("/users/:id/toggle-active", cfg.AssignmentHandler.ToggleUserActive)
		managers.PATCH("/users/:id/auto-assign", cfg.AssignmentHandler.ToggleAutoAssign)
	}
}
