package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/infrastructure/config"
	"stagedesk/internal/interfaces/http/middleware"
	"stagedesk/internal/interfaces/http/routes"
)

// SetupRoutes mounts the middleware chain, the health check and all API
// route groups under /api/v1.
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.RequestLogger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.SecurityHeaders())

	r.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		UserHandler:    r.userHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
	})

	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:     r.ticketHandler,
		AssignmentHandler: r.assignmentHandler,
		AttachmentHandler: r.attachmentHandler,
		AuthMiddleware:    r.authMiddleware,
		Policy:            r.policy,
	})

	routes.SetupAttachmentRoutes(api, &routes.AttachmentRouteConfig{
		AttachmentHandler: r.attachmentHandler,
		AuthMiddleware:    r.authMiddleware,
		Policy:            r.policy,
	})

	routes.SetupManagerRoutes(api, &routes.ManagerRouteConfig{
		AssignmentHandler: r.assignmentHandler,
		AuthMiddleware:    r.authMiddleware,
	})
}
