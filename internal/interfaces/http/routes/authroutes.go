package routes

import (
	"github.com/gin-gonic/gin"

	userhandlers "stagedesk/internal/interfaces/http/handlers/user"
	"stagedesk/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	UserHandler    *userhandlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimitMiddleware
}

// SetupAuthRoutes configures registration, login and profile routes.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.RateLimiter.Limit(), cfg.UserHandler.Register)
		auth.POST("/login", cfg.RateLimiter.Limit(), cfg.UserHandler.Login)
		auth.GET("/profile", cfg.AuthMiddleware.RequireAuth(), cfg.UserHandler.GetProfile)
	}
}
