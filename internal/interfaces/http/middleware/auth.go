package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"stagedesk/internal/domain/user"
	"stagedesk/internal/infrastructure/auth"
	"stagedesk/internal/shared/constants"
	"stagedesk/internal/shared/logger"
	"stagedesk/internal/shared/utils"
)

// AuthMiddleware verifies the bearer token and resolves the account row so
// downstream handlers see the current role and manager flag, not the ones
// frozen into the token at issue time.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   user.UserRepository
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, userRepo user.UserRepository, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		account, err := m.userRepo.FindByUUID(c.Request.Context(), claims.UserUUID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				m.logger.Errorw("failed to resolve token subject", "error", err)
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if !account.IsActive() {
			utils.ErrorResponse(c, http.StatusUnauthorized, "account is deactivated")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, account.ID())
		c.Set(constants.ContextKeyUserUUID, account.UUID())
		c.Set(constants.ContextKeyUserRole, account.Role().String())
		c.Set("is_manager", account.IsManager())

		c.Next()
	}
}
