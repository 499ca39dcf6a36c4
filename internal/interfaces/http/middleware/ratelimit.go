package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/infrastructure/ratelimit"
	sharedConfig "stagedesk/internal/shared/config"
	"stagedesk/internal/shared/utils"
)

// RateLimitMiddleware enforces per-IP request limits on sensitive routes.
// A nil limiter or a disabled config turns it into a pass-through.
type RateLimitMiddleware struct {
	limiter ratelimit.RateLimiter
	config  *sharedConfig.RateLimitConfig
}

func NewRateLimitMiddleware(limiter ratelimit.RateLimiter, config *sharedConfig.RateLimitConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		config:  config,
	}
}

// Limit returns a Gin middleware keyed on client IP.
func (m *RateLimitMiddleware) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.limiter == nil || m.config == nil || !m.config.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("ip:%s", c.ClientIP())
		allowed, err := m.limiter.Allow(key, ratelimit.RateLimitConfig{
			RequestsPerMinute: m.config.RequestsPerMinute,
			RequestsPerHour:   m.config.RequestsPerHour,
		})
		if err != nil {
			// The limiter backend being down must not take auth down with it.
			c.Next()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
