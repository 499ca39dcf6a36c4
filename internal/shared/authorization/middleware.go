package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagedesk/internal/shared/constants"
)

// ActorFromContext rebuilds the Actor the auth middleware stored on the
// request context.
func ActorFromContext(c *gin.Context) Actor {
	var actor Actor
	if id, ok := c.Get(constants.ContextKeyUserID); ok {
		if uid, ok := id.(uint); ok {
			actor.ID = uid
		}
	}
	actor.Role = ParseUserRole(c.GetString(constants.ContextKeyUserRole))
	actor.IsManager = c.GetBool("is_manager")
	return actor
}

// RequirePermission aborts with 403 unless the actor's role holds the
// (resource, action) grant.
func RequirePermission(policy *Policy, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		allowed, err := policy.Can(actor, resource, action)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"type": "internal_error", "message": "permission check failed"},
			})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"type": "forbidden", "message": "insufficient permissions"},
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the actor holds the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !actor.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"type": "forbidden", "message": "admin access required"},
			})
			return
		}
		c.Next()
	}
}

// RequireManager aborts with 403 unless the actor is flagged as a manager or
// holds the admin role.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if !actor.IsManager && !actor.Role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"type": "forbidden", "message": "manager access required"},
			})
			return
		}
		c.Next()
	}
}
