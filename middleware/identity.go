package middleware

import (
	"net/http"

	"meetingroom-backend/models"
	"meetingroom-backend/services"
	"meetingroom-backend/utils"

	"github.com/gin-gonic/gin"
)

// Identity headers set by the upstream gateway after it has verified the
// caller's session. This service trusts them as-is.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleStaff, models.RoleUser:
		return true
	}
	return false
}

// Identity populates the request actor from the trusted identity headers.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(HeaderUserID)
		role := c.GetHeader(HeaderUserRole)
		if userID == "" || !validRole(role) {
			utils.JSONError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid identity")
			c.Abort()
			return
		}
		c.Set(actorKey, services.Actor{UserID: userID, Role: role})
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allow list.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := CurrentActor(c)
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		c.Abort()
	}
}

// CurrentActor returns the actor placed in the context by Identity.
func CurrentActor(c *gin.Context) services.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(services.Actor); ok {
			return actor
		}
	}
	return services.Actor{}
}
