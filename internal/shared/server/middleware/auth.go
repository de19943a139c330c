package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-generator/internal/shared/auth"
	"resume-generator/internal/shared/server/respond"
)

const (
	actorIDKey   = "actorId"
	actorRoleKey = "actorRole"
)

// Auth validates bearer tokens and stores the actor identity in context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := auth.Verify(secret, token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(actorIDKey, claims.Subject)
		c.Set(actorRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects requests whose actor role is not in the allowed set.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allowed[ActorRoleFromContext(c)]; !ok {
			respond.Error(c, http.StatusForbidden, "forbidden", "insufficient role", nil)
			return
		}
		c.Next()
	}
}

// ActorIDFromContext fetches the actor ID set by the auth middleware.
func ActorIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// ActorRoleFromContext fetches the actor role set by the auth middleware.
func ActorRoleFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(actorRoleKey)
	if role, ok := val.(string); ok {
		return role
	}
	return ""
}
