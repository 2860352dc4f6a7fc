package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	"mentorhub/internal/pkg/response"
)

// RequireRole ensures that the authenticated user has the specified role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if id.Role != requiredRole {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireMentorProfile ensures the caller is a mentor with a resolved profile
func RequireMentorProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !id.IsMentor() {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Mentor profile required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole("admin")
}
