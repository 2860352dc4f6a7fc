package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/pkg/identity"
	jwtsvc "mentorhub/internal/pkg/jwt"
	"mentorhub/internal/pkg/response"
)

// Auth validates the bearer token and stores the resolved identity on the
// request context. The mentor profile id travels inside the token claims, so
// no lookup runs here.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		identity.Set(c, claims.UserID, claims.Role)
		if claims.MentorProfileID > 0 {
			identity.SetMentorProfile(c, claims.MentorProfileID)
		}

		c.Next()
	}
}
