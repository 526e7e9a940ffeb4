package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/response"
)

// Auth validates the bearer token and stores the acting identity
// (normalized email) in the request context for the handlers.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
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

		c.Set("email", strings.ToLower(strings.TrimSpace(claims.Email)))
		c.Set("name", claims.Name)

		c.Next()
	}
}

// ActingEmail returns the authenticated identity set by Auth.
func ActingEmail(c *gin.Context) string {
	return c.GetString("email")
}
