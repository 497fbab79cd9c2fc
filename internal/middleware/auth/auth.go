// Package auth provides the gin middleware guarding admin routes
package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/auth"
	"github.com/gravadigital/muro-api/internal/response"
)

// RequireAdmin rejects requests without a valid admin bearer token
func RequireAdmin(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.UnauthorizedError(c, "Missing bearer token")
			c.Abort()
			return
		}

		claims, err := svc.Verify(token)
		if err != nil {
			response.UnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("admin_claims", claims)
		c.Next()
	}
}
