package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"task-service/internal/auth"
)

// TokenValidator resolves a bearer token to a caller identity.
type TokenValidator interface {
	ValidateToken(token string) (auth.Identity, error)
}

// AuthMiddleware validates the Authorization header and stores the caller's
// id and role on the request context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		identity, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("userID", identity.UserID)
		c.Set("role", identity.Role)
		c.Next()
	}
}
