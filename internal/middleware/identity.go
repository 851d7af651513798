package middleware

import (
	"context"  // Resolver signature
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"marketplace/internal/authz"  // Identity type
	"marketplace/internal/domain" // Domain errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// IdentityResolver loads the identity behind a token's user id
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (authz.Identity, error)
}

// IdentityMiddleware resolves the role and vendor profile of the authenticated user on each request
func IdentityMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey) // Set by JWTAuthMiddleware
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := resolver.Resolve(c.Request.Context(), userID)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			// Token outlived its user
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		default:
			logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Error("Identity lookup failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
			return
		}
		c.Set(IdentityKey, id)
		c.Next()
	}
}

// GetIdentity returns the identity stored by IdentityMiddleware
func GetIdentity(c *gin.Context) (authz.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return authz.Identity{}, false
	}
	id, ok := v.(authz.Identity)
	return id, ok
}
