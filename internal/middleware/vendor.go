package middleware

import (
	"net/http" // HTTP status codes

	"marketplace/internal/authz" // Role predicates

	"github.com/gin-gonic/gin" // Gin web framework
)

// VendorOnlyMiddleware rejects callers whose role is not VENDOR. Runs after IdentityMiddleware.
func VendorOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if !authz.IsVendorRole(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Vendor access required"})
			return
		}
		c.Next()
	}
}
