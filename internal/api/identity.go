package api

import (
	"net/http" // HTTP status codes

	"marketplace/internal/authz"      // Identity type
	"marketplace/internal/middleware" // Identity lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// currentIdentity returns the caller's identity or aborts with 401
func currentIdentity(c *gin.Context) (authz.Identity, bool) {
	id, ok := middleware.GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return id, ok
}
