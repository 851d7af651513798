package middleware

import (
	"context" // Deadlines
	"time"    // Durations

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequestTimeout bounds every store call made while serving the request
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
