package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akshatworkmail12-bit/jarvis/internal/apperrors"
	"github.com/akshatworkmail12-bit/jarvis/internal/ratelimit"
)

// RateLimit admits requests through the shared limiter under the named
// operation class, keyed by client IP. Denials answer 429 with the standard
// error envelope and a reset hint.
func RateLimit(limiter *ratelimit.Limiter, class string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.ClientIP()

		if !limiter.Allow(identifier, class) {
			reset := time.Now().Add(limiter.Window(class)).Unix()
			retryAfter := int(limiter.Window(class).Seconds())

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit(class)))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   apperrors.RateLimit("Rate limit exceeded", limiter.Limit(class), reset),
			})
			return
		}

		if remaining := limiter.Remaining(identifier, class); remaining >= 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit(class)))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		c.Next()
	}
}
