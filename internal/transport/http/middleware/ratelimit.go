package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "goals-platform/internal/transport/http/response"
)

// RateLimit is a global token bucket.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		abort(c, resp.CodeTooMany, "too many requests")
	}
}
