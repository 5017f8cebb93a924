package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "goals-platform/internal/transport/http/response"
)

// ConcurrencyLimit caps in-flight requests. A request that gives up while
// waiting gets a 429.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			abort(c, resp.CodeTooMany, "server busy")
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}
