package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"goals-platform/internal/core/auth"
	resp "goals-platform/internal/transport/http/response"
)

const KeyCaller = "caller"

// ServiceAuth admits requests carrying a valid service token. When allowed
// is non-empty the token's service must be one of them.
func ServiceAuth(j *auth.JWTer, allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			abort(c, resp.CodeUnauthorized, "invalid token")
			return
		}
		if len(allowed) > 0 && !contains(allowed, claims.Service) {
			abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyCaller, claims.Service)
		c.Next()
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(resp.HTTPStatus(code), resp.Error(code, msg))
}
