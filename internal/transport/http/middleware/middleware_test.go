package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"goals-platform/internal/core/auth"
)

func init() { gin.SetMode(gin.TestMode) }

func get(r http.Handler, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", ok)

	w := get(r, "/", nil)
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))

	w = get(r, "/", map[string]string{KeyRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(KeyRequestID))

	w = get(r, "/", map[string]string{KeyRequestID: strings.Repeat("x", 200)})
	assert.Len(t, w.Header().Get(KeyRequestID), 36)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, 1))
	r.GET("/", ok)

	assert.Equal(t, http.StatusOK, get(r, "/", nil).Code)
	w := get(r, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"code":429`)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(20 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) { <-c.Request.Context().Done() })
	r.GET("/fast", ok)

	w := get(r, "/slow", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), `"code":504`)
	assert.Equal(t, http.StatusOK, get(r, "/fast", nil).Code)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := get(r, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":500,"msg":"internal error","data":{}}`, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestServiceAuth(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "goals-platform", TTL: time.Minute}
	r := gin.New()
	r.Use(ServiceAuth(j, "goalsvc"))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(KeyCaller)) })

	good, err := j.Issue("goalsvc")
	require.NoError(t, err)
	other, err := j.Issue("reportsvc")
	require.NoError(t, err)
	forged, err := (&auth.JWTer{Secret: []byte("other"), Issuer: "goals-platform", TTL: time.Minute}).Issue("goalsvc")
	require.NoError(t, err)

	w := get(r, "/", map[string]string{"Authorization": "Bearer " + good})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "goalsvc", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "/", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/", map[string]string{"Authorization": "Bearer " + forged}).Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/", map[string]string{"Authorization": "Bearer " + other}).Code)
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/goals/:id", ok)
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})

	get(r, "/goals/5?token=abc&q=x", nil)
	get(r, "/boom", nil)

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/goals/:id", fields["path"])
	assert.Equal(t, int64(200), fields["status"])
	assert.Contains(t, entries[0].ContextMap()["query"], "token")
	assert.NotContains(t, toString(fields["query"]), "abc")
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}

func toString(v any) string {
	b := new(strings.Builder)
	if m, ok := v.(map[string][]string); ok {
		for k, vs := range m {
			b.WriteString(k + "=" + strings.Join(vs, ","))
		}
	}
	return b.String()
}
