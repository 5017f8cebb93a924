package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"goals-platform/internal/core/auth"
	"goals-platform/internal/core/server"
	mdw "goals-platform/internal/transport/http/middleware"
	resp "goals-platform/internal/transport/http/response"
)

type Options struct {
	Logger         *zap.Logger
	RPS            rate.Limit
	Burst          int
	MaxInFlight    int64
	MaxBody        int64
	RequestTimeout time.Duration
	// ServiceAuth, when set, guards /api/v1 with service tokens.
	ServiceAuth *auth.JWTer
	Callers     []string
}

func (o *Options) withDefaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.RPS == 0 {
		o.RPS = 200
	}
	if o.Burst == 0 {
		o.Burst = 400
	}
	if o.MaxInFlight == 0 {
		o.MaxInFlight = 300
	}
	if o.MaxBody == 0 {
		o.MaxBody = 1 << 20
	}
	if o.RequestTimeout == 0 {
		o.RequestTimeout = 10 * time.Second
	}
}

// NewEngine builds the shared middleware chain, /health, /metrics, and
// mounts mods under /api/v1.
func NewEngine(o Options, mods ...Module) *gin.Engine {
	o.withDefaults()
	r := server.NewRouter(o.Logger)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(o.RPS, o.Burst),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(o.MaxBody),
		mdw.Timeout(o.RequestTimeout),
		mdw.Recovery(o.Logger),
		mdw.Metrics(),
		mdw.AccessLog(o.Logger),
	)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, resp.Error(resp.CodeNotFound, "route not found"))
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, resp.OK(gin.H{"status": "UP"})) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if o.ServiceAuth != nil {
		api.Use(mdw.ServiceAuth(o.ServiceAuth, o.Callers...))
	}
	mountAll(api, mods)
	return r
}
