package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/medrec/records-api/internal/handler"
	authHandler "github.com/medrec/records-api/internal/handler/auth"
	prescriptionHandler "github.com/medrec/records-api/internal/handler/prescription"
	userHandler "github.com/medrec/records-api/internal/handler/user"
	"github.com/medrec/records-api/internal/middleware"
	"github.com/medrec/records-api/pkg/metrics"
	"github.com/medrec/records-api/web"
)

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         *authHandler.Handler
	userH         *userHandler.Handler
	prescriptionH *prescriptionHandler.Handler
	h             *handler.Handler
	metrics       *metrics.Metrics
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	Timeout    time.Duration
	CORSConfig middleware.CORSConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	userH *userHandler.Handler,
	prescriptionH *prescriptionHandler.Handler,
	h *handler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:        gin.New(),
		auth:          auth,
		authH:         authH,
		userH:         userH,
		prescriptionH: prescriptionH,
		h:             h,
		metrics:       m,
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	r.engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.CORS(config.CORSConfig),
		rateLimiter.RateLimit(),
	)

	return r
}

// Setup registers every route. Endpoint paths are stable and unversioned;
// each request carries all needed identifiers, there is no server-side
// session state.
func (r *Router) Setup() {
	root := r.engine.Group("")

	r.setupHealthCheck(root)

	r.authH.RegisterRoutes(root)
	r.userH.RegisterRoutes(root, r.auth)
	r.prescriptionH.RegisterRoutes(root, r.auth)

	web.RegisterRoutes(r.engine)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
	}
	rg.GET("/metrics", r.h.MetricsHandler)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.ErrorsTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
