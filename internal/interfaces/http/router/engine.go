package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/auth"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/logger"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/telemetry"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// EngineConfig carries everything the HTTP engine is assembled from
type EngineConfig struct {
	HTTP          config.HTTPConfig
	ServiceName   string
	Logger        *zap.Logger
	Authenticator *auth.Authenticator
	// MeterProvider enables request metrics and /metrics when set
	MeterProvider *telemetry.MeterProvider
	TracingOn     bool
	// Health answers GET /health; it bypasses authentication
	Health gin.HandlerFunc
}

// NewEngine builds the gin engine with the global middleware chain and
// mounts every registrar under /api/v1, with admin routes at /api/v1/admin.
func NewEngine(cfg EngineConfig, registrars ...any) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.Enabled = cfg.TracingOn
	if cfg.ServiceName != "" {
		tracingCfg.ServiceName = cfg.ServiceName
	}
	engine.Use(middleware.TracingWithConfig(tracingCfg))
	engine.Use(middleware.SpanErrorMarker())

	if cfg.MeterProvider != nil && cfg.MeterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{MeterProvider: cfg.MeterProvider, Enabled: true}))
		engine.GET("/metrics", gin.WrapH(cfg.MeterProvider.Handler()))
	}

	if cfg.Health != nil {
		engine.GET("/health", cfg.Health)
	}

	authCfg := middleware.DefaultJWTAuthConfig(cfg.Authenticator)
	authCfg.Logger = log
	r := NewRouter(engine,
		WithAPIVersion("v1"),
		WithMiddleware(middleware.JWTAuth(authCfg), middleware.TracingAttributeInjector()),
		WithAdminMiddleware(middleware.RequireRole(shared.RoleAdmin)),
	)
	r.Register(registrars...)
	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound,
			"Route not found: "+c.Request.Method+" "+c.Request.URL.Path,
			middleware.GetRequestID(c),
		))
	})

	return engine
}

func corsConfig(httpCfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(httpCfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = httpCfg.CORSAllowOrigins
	}
	if len(httpCfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = httpCfg.CORSAllowMethods
	}
	if len(httpCfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = httpCfg.CORSAllowHeaders
	}
	return cors
}
