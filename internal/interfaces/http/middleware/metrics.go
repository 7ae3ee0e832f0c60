package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
}

// httpMetrics holds all HTTP-related metrics instruments.
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	requestSize     *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

var (
	requestSizeBuckets  = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000}
	responseSizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000, 1000000, 5000000}
)

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter,
		"http_server_request_total",
		"Total number of HTTP requests",
		"{request}",
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	requestSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_request_size_bytes",
		Description: "HTTP request body size distribution in bytes",
		Unit:        "By",
		Boundaries:  requestSizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "http_server_response_size_bytes",
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  responseSizeBuckets,
	})
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http_server_active_requests",
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestSize:     requestSize,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics collects request count, latency, body sizes and in-flight
// requests. Counters are labelled by method, route pattern, status and the
// caller's role.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return HTTPMetricsWithMeter(cfg.MeterProvider.Meter("http.server"), true)
}

// HTTPMetricsWithMeter returns HTTP metrics middleware using an existing meter.
func HTTPMetricsWithMeter(meter metric.Meter, enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return httpMetricsMiddleware(metrics)
}

func httpMetricsMiddleware(metrics *httpMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		requestSize := getRequestSize(c)

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		role := ""
		if actor, ok := ActorFromContext(c); ok {
			role = string(actor.Role)
		}
		recordHTTPMetrics(ctx, metrics, c.Request.Method, getRoutePattern(c), c.Writer.Status(), role,
			time.Since(start), requestSize, c.Writer.Size())
	}
}

func recordHTTPMetrics(
	ctx context.Context,
	metrics *httpMetrics,
	method, route string,
	statusCode int,
	role string,
	duration time.Duration,
	requestSize int64,
	responseSize int,
) {
	requestAttrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
		telemetry.AttrHTTPStatusCode.Int(statusCode),
	}
	if role != "" {
		requestAttrs = append(requestAttrs, telemetry.AttrActorRole.String(role))
	}
	metrics.requestTotal.Inc(ctx, requestAttrs...)

	// duration and sizes stay at method+route cardinality
	baseAttrs := []attribute.KeyValue{
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPRoute.String(route),
	}
	metrics.requestDuration.RecordDuration(ctx, duration, baseAttrs...)
	if requestSize > 0 {
		metrics.requestSize.Record(ctx, float64(requestSize), baseAttrs...)
	}
	if responseSize > 0 {
		metrics.responseSize.Record(ctx, float64(responseSize), baseAttrs...)
	}
}

// getRoutePattern returns the matched route pattern to keep label cardinality bounded
func getRoutePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

func getRequestSize(c *gin.Context) int64 {
	if cl := c.Request.ContentLength; cl > 0 {
		return cl
	}
	return 0
}
