package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps header-provided request ids recorded on spans
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "marketplace",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin. Spans are named "METHOD route".
// Caller attributes are added by TracingAttributeInjector once JWTAuth has run.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// TracingAttributeInjector records the request id and the authenticated
// actor on the current span. Place it after Tracing and JWTAuth.
func TracingAttributeInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpanWithAttributes(c, span)
		}
		c.Next()
	}
}

func enrichSpanWithAttributes(c *gin.Context, span trace.Span) {
	if requestID := spanRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String("request_id", requestID))
	}

	actor, ok := ActorFromContext(c)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.String(telemetry.SpanAttrActorRole, string(actor.Role)),
		attribute.String("user_id", actor.UserID.String()),
	)
	if actor.Role == shared.RoleVendor {
		span.SetAttributes(attribute.String(telemetry.SpanAttrVendorID, actor.VendorID.String()))
	}
}

// spanRequestID truncates header-provided ids so they cannot bloat spans
func spanRequestID(c *gin.Context) string {
	id := GetRequestID(c)
	if len(id) > MaxRequestIDLength {
		return id[:MaxRequestIDLength]
	}
	return id
}

// SpanErrorMarker marks the span as failed for 4xx and 5xx responses.
// Place it after Tracing.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}

		message := "Client Error"
		switch {
		case status >= http.StatusInternalServerError:
			message = "Internal Server Error"
		case status == http.StatusUnauthorized:
			message = "Unauthorized"
		case status == http.StatusForbidden:
			message = "Forbidden"
		case status == http.StatusNotFound:
			message = "Not Found"
		case status == http.StatusConflict:
			message = "Conflict"
		}
		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
