package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// ActorKey is the context key for the authenticated caller
	ActorKey contextKey = "actor"
)

// ActorFields identifies the caller in log entries
type ActorFields struct {
	Role     string
	UserID   string
	VendorID string
}

func (a ActorFields) fields() []zap.Field {
	fields := []zap.Field{zap.String("actor_role", a.Role), zap.String("user_id", a.UserID)}
	if a.VendorID != "" {
		fields = append(fields, zap.String("actor_vendor_id", a.VendorID))
	}
	return fields
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithActor adds the caller identity to context and returns enriched logger
func WithActor(ctx context.Context, logger *zap.Logger, actor ActorFields) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, ActorKey, actor)
	enriched := logger.With(actor.fields()...)
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetActor retrieves the caller identity from context
func GetActor(ctx context.Context) (ActorFields, bool) {
	actor, ok := ctx.Value(ActorKey).(ActorFields)
	return actor, ok
}

// GetTraceID extracts the trace ID from the context's span.
// Returns an empty string if no valid span exists.
func GetTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// WithTraceContext adds trace_id and span_id from the context's span
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// L returns the context logger enriched with trace correlation.
// Usage: logger.L(ctx).Info("message", zap.String("key", "value"))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
