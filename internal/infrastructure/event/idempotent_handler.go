package event

import (
	"context"
	"sync/atomic"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyMetrics counts outcomes of idempotent handling
type IdempotencyMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// IdempotencyStats is a snapshot of IdempotencyMetrics
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// Stats returns a snapshot of the counters
func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

// IdempotentHandler runs the wrapped handler at most once per event id
// within the configured TTL
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

// IdempotentHandlerOption configures an IdempotentHandler
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig overrides the default TTL and enablement
func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.config = config
	}
}

// WithIdempotencyMetrics shares a metrics instance between handlers
func WithIdempotencyMetrics(metrics *IdempotencyMetrics) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.metrics = metrics
	}
}

// NewIdempotentHandler wraps handler with a store-backed duplicate check
func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  shared.DefaultIdempotencyConfig(),
		logger:  logger,
		metrics: &IdempotencyMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

// EventTypes delegates to the wrapped handler
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle processes event unless its id was already marked. A store failure
// lets the event through; a handler failure keeps the mark until the TTL
// expires.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	eventID := event.EventID().String()
	fields := []zap.Field{
		zap.String("event_id", eventID),
		zap.String("event_type", event.EventType()),
	}

	isNew, err := h.store.MarkProcessed(ctx, eventID, h.config.EffectiveTTL())
	switch {
	case err != nil:
		h.logger.Warn("idempotency check failed, processing anyway", append(fields, zap.Error(err))...)
	case !isNew:
		h.metrics.EventsDuplicate.Add(1)
		h.logger.Debug("duplicate event skipped", fields...)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		return err
	}
	h.metrics.EventsProcessed.Add(1)
	return nil
}

// Metrics returns the handler's counters
func (h *IdempotentHandler) Metrics() *IdempotencyMetrics {
	return h.metrics
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
