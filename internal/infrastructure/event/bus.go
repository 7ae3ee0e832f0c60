package event

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "marketplace/event"

// InMemoryEventBus dispatches domain events synchronously to subscribed
// handlers. A failing or panicking handler is logged and does not stop the
// remaining handlers, so a publish never fails the state change that raised it.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	tracer   trace.Tracer
	running  atomic.Bool
	inFlight sync.WaitGroup
	failures atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
	}
}

// Publish delivers each event to the handlers registered for its type
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.inFlight.Add(1)
	defer b.inFlight.Done()

	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := b.dispatch(ctx, handler, event); err != nil {
				b.failures.Add(1)
				b.logger.Error("event handler failed",
					zap.String("event_type", event.EventType()),
					zap.String("event_id", event.EventID().String()),
					zap.String("aggregate_id", event.AggregateID().String()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit types the handler's own
// EventTypes are used; an empty list subscribes to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("event handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start marks the bus as running
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started", zap.Int("handlers", len(b.registry.GetAllHandlers())))
	return nil
}

// Stop waits for in-flight publishes or the context deadline
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)

	done := make(chan struct{})
	go func() {
		b.inFlight.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event bus stop: %w", ctx.Err())
	}
}

// IsRunning reports whether Start has been called without a matching Stop
func (b *InMemoryEventBus) IsRunning() bool {
	return b.running.Load()
}

// Failures returns how many handler invocations have failed
func (b *InMemoryEventBus) Failures() int64 {
	return b.failures.Load()
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	ctx, span := b.tracer.Start(ctx, "event.handle "+event.EventType(),
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("event.type", event.EventType()),
			attribute.String("event.id", event.EventID().String()),
			attribute.String("event.aggregate_type", event.AggregateType()),
			attribute.String("event.aggregate_id", event.AggregateID().String()),
		),
	)
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
