package messaging

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/finance"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/config"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/event"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Headers set on every forwarded payout signal
const (
	HeaderEventType = "event_type"
	HeaderEventID   = "event_id"
	HeaderVendorID  = "vendor_id"
)

// MessageWriter is the subset of kafka.Writer the forwarder needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter builds the payout topic writer
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.PayoutTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}

// PayoutSignalForwarder publishes PayoutEligible and PayoutHeld events to
// Kafka for the external payout scheduler. Messages are keyed by vendor
// order id so signals for one order stay ordered within a partition.
type PayoutSignalForwarder struct {
	writer     MessageWriter
	topic      string
	serializer *event.EventSerializer
	propagator propagation.TextMapPropagator
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewPayoutSignalForwarder creates a forwarder writing to topic
func NewPayoutSignalForwarder(writer MessageWriter, topic string, serializer *event.EventSerializer, logger *zap.Logger) *PayoutSignalForwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutSignalForwarder{
		writer:     writer,
		topic:      topic,
		serializer: serializer,
		propagator: otel.GetTextMapPropagator(),
		tracer:     otel.Tracer("marketplace/messaging"),
		logger:     logger,
	}
}

// EventTypes implements shared.EventHandler
func (f *PayoutSignalForwarder) EventTypes() []string {
	return []string{finance.EventTypePayoutEligible, finance.EventTypePayoutHeld}
}

// Handle implements shared.EventHandler
func (f *PayoutSignalForwarder) Handle(ctx context.Context, evt shared.DomainEvent) error {
	signal, ok := evt.(*finance.PayoutSignalEvent)
	if !ok {
		return fmt.Errorf("payout forwarder cannot handle %T", evt)
	}

	value, err := f.serializer.Wrap(signal)
	if err != nil {
		return err
	}
	key := signal.VendorOrderID.String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(signal.EventType())},
			{Key: HeaderEventID, Value: []byte(signal.EventID().String())},
			{Key: HeaderVendorID, Value: []byte(signal.VendorID.String())},
		},
	}

	ctx, span := f.tracer.Start(ctx, "send "+f.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(f.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	f.propagator.Inject(ctx, NewHeaderCarrier(&msg))

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to forward %s for vendor order %s: %w", signal.EventType(), key, err)
	}

	f.logger.Info("payout signal forwarded",
		zap.String("event_type", signal.EventType()),
		zap.String("vendor_order_id", key),
		zap.String("vendor_id", signal.VendorID.String()),
		zap.String("reason", signal.Reason),
	)
	return nil
}

// Close closes the underlying writer
func (f *PayoutSignalForwarder) Close() error {
	return f.writer.Close()
}

var _ shared.EventHandler = (*PayoutSignalForwarder)(nil)
