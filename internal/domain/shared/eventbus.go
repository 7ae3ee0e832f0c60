package shared

import "context"

// EventHandler reacts to domain events after the originating write commits
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the types to deliver; empty means all
	EventTypes() []string
}

// EventPublisher is what services publish through. It is optional: a
// service with no publisher still commits, it only skips notification.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers
type EventSubscriber interface {
	// Subscribe uses the given types, falling back to handler.EventTypes()
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is a publisher and subscriber with a lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// PublishAndClear drains the pending events of each aggregate and publishes
// them in order. A nil publisher only drains.
func PublishAndClear(ctx context.Context, publisher EventPublisher, aggregates ...AggregateRoot) error {
	var events []DomainEvent
	for _, agg := range aggregates {
		events = append(events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
	if publisher == nil || len(events) == 0 {
		return nil
	}
	return publisher.Publish(ctx, events...)
}
