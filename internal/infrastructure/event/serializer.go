package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// Envelope is the wire form of a domain event leaving the process
type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// EventSerializer encodes domain events to JSON and decodes them back into
// their registered Go types
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates a new event serializer
func NewEventSerializer() *EventSerializer {
	return &EventSerializer{registry: make(map[string]reflect.Type)}
}

// Register binds an event type name to the concrete type of instance
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s.mu.Lock()
	s.registry[eventType] = t
	s.mu.Unlock()
}

// Serialize encodes an event's own fields
func (s *EventSerializer) Serialize(event shared.DomainEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Wrap encodes an event inside an Envelope
func (s *EventSerializer) Wrap(event shared.DomainEvent) ([]byte, error) {
	payload, err := s.Serialize(event)
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", event.EventType(), err)
	}
	return json.Marshal(Envelope{
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		OccurredAt:    event.OccurredAt().UTC(),
		Payload:       payload,
	})
}

// Unwrap decodes an Envelope and its payload
func (s *EventSerializer) Unwrap(data []byte) (shared.DomainEvent, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	return s.Deserialize(env.EventType, env.Payload)
}

// Deserialize decodes data into the type registered for eventType
func (s *EventSerializer) Deserialize(eventType string, data []byte) (shared.DomainEvent, error) {
	s.mu.RLock()
	t, ok := s.registry[eventType]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	ptr := reflect.New(t).Interface()
	if err := json.Unmarshal(data, ptr); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", eventType, err)
	}
	event, ok := ptr.(shared.DomainEvent)
	if !ok {
		return nil, fmt.Errorf("registered type for %s does not implement DomainEvent", eventType)
	}
	return event, nil
}

// IsRegistered checks if an event type is registered
func (s *EventSerializer) IsRegistered(eventType string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.registry[eventType]
	return ok
}

// RegisteredTypes returns the registered event types in sorted order
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.registry))
	for t := range s.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
