package event

import (
	"slices"
	"sync"

	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
)

// HandlerRegistry maps event types to handlers. Handlers registered without
// types are wildcards and see every event after the typed handlers.
type HandlerRegistry struct {
	mu       sync.RWMutex
	byType   map[string][]shared.EventHandler
	wildcard []shared.EventHandler
}

// NewHandlerRegistry creates an empty registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{byType: make(map[string][]shared.EventHandler)}
}

// Register adds a handler for the given types, or for all events when none are given
func (r *HandlerRegistry) Register(handler shared.EventHandler, eventTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(eventTypes) == 0 {
		r.wildcard = append(r.wildcard, handler)
		return
	}
	for _, eventType := range eventTypes {
		if slices.Contains(r.byType[eventType], handler) {
			continue
		}
		r.byType[eventType] = append(r.byType[eventType], handler)
	}
}

// Unregister removes a handler everywhere it was registered
func (r *HandlerRegistry) Unregister(handler shared.EventHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wildcard = slices.DeleteFunc(r.wildcard, func(h shared.EventHandler) bool { return h == handler })
	for eventType, handlers := range r.byType {
		handlers = slices.DeleteFunc(handlers, func(h shared.EventHandler) bool { return h == handler })
		if len(handlers) == 0 {
			delete(r.byType, eventType)
			continue
		}
		r.byType[eventType] = handlers
	}
}

// GetHandlers returns the typed handlers for eventType followed by the wildcards
func (r *HandlerRegistry) GetHandlers(eventType string) []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typed := r.byType[eventType]
	result := make([]shared.EventHandler, 0, len(typed)+len(r.wildcard))
	result = append(result, typed...)
	return append(result, r.wildcard...)
}

// GetAllHandlers returns every distinct registered handler
func (r *HandlerRegistry) GetAllHandlers() []shared.EventHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[shared.EventHandler]struct{})
	var result []shared.EventHandler
	add := func(h shared.EventHandler) {
		if _, ok := seen[h]; !ok {
			seen[h] = struct{}{}
			result = append(result, h)
		}
	}
	for _, h := range r.wildcard {
		add(h)
	}
	for _, handlers := range r.byType {
		for _, h := range handlers {
			add(h)
		}
	}
	return result
}
