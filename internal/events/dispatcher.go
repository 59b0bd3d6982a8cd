package events

import (
	"context"
	"sync"

	"go.uber.org/multierr"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// ErrorHandler receives the combined handler failures of one Publish.
type ErrorHandler func(ctx context.Context, event Event, err error)

// Option configures the in-memory dispatcher.
type Option func(*inMemoryDispatcher)

// WithErrorHandler reports handler failures to h. Publishers that ignore the
// returned error still have their failures surfaced here.
func WithErrorHandler(h ErrorHandler) Option {
	return func(d *inMemoryDispatcher) {
		d.onError = h
	}
}

// inMemoryDispatcher is a simple synchronous dispatcher.
type inMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	onError   ErrorHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher(opts ...Option) Dispatcher {
	d := &inMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish synchronously invokes handlers for the given event. Every handler
// runs even when an earlier one fails; the failures are returned combined.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	var errs error
	for _, handler := range handlers {
		errs = multierr.Append(errs, handler(ctx, event))
	}
	if errs != nil && d.onError != nil {
		d.onError(ctx, event, errs)
	}
	return errs
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// SubscribeAll registers handler for every event type in types.
func SubscribeAll(d Dispatcher, handler EventHandler, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, handler)
	}
}

// MutationEvents lists the events emitted after the incident set changed.
var MutationEvents = []EventType{
	EventIncidentCreated,
	EventIncidentTransitioned,
	EventIncidentDeleted,
	EventIncidentsImported,
	EventIncidentsReset,
}
