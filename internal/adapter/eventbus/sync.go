// Package eventbus delivers playlist events to in-process observers.
package eventbus

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
)

// ErrClosed is returned by Close on a bus that is already closed.
var ErrClosed = errors.New("event bus closed")

// SyncEventBus calls handlers on the publishing goroutine, in subscription
// order, type-specific handlers before wildcard ones.
//
// Services publish while holding their own lock, so a handler must not call
// back into the service that published the event.
type SyncEventBus struct {
	logger *slog.Logger

	mu       sync.RWMutex
	byType   map[domain.EventType][]subscription
	wildcard []subscription
	nextID   uint64
	closed   bool
}

type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a bus. A nil logger discards handler panics silently.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	return &SyncEventBus{
		logger: logger,
		byType: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers event to everyone listening. A panicking handler is logged
// and skipped; the remaining handlers still run.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	targets := slices.Concat(bus.byType[event.Type()], bus.wildcard)
	bus.mu.RUnlock()

	for _, sub := range targets {
		bus.deliver(sub, event)
	}
}

func (bus *SyncEventBus) deliver(sub subscription, event domain.Event) {
	defer func() {
		if r := recover(); r != nil && bus.logger != nil {
			bus.logger.Error("event handler panicked",
				slog.Any("panic", r),
				slog.String("event_type", string(event.Type())),
				slog.String("subscription", string(sub.id)))
		}
	}()
	sub.handler(event)
}

// Subscribe registers handler for eventType. Subscribing to a closed bus
// returns an empty ID and the handler is never called.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("eventbus: nil handler")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.closed {
		return ""
	}

	sub := bus.newSubscription(string(eventType), handler)
	bus.byType[eventType] = append(bus.byType[eventType], sub)
	return sub.id
}

// SubscribeAll registers handler for every event type.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("eventbus: nil handler")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	if bus.closed {
		return ""
	}

	sub := bus.newSubscription("*", handler)
	bus.wildcard = append(bus.wildcard, sub)
	return sub.id
}

// newSubscription must be called with mu held.
func (bus *SyncEventBus) newSubscription(scope string, handler domain.EventHandler) subscription {
	bus.nextID++
	return subscription{
		id:      domain.SubscriptionID(fmt.Sprintf("%s#%d", scope, bus.nextID)),
		handler: handler,
	}
}

// Unsubscribe removes the subscription with id. The remaining handlers keep
// their relative order.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	match := func(s subscription) bool { return s.id == id }
	for eventType, subs := range bus.byType {
		if slices.ContainsFunc(subs, match) {
			bus.byType[eventType] = slices.DeleteFunc(subs, match)
			return
		}
	}
	bus.wildcard = slices.DeleteFunc(bus.wildcard, match)
}

// HasSubscribers reports whether publishing eventType would reach anyone.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.byType[eventType]) > 0 || len(bus.wildcard) > 0
}

// SubscriberCount returns the number of live subscriptions of any kind.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	n := len(bus.wildcard)
	for _, subs := range bus.byType {
		n += len(subs)
	}
	return n
}

// Close drops every subscription. Later publishes are ignored.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return ErrClosed
	}
	bus.closed = true
	clear(bus.byType)
	bus.wildcard = nil
	return nil
}

var _ ports.EventBus = (*SyncEventBus)(nil)
