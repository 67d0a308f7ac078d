// Package ports defines the interfaces between the playlist core and the
// adapters around it.
package ports

import (
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// EventBus is the interface for publishing and subscribing to playlist events.
// Services publish after every successful mutation; observers such as the CLI
// or a logger subscribe without the services knowing about them.
//
// Thread-safety: Implementations must be thread-safe.
//
// Example usage:
//
//	subID := bus.Subscribe(domain.EventPlaylistShuffled, func(event domain.Event) {
//	    e := event.(domain.PlaylistShuffledEvent)
//	    log.Info("shuffled", "pinned", e.Pinned)
//	})
//	defer bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type and to every
	// wildcard subscriber. Handlers must return quickly.
	Publish(event domain.Event)

	// Subscribe registers a handler for one event type and returns an ID for
	// Unsubscribe.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a handler. Unknown IDs are ignored.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether anyone listens for eventType.
	HasSubscribers(eventType domain.EventType) bool

	// Close drops all subscriptions. Publishing afterwards is a no-op.
	Close() error
}
