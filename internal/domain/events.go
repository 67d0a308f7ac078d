// Package domain defines events for the event-driven architecture.
// Services publish these after every successful mutation so observers
// never need to poll the playlist.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playlist structure events
	EventSongAdded        EventType = "song.added"
	EventSongRemoved      EventType = "song.removed"
	EventSongMoved        EventType = "song.moved"
	EventPlaylistReversed EventType = "playlist.reversed"
	EventPlaylistUpdated  EventType = "playlist.updated"

	// Reordering events
	EventPlaylistShuffled EventType = "playlist.shuffled"
	EventPlaylistSorted   EventType = "playlist.sorted"
	EventSongPinned       EventType = "song.pinned"
	EventSongUnpinned     EventType = "song.unpinned"

	// Playback history events
	EventSongPlayed EventType = "song.played"
	EventPlayUndone EventType = "play.undone"

	// Rating events
	EventSongRated   EventType = "song.rated"
	EventSongUnrated EventType = "song.unrated"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// SongAddedEvent is published when a song is appended to the playlist.
type SongAddedEvent struct {
	baseEvent
	Song  Song
	Index int // Logical index the song landed at
}

// Type returns the event type.
func (e SongAddedEvent) Type() EventType {
	return EventSongAdded
}

// NewSongAddedEvent creates a new SongAddedEvent.
func NewSongAddedEvent(song Song, index int) SongAddedEvent {
	return SongAddedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Index:     index,
	}
}

// SongRemovedEvent is published when a song is deleted from the playlist.
type SongRemovedEvent struct {
	baseEvent
	Song  Song
	Index int
}

// Type returns the event type.
func (e SongRemovedEvent) Type() EventType {
	return EventSongRemoved
}

// NewSongRemovedEvent creates a new SongRemovedEvent.
func NewSongRemovedEvent(song Song, index int) SongRemovedEvent {
	return SongRemovedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
		Index:     index,
	}
}

// SongMovedEvent is published after two positions were swapped.
type SongMovedEvent struct {
	baseEvent
	From int
	To   int
}

// Type returns the event type.
func (e SongMovedEvent) Type() EventType {
	return EventSongMoved
}

// NewSongMovedEvent creates a new SongMovedEvent.
func NewSongMovedEvent(from, to int) SongMovedEvent {
	return SongMovedEvent{
		baseEvent: newBaseEvent(),
		From:      from,
		To:        to,
	}
}

// PlaylistReversedEvent is published when the reversal flag toggles.
type PlaylistReversedEvent struct {
	baseEvent
	Reversed bool
}

// Type returns the event type.
func (e PlaylistReversedEvent) Type() EventType {
	return EventPlaylistReversed
}

// NewPlaylistReversedEvent creates a new PlaylistReversedEvent.
func NewPlaylistReversedEvent(reversed bool) PlaylistReversedEvent {
	return PlaylistReversedEvent{
		baseEvent: newBaseEvent(),
		Reversed:  reversed,
	}
}

// PlaylistUpdatedEvent carries the full logical order after any change.
type PlaylistUpdatedEvent struct {
	baseEvent
	Songs []Song
}

// Type returns the event type.
func (e PlaylistUpdatedEvent) Type() EventType {
	return EventPlaylistUpdated
}

// NewPlaylistUpdatedEvent creates a new PlaylistUpdatedEvent.
func NewPlaylistUpdatedEvent(songs []Song) PlaylistUpdatedEvent {
	return PlaylistUpdatedEvent{
		baseEvent: newBaseEvent(),
		Songs:     songs,
	}
}

// PlaylistShuffledEvent is published after a pinned shuffle.
type PlaylistShuffledEvent struct {
	baseEvent
	Pinned int // Number of songs held in place
}

// Type returns the event type.
func (e PlaylistShuffledEvent) Type() EventType {
	return EventPlaylistShuffled
}

// NewPlaylistShuffledEvent creates a new PlaylistShuffledEvent.
func NewPlaylistShuffledEvent(pinned int) PlaylistShuffledEvent {
	return PlaylistShuffledEvent{
		baseEvent: newBaseEvent(),
		Pinned:    pinned,
	}
}

// PlaylistSortedEvent is published after a sort rebuilt the playlist.
type PlaylistSortedEvent struct {
	baseEvent
	Criterion  Criterion
	Descending bool
}

// Type returns the event type.
func (e PlaylistSortedEvent) Type() EventType {
	return EventPlaylistSorted
}

// NewPlaylistSortedEvent creates a new PlaylistSortedEvent.
func NewPlaylistSortedEvent(criterion Criterion, descending bool) PlaylistSortedEvent {
	return PlaylistSortedEvent{
		baseEvent:  newBaseEvent(),
		Criterion:  criterion,
		Descending: descending,
	}
}

// SongPinnedEvent is published when an identity is pinned to an index.
type SongPinnedEvent struct {
	baseEvent
	ID    string
	Index int
}

// Type returns the event type.
func (e SongPinnedEvent) Type() EventType {
	return EventSongPinned
}

// NewSongPinnedEvent creates a new SongPinnedEvent.
func NewSongPinnedEvent(id string, index int) SongPinnedEvent {
	return SongPinnedEvent{
		baseEvent: newBaseEvent(),
		ID:        id,
		Index:     index,
	}
}

// SongUnpinnedEvent is published when a pin is released.
type SongUnpinnedEvent struct {
	baseEvent
	ID string
}

// Type returns the event type.
func (e SongUnpinnedEvent) Type() EventType {
	return EventSongUnpinned
}

// NewSongUnpinnedEvent creates a new SongUnpinnedEvent.
func NewSongUnpinnedEvent(id string) SongUnpinnedEvent {
	return SongUnpinnedEvent{
		baseEvent: newBaseEvent(),
		ID:        id,
	}
}

// SongPlayedEvent is published when a song is pushed onto the history.
type SongPlayedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e SongPlayedEvent) Type() EventType {
	return EventSongPlayed
}

// NewSongPlayedEvent creates a new SongPlayedEvent.
func NewSongPlayedEvent(song Song) SongPlayedEvent {
	return SongPlayedEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// PlayUndoneEvent is published when the last play was popped and re-appended.
type PlayUndoneEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e PlayUndoneEvent) Type() EventType {
	return EventPlayUndone
}

// NewPlayUndoneEvent creates a new PlayUndoneEvent.
func NewPlayUndoneEvent(song Song) PlayUndoneEvent {
	return PlayUndoneEvent{
		baseEvent: newBaseEvent(),
		Song:      song,
	}
}

// SongRatedEvent is published when a song enters a rating bucket.
type SongRatedEvent struct {
	baseEvent
	ID     string
	Rating int
}

// Type returns the event type.
func (e SongRatedEvent) Type() EventType {
	return EventSongRated
}

// NewSongRatedEvent creates a new SongRatedEvent.
func NewSongRatedEvent(id string, rating int) SongRatedEvent {
	return SongRatedEvent{
		baseEvent: newBaseEvent(),
		ID:        id,
		Rating:    rating,
	}
}

// SongUnratedEvent is published when a song leaves the rating index.
type SongUnratedEvent struct {
	baseEvent
	ID string
}

// Type returns the event type.
func (e SongUnratedEvent) Type() EventType {
	return EventSongUnrated
}

// NewSongUnratedEvent creates a new SongUnratedEvent.
func NewSongUnratedEvent(id string) SongUnratedEvent {
	return SongUnratedEvent{
		baseEvent: newBaseEvent(),
		ID:        id,
	}
}
