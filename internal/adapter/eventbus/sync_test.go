package eventbus

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/logger"
	"github.com/tejashwikalptaru/playwise/internal/testutil"
)

func TestSyncEventBus_PublishToTypeSubscribers(t *testing.T) {
	bus := NewSyncEventBus(logger.NewTestLogger())
	defer bus.Close()

	var got []domain.Event
	id := bus.Subscribe(domain.EventSongAdded, func(e domain.Event) { got = append(got, e) })
	require.NotEmpty(t, id)

	song := domain.NewSong("Song A", "Artist", 120)
	bus.Publish(domain.NewSongAddedEvent(song, 0))
	bus.Publish(domain.NewSongRemovedEvent(song, 0))

	require.Len(t, got, 1)
	added, ok := got[0].(domain.SongAddedEvent)
	require.True(t, ok)
	assert.Equal(t, song, added.Song)
	assert.False(t, added.Timestamp().IsZero())
}

func TestSyncEventBus_DeliveryOrder(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var order []string
	bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })
	bus.Subscribe(domain.EventSongMoved, func(domain.Event) { order = append(order, "first") })
	bus.Subscribe(domain.EventSongMoved, func(domain.Event) { order = append(order, "second") })

	bus.Publish(domain.NewSongMovedEvent(0, 1))
	assert.Equal(t, []string{"first", "second", "all"}, order)
}

func TestSyncEventBus_Unsubscribe(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var order []string
	a := bus.Subscribe(domain.EventSongPlayed, func(domain.Event) { order = append(order, "a") })
	bus.Subscribe(domain.EventSongPlayed, func(domain.Event) { order = append(order, "b") })
	bus.Subscribe(domain.EventSongPlayed, func(domain.Event) { order = append(order, "c") })
	all := bus.SubscribeAll(func(domain.Event) { order = append(order, "all") })

	bus.Unsubscribe(a)
	bus.Unsubscribe(all)
	bus.Unsubscribe("missing")

	bus.Publish(domain.NewSongPlayedEvent(domain.NewSong("x", "y", 1)))
	assert.Equal(t, []string{"b", "c"}, order)
	assert.Equal(t, 2, bus.SubscriberCount())
}

func TestSyncEventBus_HandlerPanicIsContained(t *testing.T) {
	var buf bytes.Buffer
	bus := NewSyncEventBus(logger.NewLogger(logger.Config{Level: slog.LevelDebug, Format: "text", Output: &buf}))
	defer bus.Close()

	called := false
	bus.Subscribe(domain.EventSongRated, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventSongRated, func(domain.Event) { called = true })

	assert.NotPanics(t, func() { bus.Publish(domain.NewSongRatedEvent("id", 4)) })
	assert.True(t, called)
	assert.Contains(t, buf.String(), "event handler panicked")
	assert.Contains(t, buf.String(), "song.rated")
}

func TestSyncEventBus_HasSubscribers(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	assert.False(t, bus.HasSubscribers(domain.EventPlaylistSorted))

	id := bus.Subscribe(domain.EventPlaylistSorted, func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventPlaylistSorted))
	assert.False(t, bus.HasSubscribers(domain.EventPlaylistShuffled))

	bus.Unsubscribe(id)
	bus.SubscribeAll(func(domain.Event) {})
	assert.True(t, bus.HasSubscribers(domain.EventPlaylistShuffled))
}

func TestSyncEventBus_Close(t *testing.T) {
	bus := NewSyncEventBus(nil)

	calls := 0
	bus.SubscribeAll(func(domain.Event) { calls++ })

	require.NoError(t, bus.Close())
	assert.ErrorIs(t, bus.Close(), ErrClosed)

	bus.Publish(domain.NewPlaylistReversedEvent(true))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.SubscriberCount())
	assert.Empty(t, bus.Subscribe(domain.EventSongAdded, func(domain.Event) {}))
	assert.Empty(t, bus.SubscribeAll(func(domain.Event) {}))
}

func TestSyncEventBus_NilInputs(t *testing.T) {
	bus := NewSyncEventBus(nil)
	defer bus.Close()

	assert.NotPanics(t, func() { bus.Publish(nil) })
	assert.Panics(t, func() { bus.Subscribe(domain.EventSongAdded, nil) })
	assert.Panics(t, func() { bus.SubscribeAll(nil) })
}

func TestSyncEventBus_Concurrent(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	bus := NewSyncEventBus(nil)
	defer bus.Close()

	var received atomic.Int64
	bus.SubscribeAll(func(domain.Event) { received.Add(1) })

	const publishers, perPublisher = 8, 100
	var wg sync.WaitGroup
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perPublisher {
				bus.Publish(domain.NewSongMovedEvent(i, i+1))
			}
		}()
	}

	// Churn subscriptions while publishing.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 50 {
			id := bus.Subscribe(domain.EventSongMoved, func(domain.Event) {})
			bus.Unsubscribe(id)
		}
	}()

	wg.Wait()
	assert.Equal(t, int64(publishers*perPublisher), received.Load())
}
