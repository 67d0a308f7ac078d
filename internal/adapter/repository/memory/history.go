// Package memory provides in-memory repository implementations.
package memory

import (
	"slices"
	"sync"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
)

// HistoryStack implements ports.HistoryRepository as a LIFO of played songs.
//
// With a positive capacity the oldest entry is evicted once the stack is full.
// Thread-safe: All operations protected by sync.RWMutex.
type HistoryStack struct {
	mu       sync.RWMutex
	songs    []domain.Song // oldest first
	capacity int
}

// NewHistoryStack creates a history stack. capacity <= 0 means unbounded.
func NewHistoryStack(capacity int) *HistoryStack {
	return &HistoryStack{capacity: max(capacity, 0)}
}

// Push records song as the most recent play.
func (h *HistoryStack) Push(song domain.Song) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.capacity > 0 && len(h.songs) == h.capacity {
		h.songs = slices.Delete(h.songs, 0, 1)
	}
	h.songs = append(h.songs, song)
}

// Pop removes and returns the most recent play.
func (h *HistoryStack) Pop() (domain.Song, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.songs) == 0 {
		return domain.Song{}, false
	}
	last := len(h.songs) - 1
	song := h.songs[last]
	h.songs = h.songs[:last]
	return song, true
}

// Recent returns up to n plays, most recent first.
func (h *HistoryStack) Recent(n int) []domain.Song {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n = min(max(n, 0), len(h.songs))
	out := make([]domain.Song, 0, n)
	for i := len(h.songs) - 1; i >= len(h.songs)-n; i-- {
		out = append(out, h.songs[i])
	}
	return out
}

// All returns every recorded play, oldest first.
func (h *HistoryStack) All() []domain.Song {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.songs)
}

// Len returns the number of recorded plays.
func (h *HistoryStack) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.songs)
}

// Clear drops the whole history.
func (h *HistoryStack) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.songs = nil
}

var _ ports.HistoryRepository = (*HistoryStack)(nil)
