package ports

import (
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// HistoryRepository is the playback history stack.
//
// Thread-safety: Implementations must be thread-safe.
type HistoryRepository interface {
	// Push records a played song on top of the stack.
	Push(song domain.Song)

	// Pop removes and returns the most recently played song.
	// Returns false when the history is empty.
	Pop() (domain.Song, bool)

	// Recent returns up to n songs, most recent first.
	Recent(n int) []domain.Song

	// All returns the whole history, oldest first.
	All() []domain.Song

	// Len returns the number of recorded plays.
	Len() int

	// Clear drops every recorded play.
	Clear()
}

// LookupRepository maps externally generated identities to songs and
// titles to identities. It does not touch the playlist; callers keep the two
// consistent.
//
// Thread-safety: Implementations must be thread-safe.
type LookupRepository interface {
	// Add registers or replaces a song under id.
	Add(id string, song domain.Song)

	// Remove forgets id. Returns false if id was unknown.
	Remove(id string) bool

	// ByID returns the song registered under id.
	ByID(id string) (domain.TrackedSong, bool)

	// ByTitle returns every song registered with title, in registration order.
	ByTitle(title string) []domain.TrackedSong

	// Len returns the number of registered identities.
	Len() int
}
