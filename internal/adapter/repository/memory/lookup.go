package memory

import (
	"slices"
	"sync"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
)

// SongLookup implements ports.LookupRepository with two maps: identity to song
// and title to identities in registration order.
//
// Thread-safe: All operations protected by sync.RWMutex.
type SongLookup struct {
	mu      sync.RWMutex
	byID    map[string]domain.Song
	byTitle map[string][]string
}

// NewSongLookup creates an empty lookup.
func NewSongLookup() *SongLookup {
	return &SongLookup{
		byID:    make(map[string]domain.Song),
		byTitle: make(map[string][]string),
	}
}

// Add registers song under id, replacing whatever id pointed at before.
func (l *SongLookup) Add(id string, song domain.Song) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if old, ok := l.byID[id]; ok {
		l.unlinkTitle(old.Title, id)
	}
	l.byID[id] = song
	l.byTitle[song.Title] = append(l.byTitle[song.Title], id)
}

// Remove forgets id.
func (l *SongLookup) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	song, ok := l.byID[id]
	if !ok {
		return false
	}
	delete(l.byID, id)
	l.unlinkTitle(song.Title, id)
	return true
}

// unlinkTitle must be called with mu held.
func (l *SongLookup) unlinkTitle(title, id string) {
	ids := slices.DeleteFunc(l.byTitle[title], func(s string) bool { return s == id })
	if len(ids) == 0 {
		delete(l.byTitle, title)
		return
	}
	l.byTitle[title] = ids
}

// ByID returns the song registered under id.
func (l *SongLookup) ByID(id string) (domain.TrackedSong, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	song, ok := l.byID[id]
	if !ok {
		return domain.TrackedSong{}, false
	}
	return domain.TrackedSong{ID: id, Song: song}, true
}

// ByTitle returns every song registered with title, oldest registration first.
func (l *SongLookup) ByTitle(title string) []domain.TrackedSong {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := l.byTitle[title]
	out := make([]domain.TrackedSong, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.TrackedSong{ID: id, Song: l.byID[id]})
	}
	return out
}

// Len returns the number of registered identities.
func (l *SongLookup) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID)
}

var _ ports.LookupRepository = (*SongLookup)(nil)
