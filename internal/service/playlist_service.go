// Package service coordinates the playlist core with history, lookup and
// event publishing.
package service

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/pin"
	"github.com/tejashwikalptaru/playwise/internal/playlist"
	"github.com/tejashwikalptaru/playwise/internal/ports"
	"github.com/tejashwikalptaru/playwise/internal/sorter"
)

// PlaylistService owns one playlist and everything that reorders it.
// Every method takes the same mutex, so a shuffle never interleaves with a
// move or a delete. Events are published while the lock is held.
type PlaylistService struct {
	// Dependencies (injected)
	lookup  ports.LookupRepository
	history ports.HistoryRepository
	bus     ports.EventBus
	logger  *slog.Logger

	// State
	engine *playlist.Engine
	pins   *pin.Controller
	newID  func() string

	mu sync.Mutex
}

// NewPlaylistService creates a service around an empty playlist.
// A nil rng shuffles with the process-wide generator.
func NewPlaylistService(
	lookup ports.LookupRepository,
	history ports.HistoryRepository,
	bus ports.EventBus,
	rng pin.Source,
	logger *slog.Logger,
) *PlaylistService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("service", "PlaylistService"))

	engine := playlist.New()
	return &PlaylistService{
		lookup:  lookup,
		history: history,
		bus:     bus,
		logger:  logger,
		engine:  engine,
		pins:    pin.NewController(engine, rng, logger),
		newID:   uuid.NewString,
	}
}

// AddSong appends song at the logical end.
func (s *PlaylistService) AddSong(song domain.Song) error {
	if err := song.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.appendLocked(song)
	s.publishUpdated()
	return nil
}

// AddSongs appends songs in order. Nothing is added if any song is invalid.
func (s *PlaylistService) AddSongs(songs []domain.Song) error {
	for _, song := range songs {
		if err := song.Validate(); err != nil {
			return err
		}
	}
	if len(songs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, song := range songs {
		s.appendLocked(song)
	}
	s.publishUpdated()
	return nil
}

func (s *PlaylistService) appendLocked(song domain.Song) {
	s.engine.Append(song)
	s.bus.Publish(domain.NewSongAddedEvent(song, s.engine.Len()-1))
}

// DeleteAt removes and returns the song at logical index.
func (s *PlaylistService) DeleteAt(index int) (domain.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, err := s.engine.DeleteAt(index)
	if err != nil {
		return domain.Song{}, err
	}

	s.bus.Publish(domain.NewSongRemovedEvent(song, index))
	s.publishUpdated()
	return song, nil
}

// Move swaps the songs at logical indices from and to.
func (s *PlaylistService) Move(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Move(from, to); err != nil {
		return err
	}

	s.bus.Publish(domain.NewSongMovedEvent(from, to))
	s.publishUpdated()
	return nil
}

// Reverse flips the logical order in constant time.
func (s *PlaylistService) Reverse() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Reverse()
	s.bus.Publish(domain.NewPlaylistReversedEvent(s.engine.Reversed()))
	s.publishUpdated()
}

// Songs returns the playlist in logical order.
func (s *PlaylistService) Songs() []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Songs()
}

// Len returns the number of songs.
func (s *PlaylistService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Len()
}

// Reversed reports whether traversal currently runs tail to head.
func (s *PlaylistService) Reversed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Reversed()
}

// Pin moves the first song titled title to index and keeps it there across
// shuffles.
func (s *PlaylistService) Pin(id, title string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.pins.Pin(id, title, index); err != nil {
		return err
	}

	s.bus.Publish(domain.NewSongPinnedEvent(id, index))
	s.publishUpdated()
	return nil
}

// Unpin releases id. Returns false if it was not pinned.
func (s *PlaylistService) Unpin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.pins.Unpin(id) {
		return false
	}
	s.bus.Publish(domain.NewSongUnpinnedEvent(id))
	return true
}

// Pinned returns a copy of the identity to index pin table.
func (s *PlaylistService) Pinned() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pins.Pinned()
}

// Shuffle randomises every unpinned song and returns the number of pins
// honoured.
func (s *PlaylistService) Shuffle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pinned := s.pins.Shuffle()
	s.logger.Debug("playlist shuffled",
		slog.Int("songs", s.engine.Len()),
		slog.Int("pinned", pinned))

	s.bus.Publish(domain.NewPlaylistShuffledEvent(pinned))
	s.publishUpdated()
	return pinned
}

// Sort reorders the playlist by criterion. Pins are not consulted.
func (s *PlaylistService) Sort(criterion domain.Criterion, descending bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := sorter.Sort(s.engine, criterion, descending); err != nil {
		return err
	}

	s.bus.Publish(domain.NewPlaylistSortedEvent(criterion, descending))
	s.publishUpdated()
	return nil
}

// Play records the song at logical index as played and returns it.
func (s *PlaylistService) Play(index int) (domain.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, err := s.engine.At(index)
	if err != nil {
		return domain.Song{}, err
	}

	s.recordLocked(song)
	return song, nil
}

// RecordPlay pushes song on the history stack without touching the playlist.
func (s *PlaylistService) RecordPlay(song domain.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordLocked(song)
}

func (s *PlaylistService) recordLocked(song domain.Song) {
	s.history.Push(song)
	s.bus.Publish(domain.NewSongPlayedEvent(song))
}

// UndoLastPlay pops the most recent play and re-appends it to the playlist.
func (s *PlaylistService) UndoLastPlay() (domain.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song, ok := s.history.Pop()
	if !ok {
		return domain.Song{}, domain.NewServiceError("PlaylistService", "UndoLastPlay", "nothing to undo", domain.ErrHistoryEmpty)
	}

	s.bus.Publish(domain.NewPlayUndoneEvent(song))
	s.appendLocked(song)
	s.publishUpdated()
	return song, nil
}

// History returns up to n recent plays, most recent first.
func (s *PlaylistService) History(n int) []domain.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Recent(n)
}

// Track registers song under a fresh identity and appends it.
func (s *PlaylistService) Track(song domain.Song) (string, error) {
	if err := song.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.lookup.Add(id, song)
	s.appendLocked(song)
	s.publishUpdated()

	s.logger.Debug("song tracked", slog.String("id", id), slog.String("title", song.Title))
	return id, nil
}

// Untrack forgets id, drops its pin and deletes the first playlist song with
// its title. Returns false if id was unknown.
func (s *PlaylistService) Untrack(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked, ok := s.lookup.ByID(id)
	if !ok {
		return false
	}
	s.lookup.Remove(id)
	if s.pins.Unpin(id) {
		s.bus.Publish(domain.NewSongUnpinnedEvent(id))
	}

	index := s.engine.IndexOf(tracked.Title)
	if index < 0 {
		s.logger.Warn("tracked song missing from playlist",
			slog.String("id", id),
			slog.String("title", tracked.Title))
		return true
	}

	song, err := s.engine.DeleteAt(index)
	if err != nil {
		// IndexOf just found it.
		panic(fmt.Sprintf("playlist: delete of located index %d failed: %v", index, err))
	}
	s.bus.Publish(domain.NewSongRemovedEvent(song, index))
	s.publishUpdated()
	return true
}

// LookupByID returns the song tracked under id.
func (s *PlaylistService) LookupByID(id string) (domain.TrackedSong, bool) {
	return s.lookup.ByID(id)
}

// LookupByTitle returns every tracked song with title.
func (s *PlaylistService) LookupByTitle(title string) []domain.TrackedSong {
	return s.lookup.ByTitle(title)
}

// CheckIntegrity verifies the playlist links. Intended for tests and debug
// builds.
func (s *PlaylistService) CheckIntegrity() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.CheckIntegrity()
}

func (s *PlaylistService) publishUpdated() {
	if s.bus.HasSubscribers(domain.EventPlaylistUpdated) {
		s.bus.Publish(domain.NewPlaylistUpdatedEvent(s.engine.Songs()))
	}
}
