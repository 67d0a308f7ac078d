package service

import (
	"log/slog"
	"sync"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
	"github.com/tejashwikalptaru/playwise/internal/rating"
)

// RatingService guards a rating index and announces changes on the bus.
type RatingService struct {
	bus    ports.EventBus
	logger *slog.Logger

	index *rating.Index
	mu    sync.RWMutex
}

// NewRatingService creates a service with an empty index.
func NewRatingService(bus ports.EventBus, logger *slog.Logger) *RatingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RatingService{
		bus:    bus,
		logger: logger.With(slog.String("service", "RatingService")),
		index:  rating.New(),
	}
}

// Rate files song under id with score r, moving it if id was already rated.
func (s *RatingService) Rate(id string, song domain.Song, r int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Insert(id, song, r); err != nil {
		return err
	}

	s.logger.Debug("song rated", slog.String("id", id), slog.Int("rating", r))
	s.bus.Publish(domain.NewSongRatedEvent(id, r))
	return nil
}

// SongsRated returns the songs with rating r in insertion order.
func (s *RatingService) SongsRated(r int) ([]domain.RatedSong, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Query(r)
}

// Unrate drops id from the index. Returns false if id was not rated.
func (s *RatingService) Unrate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.index.Remove(id) {
		return false
	}
	s.bus.Publish(domain.NewSongUnratedEvent(id))
	return true
}

// RatingOf returns the rating currently held by id.
func (s *RatingService) RatingOf(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.RatingOf(id)
}

// Counts returns the bucket size for every rating 1..5.
func (s *RatingService) Counts() map[int]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Counts()
}

// Len returns the number of rated songs.
func (s *RatingService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}
