// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the PlayWise playlist engine.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Song represents a single song in a playlist.
// Songs are passive values: once created they are never mutated in place.
type Song struct {
	// Title is the song title
	Title string

	// Artist is the performing artist name
	Artist string

	// Duration is the total length of the song in whole seconds
	Duration time.Duration
}

// NewSong creates a song with a duration given in seconds.
func NewSong(title, artist string, seconds int) Song {
	return Song{
		Title:    title,
		Artist:   artist,
		Duration: time.Duration(seconds) * time.Second,
	}
}

// Seconds returns the duration in whole seconds.
func (s Song) Seconds() int {
	return int(s.Duration / time.Second)
}

// Validate checks that the song can be stored in a playlist.
func (s Song) Validate() error {
	if s.Duration < 0 {
		return NewValidationError("duration", s.Duration, "must not be negative")
	}
	return nil
}

// String renders the song the way playlist listings show it.
func (s Song) String() string {
	return fmt.Sprintf("%s by %s (%ds)", s.Title, s.Artist, s.Seconds())
}

// RatedSong is a song stored in a rating bucket under an opaque identity.
type RatedSong struct {
	ID string
	Song
}

// TrackedSong is a song registered in the identity lookup.
type TrackedSong struct {
	ID string
	Song
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether r is within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Criterion selects the key a playlist is sorted by.
type Criterion int

const (
	// CriterionTitle sorts lexicographically by title
	CriterionTitle Criterion = iota

	// CriterionDuration sorts by song length
	CriterionDuration

	// CriterionRecentlyAdded sorts by traversal position, most recent first
	CriterionRecentlyAdded
)

// String returns the configuration name of the criterion.
func (c Criterion) String() string {
	switch c {
	case CriterionTitle:
		return "title"
	case CriterionDuration:
		return "duration"
	case CriterionRecentlyAdded:
		return "recently_added"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the known criteria.
func (c Criterion) Valid() bool {
	return c >= CriterionTitle && c <= CriterionRecentlyAdded
}

// ParseCriterion converts a name such as "title" into a Criterion.
func ParseCriterion(name string) (Criterion, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		return CriterionTitle, nil
	case "duration":
		return CriterionDuration, nil
	case "recently_added", "recently-added", "recent":
		return CriterionRecentlyAdded, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCriterion, name)
	}
}

// UnknownGenre is reported for songs missing from a genre map.
const UnknownGenre = "Unknown"

// Summary aggregates a playlist in traversal order.
type Summary struct {
	// GenreDistribution maps genre to the number of songs
	GenreDistribution map[string]int

	// TotalPlaytime is the sum of all song durations
	TotalPlaytime time.Duration

	// ArtistCount is the number of distinct artists
	ArtistCount int

	// SongCount is the number of songs visited
	SongCount int
}

// Snapshot is a point-in-time export of playlist statistics.
type Snapshot struct {
	// TopLongest lists the longest songs, longest first
	TopLongest []Song

	// RecentPlays lists recently played songs, most recent first
	RecentPlays []Song

	// RatingCounts maps every rating 1..5 to its bucket size
	RatingCounts map[int]int

	// TakenAt is when the snapshot was exported
	TakenAt time.Time
}
