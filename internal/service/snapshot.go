package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/sorter"
)

// Default snapshot sizes.
const (
	DefaultTopLongest  = 5
	DefaultRecentPlays = 5
)

// HistorySource lists recent plays, most recent first.
type HistorySource interface {
	History(n int) []domain.Song
}

// RatingSource reports bucket sizes per rating.
type RatingSource interface {
	Counts() map[int]int
}

// SnapshotService exports a point-in-time view of the playlist, its play
// history and its ratings.
type SnapshotService struct {
	songs   SongSource
	history HistorySource
	ratings RatingSource

	topLongest  int
	recentPlays int
	now         func() time.Time
}

// NewSnapshotService creates an exporter. Sizes <= 0 fall back to the
// defaults.
func NewSnapshotService(songs SongSource, history HistorySource, ratings RatingSource, topLongest, recentPlays int) *SnapshotService {
	if topLongest <= 0 {
		topLongest = DefaultTopLongest
	}
	if recentPlays <= 0 {
		recentPlays = DefaultRecentPlays
	}
	return &SnapshotService{
		songs:       songs,
		history:     history,
		ratings:     ratings,
		topLongest:  topLongest,
		recentPlays: recentPlays,
		now:         time.Now,
	}
}

// Export gathers the longest songs, the latest plays and the rating counts.
// Songs of equal length keep their playlist order.
func (s *SnapshotService) Export() domain.Snapshot {
	return domain.Snapshot{
		TopLongest:   sorter.TopByDuration(s.songs.Songs(), s.topLongest),
		RecentPlays:  s.history.History(s.recentPlays),
		RatingCounts: s.ratings.Counts(),
		TakenAt:      s.now(),
	}
}

// FormatSnapshot renders a snapshot for the terminal.
func FormatSnapshot(snap domain.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "snapshot taken %s\n", humanize.Time(snap.TakenAt))

	b.WriteString("longest:\n")
	for i, song := range snap.TopLongest {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, song)
	}

	b.WriteString("recently played:\n")
	if len(snap.RecentPlays) == 0 {
		b.WriteString("  (none)\n")
	}
	for i, song := range snap.RecentPlays {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, song)
	}

	b.WriteString("ratings:\n")
	for r := domain.MaxRating; r >= domain.MinRating; r-- {
		fmt.Fprintf(&b, "  %s %s\n", strings.Repeat("*", r), humanize.Comma(int64(snap.RatingCounts[r])))
	}
	return b.String()
}
