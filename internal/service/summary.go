package service

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// SongSource is anything that can list a playlist in traversal order.
type SongSource interface {
	Songs() []domain.Song
}

// SummaryService aggregates a playlist for display.
type SummaryService struct {
	source SongSource
}

// NewSummaryService creates a summary over source.
func NewSummaryService(source SongSource) *SummaryService {
	return &SummaryService{source: source}
}

// Summarize walks the playlist once. Titles missing from genres count as
// domain.UnknownGenre.
func (s *SummaryService) Summarize(genres map[string]string) domain.Summary {
	songs := s.source.Songs()

	summary := domain.Summary{
		GenreDistribution: make(map[string]int),
		SongCount:         len(songs),
	}
	artists := make(map[string]struct{})
	for _, song := range songs {
		genre, ok := genres[song.Title]
		if !ok || genre == "" {
			genre = domain.UnknownGenre
		}
		summary.GenreDistribution[genre]++
		summary.TotalPlaytime += song.Duration
		artists[song.Artist] = struct{}{}
	}
	summary.ArtistCount = len(artists)
	return summary
}

// FormatSummary renders a summary as human readable lines, genres ordered by
// count then name.
func FormatSummary(summary domain.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s songs by %s artists, %s total\n",
		humanize.Comma(int64(summary.SongCount)),
		humanize.Comma(int64(summary.ArtistCount)),
		formatPlaytime(summary.TotalPlaytime))

	genres := slices.SortedFunc(maps.Keys(summary.GenreDistribution), func(a, b string) int {
		if d := summary.GenreDistribution[b] - summary.GenreDistribution[a]; d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	for _, g := range genres {
		fmt.Fprintf(&b, "  %-12s %s\n", g, humanize.Comma(int64(summary.GenreDistribution[g])))
	}
	return b.String()
}

// formatPlaytime prints h:mm:ss, dropping the hour when it is zero.
func formatPlaytime(d time.Duration) string {
	total := int64(d / time.Second)
	h, m, sec := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%s:%02d:%02d", humanize.Comma(h), m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
