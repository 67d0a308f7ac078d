package tags

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// Library is the result of scanning one or more directories.
type Library struct {
	Songs   []domain.Song
	Genres  map[string]string // title -> genre, for the summary
	Skipped int               // music files that could not be read
}

// Scanner walks directories and reads every music file it finds.
type Scanner struct {
	logger *slog.Logger
}

// NewScanner creates a scanner.
func NewScanner(logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{logger: logger.With(slog.String("component", "tags"))}
}

// Scan reads every music file under roots. Files come back sorted by path
// within each root so repeated scans seed the same order. Unreadable files are
// logged and counted; a root that cannot be walked is an error.
func (s *Scanner) Scan(ctx context.Context, roots ...string) (Library, error) {
	lib := Library{Genres: make(map[string]string)}

	for _, root := range roots {
		var paths []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if !d.IsDir() && IsMusicFile(path) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return Library{}, fmt.Errorf("scan %s: %w", root, err)
		}

		sort.Strings(paths)
		for _, path := range paths {
			track, err := Read(path)
			if err != nil {
				lib.Skipped++
				s.logger.Warn("skipping unreadable file",
					slog.String("path", path),
					slog.Any("error", err))
				continue
			}
			lib.Songs = append(lib.Songs, track.Song)
			if track.Genre != "" {
				lib.Genres[track.Song.Title] = track.Genre
			}
		}
		s.logger.Debug("scanned library source",
			slog.String("root", root),
			slog.Int("files", len(paths)))
	}

	return lib, nil
}
