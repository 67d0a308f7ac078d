// Package app wires configuration, logging, the event bus and the services
// into one runnable application.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math/rand/v2"
	"os"

	"github.com/tejashwikalptaru/playwise/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/playwise/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/playwise/internal/adapter/tags"
	"github.com/tejashwikalptaru/playwise/internal/config"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/logger"
	"github.com/tejashwikalptaru/playwise/internal/pin"
	"github.com/tejashwikalptaru/playwise/internal/ports"
	"github.com/tejashwikalptaru/playwise/internal/service"
)

// Application holds every dependency for one playlist session.
type Application struct {
	cfg    *config.Config
	logger *slog.Logger

	// Infrastructure
	eventBus ports.EventBus
	eventSub domain.SubscriptionID

	// Services
	playlistService *service.PlaylistService
	ratingService   *service.RatingService
	summaryService  *service.SummaryService
	snapshotService *service.SnapshotService

	genres map[string]string
	closed bool
}

// Actions are the one-shot operations the CLI applies before printing.
type Actions struct {
	Reverse    bool
	Sort       string // criterion name; empty skips sorting
	Descending bool
	Shuffle    bool
	Play       []int // logical indices to mark as played, in order
	Undo       bool  // undo the last play after Play
}

// NewApplication builds the application from cfg and seeds the playlist.
// Logs go to logOutput (stderr when nil).
func NewApplication(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	app := &Application{cfg: cfg, genres: make(map[string]string)}

	// Step 1: Logger. The environment wins over the file.
	level := logger.ParseLevel(cfg.Log.Level, slog.LevelInfo)
	if env := os.Getenv(logger.EnvLevel); env != "" {
		level = logger.ParseLevel(env, level)
	}
	app.logger = logger.NewLogger(logger.Config{Level: level, Format: cfg.Log.Format, Output: logOutput})
	app.logger.Info("initializing application", slog.String("version", GetVersionInfo().FullString()))

	// Step 2: Event bus, with every event traced at debug level
	bus := eventbus.NewSyncEventBus(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus = bus
	app.eventSub = bus.SubscribeAll(func(e domain.Event) {
		app.logger.Debug("event", slog.String("type", string(e.Type())))
	})

	// Step 3: Services
	var rng pin.Source
	if seed := cfg.Shuffle.Seed; seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
	app.playlistService = service.NewPlaylistService(
		memory.NewSongLookup(),
		memory.NewHistoryStack(cfg.History.Capacity),
		bus,
		rng,
		app.logger,
	)
	app.ratingService = service.NewRatingService(bus, app.logger)
	app.summaryService = service.NewSummaryService(app.playlistService)
	app.snapshotService = service.NewSnapshotService(
		app.playlistService,
		app.playlistService,
		app.ratingService,
		cfg.Snapshot.TopLongest,
		cfg.Snapshot.RecentPlays,
	)

	// Step 4: Seed songs from config, then from scanned libraries
	if err := app.seed(ctx); err != nil {
		_ = app.Shutdown()
		return nil, err
	}

	app.logger.Info("playlist ready",
		slog.Int("songs", app.playlistService.Len()),
		slog.Int("rated", app.ratingService.Len()))
	return app, nil
}

func (a *Application) seed(ctx context.Context) error {
	for _, sc := range a.cfg.Songs {
		song := domain.NewSong(sc.Title, sc.Artist, sc.Seconds)
		id, err := a.playlistService.Track(song)
		if err != nil {
			return fmt.Errorf("seed %q: %w", sc.Title, err)
		}
		if sc.Rating != 0 {
			if err := a.ratingService.Rate(id, song, sc.Rating); err != nil {
				return fmt.Errorf("rate %q: %w", sc.Title, err)
			}
		}
	}
	maps.Copy(a.genres, a.cfg.Genres())

	if len(a.cfg.LibrarySources) == 0 {
		return nil
	}
	lib, err := tags.NewScanner(a.logger).Scan(ctx, a.cfg.LibrarySources...)
	if err != nil {
		return err
	}
	if err := a.playlistService.AddSongs(lib.Songs); err != nil {
		return err
	}
	maps.Copy(a.genres, lib.Genres)
	if lib.Skipped > 0 {
		a.logger.Warn("some library files were skipped", slog.Int("skipped", lib.Skipped))
	}
	return nil
}

// Apply runs the requested actions in a fixed order: reverse, sort, shuffle,
// play, undo.
func (a *Application) Apply(act Actions) error {
	if act.Reverse {
		a.playlistService.Reverse()
	}
	if act.Sort != "" {
		criterion, err := domain.ParseCriterion(act.Sort)
		if err != nil {
			return err
		}
		if err := a.playlistService.Sort(criterion, act.Descending); err != nil {
			return err
		}
	}
	if act.Shuffle {
		a.playlistService.Shuffle()
	}
	for _, i := range act.Play {
		if _, err := a.playlistService.Play(i); err != nil {
			return fmt.Errorf("play %d: %w", i, err)
		}
	}
	if act.Undo {
		if _, err := a.playlistService.UndoLastPlay(); err != nil {
			return err
		}
	}
	return nil
}

// Report writes the playlist, its summary and a snapshot to w.
func (a *Application) Report(w io.Writer) error {
	songs := a.playlistService.Songs()
	if _, err := fmt.Fprintf(w, "playlist (%d songs):\n", len(songs)); err != nil {
		return err
	}
	for i, s := range songs {
		if _, err := fmt.Fprintf(w, "%3d. %s\n", i, s); err != nil {
			return err
		}
	}

	summary := a.summaryService.Summarize(a.genres)
	if _, err := fmt.Fprintf(w, "\n%s\n", service.FormatSummary(summary)); err != nil {
		return err
	}
	_, err := io.WriteString(w, service.FormatSnapshot(a.snapshotService.Export()))
	return err
}

// Shutdown releases the event bus. Calling it twice is safe.
func (a *Application) Shutdown() error {
	if a.closed {
		return nil
	}
	a.closed = true

	a.logger.Info("shutting down application")
	a.eventBus.Unsubscribe(a.eventSub)
	return a.eventBus.Close()
}

// PlaylistService returns the playlist service.
func (a *Application) PlaylistService() *service.PlaylistService { return a.playlistService }

// RatingService returns the rating service.
func (a *Application) RatingService() *service.RatingService { return a.ratingService }

// EventBus returns the application's event bus.
func (a *Application) EventBus() ports.EventBus { return a.eventBus }

// Genres returns a copy of the title to genre map used for summaries.
func (a *Application) Genres() map[string]string { return maps.Clone(a.genres) }
