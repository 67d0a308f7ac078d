// Package config loads PlayWise settings from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// Defaults applied when a value is missing or out of range.
const (
	DefaultTopLongest  = 5
	DefaultRecentPlays = 5
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

type Config struct {
	Log      LogConfig      `koanf:"log"`
	History  HistoryConfig  `koanf:"history"`
	Snapshot SnapshotConfig `koanf:"snapshot"`
	Shuffle  ShuffleConfig  `koanf:"shuffle"`

	LibrarySources []string     `koanf:"library_sources"` // directories scanned for tagged audio files
	Songs          []SongConfig `koanf:"songs"`           // playlist seeded at startup
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // text or json
}

type HistoryConfig struct {
	Capacity int `koanf:"capacity"` // 0 keeps every play
}

type SnapshotConfig struct {
	TopLongest  int `koanf:"top_longest"`
	RecentPlays int `koanf:"recent_plays"`
}

type ShuffleConfig struct {
	Seed int64 `koanf:"seed"` // 0 picks a random seed
}

// SongConfig is one seeded song. Genre feeds the summary; a rating of 0
// leaves the song unrated.
type SongConfig struct {
	Title   string `koanf:"title"`
	Artist  string `koanf:"artist"`
	Seconds int    `koanf:"seconds"`
	Genre   string `koanf:"genre"`
	Rating  int    `koanf:"rating"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Snapshot: SnapshotConfig{TopLongest: DefaultTopLongest, RecentPlays: DefaultRecentPlays},
	}
}

// Load reads path if given, otherwise the first-to-last search paths with
// later files overriding earlier ones. Missing search paths are skipped; a
// missing explicit path is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(expandPath(path)), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load config %s: %w", p, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.applyDefaults()
	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	if c.Snapshot.TopLongest <= 0 {
		c.Snapshot.TopLongest = DefaultTopLongest
	}
	if c.Snapshot.RecentPlays <= 0 {
		c.Snapshot.RecentPlays = DefaultRecentPlays
	}
	if c.History.Capacity < 0 {
		c.History.Capacity = 0
	}
}

// Validate checks the seeded songs.
func (c *Config) Validate() error {
	for i, s := range c.Songs {
		if s.Title == "" {
			return domain.NewValidationError(fmt.Sprintf("songs[%d].title", i), s.Title, "must not be empty")
		}
		if s.Seconds < 0 {
			return domain.NewValidationError(fmt.Sprintf("songs[%d].seconds", i), s.Seconds, "must not be negative")
		}
		if s.Rating != 0 && !domain.ValidRating(s.Rating) {
			return domain.NewValidationError(fmt.Sprintf("songs[%d].rating", i), s.Rating,
				fmt.Sprintf("must be between %d and %d", domain.MinRating, domain.MaxRating))
		}
	}
	return nil
}

// Genres maps each seeded title to its genre. Songs without a genre are left
// out so the summary reports them as unknown.
func (c *Config) Genres() map[string]string {
	genres := make(map[string]string, len(c.Songs))
	for _, s := range c.Songs {
		if s.Genre != "" {
			genres[s.Title] = s.Genre
		}
	}
	return genres
}

func getConfigPaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "playwise", "config.toml"))
	}

	// Working directory wins.
	paths = append(paths, "playwise.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
