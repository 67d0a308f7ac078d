// Command playwise loads a playlist from configuration, applies a few
// reordering operations and prints the result with its summary.
//
// Build:
//
//	go build -o build/playwise ./cmd/playwise
//
// Run:
//
//	./build/playwise -config playwise.toml -sort duration -desc -play 0,1
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/tejashwikalptaru/playwise/internal/app"
	"github.com/tejashwikalptaru/playwise/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "playwise: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		act        app.Actions
		play       string
		version    bool
	)
	flag.StringVar(&configPath, "config", "", "path to a TOML config file (default: search ~/.config/playwise and ./playwise.toml)")
	flag.BoolVar(&act.Reverse, "reverse", false, "reverse the playlist")
	flag.StringVar(&act.Sort, "sort", "", "sort by title, duration or recently_added")
	flag.BoolVar(&act.Descending, "desc", false, "with -sort, sort descending")
	flag.BoolVar(&act.Shuffle, "shuffle", false, "shuffle every unpinned song")
	flag.StringVar(&play, "play", "", "comma separated indices to mark as played")
	flag.BoolVar(&act.Undo, "undo", false, "undo the last play")
	flag.BoolVar(&version, "version", false, "print version and exit")
	flag.Parse()

	if version {
		fmt.Println(app.GetVersionInfo().FullString())
		return nil
	}

	indices, err := parseIndices(play)
	if err != nil {
		return err
	}
	act.Play = indices

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	application, err := app.NewApplication(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer application.Shutdown()

	if err := application.Apply(act); err != nil {
		return err
	}
	return application.Report(os.Stdout)
}

func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad -play index %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
