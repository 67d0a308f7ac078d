// Package pin fixes songs to logical positions and shuffles everything else.
package pin

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
)

// Source supplies uniform random integers in [0, n).
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Controller keeps a bidirectional identity<->index pin table over a
// sequence. Each identity and each index appears at most once.
//
// Pins refer to logical indices. Deleting or sorting the underlying
// sequence does not update them; the table only guarantees that a pin still
// inside the sequence is honoured by Shuffle.
type Controller struct {
	seq    ports.Sequence
	rng    Source
	logger *slog.Logger

	byID    map[string]int
	byIndex map[int]string
}

// NewController creates a controller over seq.
// A nil rng uses the process-wide math/rand/v2 generator.
func NewController(seq ports.Sequence, rng Source, logger *slog.Logger) *Controller {
	if rng == nil {
		rng = globalSource{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		seq:     seq,
		rng:     rng,
		logger:  logger,
		byID:    make(map[string]int),
		byIndex: make(map[int]string),
	}
}

// Pin moves the first song titled title (in logical order) to index and
// fixes it there under id.
func (c *Controller) Pin(id, title string, index int) error {
	size := c.seq.Len()
	if index < 0 || index >= size {
		return domain.NewIndexError(index, size)
	}
	if at, ok := c.byID[id]; ok {
		return fmt.Errorf("%w: %q at index %d", domain.ErrAlreadyPinned, id, at)
	}
	if owner, ok := c.byIndex[index]; ok {
		return fmt.Errorf("%w: index %d held by %q", domain.ErrIndexOccupied, index, owner)
	}

	current := c.seq.IndexOf(title)
	if current < 0 {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, title)
	}
	// Moving swaps; pulling a song off another pin would silently break it.
	if owner, ok := c.byIndex[current]; ok {
		return fmt.Errorf("%w: %q is held at index %d by %q", domain.ErrAlreadyPinned, title, current, owner)
	}

	if err := c.seq.Move(current, index); err != nil {
		return err
	}
	c.byID[id] = index
	c.byIndex[index] = id

	c.logger.Debug("song pinned",
		slog.String("id", id),
		slog.String("title", title),
		slog.Int("from", current),
		slog.Int("to", index))
	return nil
}

// Unpin releases id. The song stays where it is but may now be shuffled.
// Returns false if id was not pinned.
func (c *Controller) Unpin(id string) bool {
	index, ok := c.byID[id]
	if !ok {
		return false
	}
	delete(c.byID, id)
	delete(c.byIndex, index)
	return true
}

// IndexOf returns the index id is pinned to.
func (c *Controller) IndexOf(id string) (int, bool) {
	index, ok := c.byID[id]
	return index, ok
}

// Pinned returns a copy of the identity to index table.
func (c *Controller) Pinned() map[string]int {
	return maps.Clone(c.byID)
}

// Len returns the number of active pins.
func (c *Controller) Len() int {
	return len(c.byID)
}

// Shuffle randomises every unpinned song with a Fisher-Yates pass and
// rebuilds the sequence. Songs at pinned indices keep their exact position.
// It returns the number of pins honoured.
func (c *Controller) Shuffle() int {
	songs := c.seq.Songs()
	c.dropOutOfRange(len(songs))

	free := make([]domain.Song, 0, len(songs)-len(c.byIndex))
	for i, s := range songs {
		if _, pinned := c.byIndex[i]; !pinned {
			free = append(free, s)
		}
	}

	for i := len(free) - 1; i > 0; i-- {
		j := c.rng.IntN(i + 1)
		free[i], free[j] = free[j], free[i]
	}

	result := make([]domain.Song, len(songs))
	next := 0
	for i := range songs {
		if _, pinned := c.byIndex[i]; pinned {
			result[i] = songs[i]
			continue
		}
		result[i] = free[next]
		next++
	}

	c.seq.Reset(result)
	return len(c.byIndex)
}

// dropOutOfRange forgets pins that point past the end of a sequence that
// shrank since they were made.
func (c *Controller) dropOutOfRange(size int) {
	for index, id := range c.byIndex {
		if index < size {
			continue
		}
		delete(c.byIndex, index)
		delete(c.byID, id)
		c.logger.Warn("dropping pin outside playlist",
			slog.String("id", id),
			slog.Int("index", index),
			slog.Int("size", size))
	}
}
