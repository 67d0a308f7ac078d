package ports

import (
	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// Sequence is the view of the playlist engine that reordering components
// (pin controller, sorter) work against. All indices are logical: they
// already honour the engine's reversal flag.
type Sequence interface {
	// Len returns the number of songs.
	Len() int

	// Songs materialises the current logical order.
	Songs() []domain.Song

	// Move swaps the songs at two logical indices.
	Move(from, to int) error

	// IndexOf returns the logical index of the first song titled title, or -1.
	IndexOf(title string) int

	// Reset clears the sequence and rebuilds it in the given logical order.
	Reset(songs []domain.Song)
}
