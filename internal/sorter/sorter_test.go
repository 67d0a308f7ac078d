package sorter

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/playlist"
)

func newEngine(songs ...domain.Song) *playlist.Engine {
	e := playlist.New()
	for _, s := range songs {
		e.Append(s)
	}
	return e
}

func titles(songs []domain.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.Title)
	}
	return out
}

func TestSort_ByTitle(t *testing.T) {
	e := newEngine(
		domain.NewSong("Charlie", "x", 3),
		domain.NewSong("Alpha", "x", 1),
		domain.NewSong("Echo", "x", 5),
		domain.NewSong("Bravo", "x", 2),
	)

	require.NoError(t, Sort(e, domain.CriterionTitle, false))
	asc := titles(e.Songs())
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Echo"}, asc)

	require.NoError(t, Sort(e, domain.CriterionTitle, true))
	desc := titles(e.Songs())
	slices.Reverse(desc)
	assert.Equal(t, asc, desc, "descending must be the exact reverse for distinct titles")
	assert.NoError(t, e.CheckIntegrity())
}

func TestSort_ByDurationIsStable(t *testing.T) {
	e := newEngine(
		domain.NewSong("A", "x", 200),
		domain.NewSong("B", "x", 100),
		domain.NewSong("C", "x", 200),
		domain.NewSong("D", "x", 100),
	)

	require.NoError(t, Sort(e, domain.CriterionDuration, false))
	assert.Equal(t, []string{"B", "D", "A", "C"}, titles(e.Songs()))

	// Equal keys keep their relative order when descending too.
	require.NoError(t, Sort(e, domain.CriterionDuration, true))
	assert.Equal(t, []string{"A", "C", "B", "D"}, titles(e.Songs()))
}

func TestSort_RecentlyAdded(t *testing.T) {
	e := newEngine(
		domain.NewSong("first", "x", 1),
		domain.NewSong("second", "x", 1),
		domain.NewSong("third", "x", 1),
	)

	require.NoError(t, Sort(e, domain.CriterionRecentlyAdded, false))
	assert.Equal(t, []string{"third", "second", "first"}, titles(e.Songs()))

	// Positions are re-read from the current traversal order.
	require.NoError(t, Sort(e, domain.CriterionRecentlyAdded, true))
	assert.Equal(t, []string{"third", "second", "first"}, titles(e.Songs()))
}

func TestSort_RespectsReversal(t *testing.T) {
	e := newEngine(
		domain.NewSong("A", "x", 1),
		domain.NewSong("B", "x", 2),
		domain.NewSong("C", "x", 3),
	)
	e.Reverse()

	require.NoError(t, Sort(e, domain.CriterionRecentlyAdded, false))
	// Traversal was C B A, so A is the most recent.
	assert.Equal(t, []string{"A", "B", "C"}, titles(e.Songs()))
	assert.True(t, e.Reversed())

	require.NoError(t, Sort(e, domain.CriterionDuration, true))
	assert.Equal(t, []string{"C", "B", "A"}, titles(e.Songs()))
	assert.NoError(t, e.CheckIntegrity())
}

func TestSort_InvalidCriterion(t *testing.T) {
	e := newEngine(domain.NewSong("B", "x", 1), domain.NewSong("A", "x", 2))

	err := Sort(e, domain.Criterion(42), false)
	assert.ErrorIs(t, err, domain.ErrInvalidCriterion)
	assert.Equal(t, []string{"B", "A"}, titles(e.Songs()))
}

func TestSort_EmptyAndSingle(t *testing.T) {
	e := newEngine()
	require.NoError(t, Sort(e, domain.CriterionTitle, false))
	assert.Equal(t, 0, e.Len())

	e = newEngine(domain.NewSong("only", "x", 1))
	require.NoError(t, Sort(e, domain.CriterionDuration, true))
	assert.Equal(t, []string{"only"}, titles(e.Songs()))
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	in := []domain.Song{domain.NewSong("B", "x", 1), domain.NewSong("A", "x", 2)}

	out := Merge(in, domain.CriterionTitle, false)
	assert.Equal(t, []string{"A", "B"}, titles(out))
	assert.Equal(t, []string{"B", "A"}, titles(in))
}

func TestTopByDuration(t *testing.T) {
	songs := []domain.Song{
		domain.NewSong("a", "x", 10),
		domain.NewSong("b", "x", 50),
		domain.NewSong("c", "x", 30),
		domain.NewSong("d", "x", 50),
	}

	assert.Equal(t, []string{"b", "d", "c"}, titles(TopByDuration(songs, 3)))
	assert.Len(t, TopByDuration(songs, 10), 4)
	assert.Empty(t, TopByDuration(nil, 5))
}
