package service

import (
	"math/rand/v2"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playwise/internal/adapter/eventbus"
	"github.com/tejashwikalptaru/playwise/internal/adapter/repository/memory"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/logger"
	"github.com/tejashwikalptaru/playwise/internal/testutil"
)

// recorder collects every event published on a bus.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) handle(e domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func setupPlaylistService(t *testing.T) (*PlaylistService, *recorder) {
	t.Helper()
	bus := eventbus.NewSyncEventBus(logger.NewTestLogger())
	t.Cleanup(func() { _ = bus.Close() })

	rec := &recorder{}
	bus.SubscribeAll(rec.handle)

	svc := NewPlaylistService(
		memory.NewSongLookup(),
		memory.NewHistoryStack(0),
		bus,
		rand.New(rand.NewPCG(3, 5)),
		logger.NewTestLogger(),
	)
	return svc, rec
}

func addTitles(t *testing.T, svc *PlaylistService, names ...string) {
	t.Helper()
	for i, n := range names {
		require.NoError(t, svc.AddSong(domain.NewSong(n, "artist", 100+i)))
	}
}

func titles(songs []domain.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.Title)
	}
	return out
}

func TestPlaylistService_AddSong(t *testing.T) {
	svc, rec := setupPlaylistService(t)

	require.NoError(t, svc.AddSong(domain.NewSong("A", "X", 10)))
	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, []domain.EventType{domain.EventSongAdded, domain.EventPlaylistUpdated}, rec.types())

	err := svc.AddSong(domain.Song{Title: "bad", Duration: -1})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, svc.Len())
}

func TestPlaylistService_AddSongsIsAtomic(t *testing.T) {
	svc, _ := setupPlaylistService(t)

	err := svc.AddSongs([]domain.Song{
		domain.NewSong("A", "X", 10),
		{Title: "B", Duration: -5},
	})
	assert.Error(t, err)
	assert.Equal(t, 0, svc.Len())

	require.NoError(t, svc.AddSongs([]domain.Song{domain.NewSong("A", "X", 1), domain.NewSong("B", "X", 2)}))
	assert.Equal(t, []string{"A", "B"}, titles(svc.Songs()))
	require.NoError(t, svc.AddSongs(nil))
}

func TestPlaylistService_DeleteMoveReverse(t *testing.T) {
	svc, rec := setupPlaylistService(t)
	addTitles(t, svc, "A", "B", "C", "D")
	rec.reset()

	song, err := svc.DeleteAt(1)
	require.NoError(t, err)
	assert.Equal(t, "B", song.Title)

	require.NoError(t, svc.Move(0, 2))
	assert.Equal(t, []string{"D", "C", "A"}, titles(svc.Songs()))

	svc.Reverse()
	assert.True(t, svc.Reversed())
	assert.Equal(t, []string{"A", "C", "D"}, titles(svc.Songs()))
	require.NoError(t, svc.CheckIntegrity())

	assert.Equal(t, []domain.EventType{
		domain.EventSongRemoved, domain.EventPlaylistUpdated,
		domain.EventSongMoved, domain.EventPlaylistUpdated,
		domain.EventPlaylistReversed, domain.EventPlaylistUpdated,
	}, rec.types())
}

func TestPlaylistService_FailedOpsPublishNothing(t *testing.T) {
	svc, rec := setupPlaylistService(t)
	addTitles(t, svc, "A", "B")
	rec.reset()

	_, err := svc.DeleteAt(5)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.ErrorIs(t, svc.Move(0, 9), domain.ErrOutOfRange)
	assert.ErrorIs(t, svc.Pin("p", "missing", 0), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Sort(domain.Criterion(7), false), domain.ErrInvalidCriterion)
	_, err = svc.Play(-1)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	assert.Empty(t, rec.types())
	assert.Equal(t, []string{"A", "B"}, titles(svc.Songs()))
}

func TestPlaylistService_PinAndShuffle(t *testing.T) {
	svc, rec := setupPlaylistService(t)
	addTitles(t, svc, "A", "B", "C", "D", "E", "F")

	require.NoError(t, svc.Pin("pin-f", "F", 0))
	assert.Equal(t, map[string]int{"pin-f": 0}, svc.Pinned())

	for range 20 {
		assert.Equal(t, 1, svc.Shuffle())
		assert.Equal(t, "F", svc.Songs()[0].Title)
	}
	got := titles(svc.Songs())
	slices.Sort(got)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, got)

	assert.True(t, svc.Unpin("pin-f"))
	assert.False(t, svc.Unpin("pin-f"))
	assert.Contains(t, rec.types(), domain.EventSongUnpinned)
	assert.Contains(t, rec.types(), domain.EventPlaylistShuffled)
}

func TestPlaylistService_Sort(t *testing.T) {
	svc, rec := setupPlaylistService(t)
	require.NoError(t, svc.AddSongs([]domain.Song{
		domain.NewSong("Song A", "Artist X", 180),
		domain.NewSong("Song B", "Artist Y", 200),
		domain.NewSong("Song C", "Artist Z", 150),
	}))

	require.NoError(t, svc.Sort(domain.CriterionDuration, false))
	assert.Equal(t, []string{"Song C", "Song A", "Song B"}, titles(svc.Songs()))

	require.NoError(t, svc.Sort(domain.CriterionTitle, true))
	assert.Equal(t, []string{"Song C", "Song B", "Song A"}, titles(svc.Songs()))

	assert.Contains(t, rec.types(), domain.EventPlaylistSorted)
}

func TestPlaylistService_PlayAndUndo(t *testing.T) {
	svc, _ := setupPlaylistService(t)
	addTitles(t, svc, "A", "B", "C")

	played, err := svc.Play(1)
	require.NoError(t, err)
	assert.Equal(t, "B", played.Title)
	svc.RecordPlay(domain.NewSong("Outside", "X", 5))

	assert.Equal(t, []string{"Outside", "B"}, titles(svc.History(5)))

	undone, err := svc.UndoLastPlay()
	require.NoError(t, err)
	assert.Equal(t, "Outside", undone.Title)
	assert.Equal(t, []string{"A", "B", "C", "Outside"}, titles(svc.Songs()))

	_, err = svc.UndoLastPlay()
	require.NoError(t, err)
	_, err = svc.UndoLastPlay()
	assert.ErrorIs(t, err, domain.ErrHistoryEmpty)

	var serr *domain.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "UndoLastPlay", serr.Op)
}

func TestPlaylistService_TrackAndUntrack(t *testing.T) {
	svc, _ := setupPlaylistService(t)
	addTitles(t, svc, "Dup")

	id, err := svc.Track(domain.NewSong("Dup", "Second", 42))
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	tracked, ok := svc.LookupByID(id)
	require.True(t, ok)
	assert.Equal(t, "Second", tracked.Artist)
	assert.Len(t, svc.LookupByTitle("Dup"), 1)
	assert.Equal(t, 2, svc.Len())

	require.NoError(t, svc.Pin(id, "Dup", 1))

	// Untrack removes the first title match in traversal order.
	assert.True(t, svc.Untrack(id))
	assert.False(t, svc.Untrack(id))
	assert.Equal(t, 1, svc.Len())
	assert.Empty(t, svc.Pinned())
	assert.Empty(t, svc.LookupByTitle("Dup"))
}

func TestPlaylistService_TrackRejectsInvalid(t *testing.T) {
	svc, _ := setupPlaylistService(t)

	_, err := svc.Track(domain.Song{Title: "x", Duration: -1})
	assert.Error(t, err)
	assert.Equal(t, 0, svc.Len())
}

func TestPlaylistService_ConcurrentMutations(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	svc, _ := setupPlaylistService(t)
	addTitles(t, svc, "A", "B", "C", "D", "E", "F", "G", "H")
	require.NoError(t, svc.Pin("h", "H", 3))

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				switch (w + i) % 4 {
				case 0:
					svc.Shuffle()
				case 1:
					_ = svc.Move(i%8, (i+3)%8)
				case 2:
					svc.Reverse()
				case 3:
					_ = svc.Sort(domain.CriterionTitle, i%2 == 0)
				}
			}
		}()
	}
	wg.Wait()

	require.NoError(t, svc.CheckIntegrity())
	got := titles(svc.Songs())
	slices.Sort(got)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G", "H"}, got)
}
