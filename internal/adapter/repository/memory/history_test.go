package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/testutil"
)

func song(title string) domain.Song {
	return domain.NewSong(title, "artist", 100)
}

func titles(songs []domain.Song) []string {
	out := make([]string, 0, len(songs))
	for _, s := range songs {
		out = append(out, s.Title)
	}
	return out
}

func TestHistoryStack_PushPop(t *testing.T) {
	h := NewHistoryStack(0)

	_, ok := h.Pop()
	assert.False(t, ok, "pop on empty stack")

	h.Push(song("A"))
	h.Push(song("B"))
	h.Push(song("C"))
	assert.Equal(t, 3, h.Len())

	got, ok := h.Pop()
	require.True(t, ok)
	assert.Equal(t, "C", got.Title)
	assert.Equal(t, []string{"A", "B"}, titles(h.All()))
}

func TestHistoryStack_Recent(t *testing.T) {
	h := NewHistoryStack(0)
	for _, title := range []string{"A", "B", "C", "D"} {
		h.Push(song(title))
	}

	tests := []struct {
		n    int
		want []string
	}{
		{n: 2, want: []string{"D", "C"}},
		{n: 4, want: []string{"D", "C", "B", "A"}},
		{n: 10, want: []string{"D", "C", "B", "A"}},
		{n: 0, want: []string{}},
		{n: -1, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d", tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, titles(h.Recent(tt.n)))
		})
	}
}

func TestHistoryStack_CapacityEvictsOldest(t *testing.T) {
	h := NewHistoryStack(2)
	h.Push(song("A"))
	h.Push(song("B"))
	h.Push(song("C"))

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, []string{"B", "C"}, titles(h.All()))
}

func TestHistoryStack_AllReturnsCopy(t *testing.T) {
	h := NewHistoryStack(0)
	h.Push(song("A"))

	all := h.All()
	all[0].Title = "mutated"
	assert.Equal(t, []string{"A"}, titles(h.All()))

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryStack_Concurrent(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	h := NewHistoryStack(0)
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				h.Push(song(fmt.Sprintf("%d-%d", i, j)))
				h.Recent(3)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 500, h.Len())
}
