// Package sorter reorders a playlist with a stable merge sort.
package sorter

import (
	"cmp"
	"fmt"

	"github.com/tejashwikalptaru/playwise/internal/domain"
	"github.com/tejashwikalptaru/playwise/internal/ports"
)

// entry tags a song with its position in traversal order at sort time.
type entry struct {
	song  domain.Song
	added int
}

// Sort rebuilds seq ordered by criterion. Equal keys keep their current
// relative order in both directions.
func Sort(seq ports.Sequence, criterion domain.Criterion, descending bool) error {
	if !criterion.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrInvalidCriterion, int(criterion))
	}
	seq.Reset(Merge(seq.Songs(), criterion, descending))
	return nil
}

// Merge returns songs ordered by criterion without touching the input.
// An invalid criterion leaves the order unchanged.
//
// For CriterionRecentlyAdded the key is the negated position in songs, so
// ascending puts the most recently added song first.
func Merge(songs []domain.Song, criterion domain.Criterion, descending bool) []domain.Song {
	entries := make([]entry, len(songs))
	for i, s := range songs {
		entries[i] = entry{song: s, added: i}
	}

	sorted := mergeSort(entries, keyFunc(criterion), descending)

	out := make([]domain.Song, len(sorted))
	for i, e := range sorted {
		out[i] = e.song
	}
	return out
}

// TopByDuration returns up to n of the longest songs, longest first.
func TopByDuration(songs []domain.Song, n int) []domain.Song {
	sorted := Merge(songs, domain.CriterionDuration, true)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// compareFunc orders two entries; negative means a sorts first ascending.
type compareFunc func(a, b entry) int

func keyFunc(criterion domain.Criterion) compareFunc {
	switch criterion {
	case domain.CriterionTitle:
		return func(a, b entry) int { return cmp.Compare(a.song.Title, b.song.Title) }
	case domain.CriterionDuration:
		return func(a, b entry) int { return cmp.Compare(a.song.Duration, b.song.Duration) }
	case domain.CriterionRecentlyAdded:
		return func(a, b entry) int { return cmp.Compare(-a.added, -b.added) }
	default:
		return func(entry, entry) int { return 0 }
	}
}

func mergeSort(entries []entry, compare compareFunc, descending bool) []entry {
	if len(entries) <= 1 {
		return entries
	}
	mid := len(entries) / 2
	left := mergeSort(entries[:mid], compare, descending)
	right := mergeSort(entries[mid:], compare, descending)
	return merge(left, right, compare, descending)
}

// merge combines two sorted runs. The left element wins ties, which is what
// keeps the sort stable.
func merge(left, right []entry, compare compareFunc, descending bool) []entry {
	out := make([]entry, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		c := compare(left[i], right[j])
		if descending {
			c = -c
		}
		if c <= 0 {
			out = append(out, left[i])
			i++
		} else {
			out = append(out, right[j])
			j++
		}
	}
	out = append(out, left[i:]...)
	return append(out, right[j:]...)
}
