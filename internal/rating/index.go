// Package rating indexes songs by a 1-5 rating.
//
// The index is an unbalanced binary search tree with one node per rating
// that is actually present. Each node owns a bucket of songs kept in
// insertion order. A side map from identity to (rating, position) lets
// Remove go straight to the bucket without searching it.
package rating

import (
	"fmt"
	"slices"

	"github.com/tejashwikalptaru/playwise/internal/domain"
)

type bucket struct {
	rating int
	songs  []domain.RatedSong
	left   *bucket
	right  *bucket
}

type slot struct {
	rating int
	pos    int
}

// Index is a rating tree plus its identity map.
// It is not safe for concurrent use; service.RatingService serialises access.
type Index struct {
	root  *bucket
	slots map[string]slot
}

// New creates an empty index.
func New() *Index {
	return &Index{
		slots: make(map[string]slot),
	}
}

// Insert files song under rating with the given identity.
// Re-inserting a known identity moves it to the new rating, at the end of
// that bucket.
func (x *Index) Insert(id string, song domain.Song, rating int) error {
	if !domain.ValidRating(rating) {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}
	if _, ok := x.slots[id]; ok {
		x.Remove(id)
	}

	b := x.findOrCreate(rating)
	b.songs = append(b.songs, domain.RatedSong{ID: id, Song: song})
	x.slots[id] = slot{rating: rating, pos: len(b.songs) - 1}
	return nil
}

// Query returns the songs rated rating in insertion order.
// A rating with no songs yields an empty result, not an error.
func (x *Index) Query(rating int) ([]domain.RatedSong, error) {
	if !domain.ValidRating(rating) {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidRating, rating)
	}
	b := x.find(rating)
	if b == nil {
		return []domain.RatedSong{}, nil
	}
	return slices.Clone(b.songs), nil
}

// Remove deletes the song filed under id. Returns false if id is unknown.
// A bucket that becomes empty is removed from the tree; its children are
// re-attached so no other rating becomes unreachable.
func (x *Index) Remove(id string) bool {
	s, ok := x.slots[id]
	if !ok {
		return false
	}
	delete(x.slots, id)

	b := x.find(s.rating)
	if b == nil || s.pos >= len(b.songs) || b.songs[s.pos].ID != id {
		return false
	}

	b.songs = slices.Delete(b.songs, s.pos, s.pos+1)
	// Songs after the removed one moved down by one.
	for i := s.pos; i < len(b.songs); i++ {
		x.slots[b.songs[i].ID] = slot{rating: s.rating, pos: i}
	}

	if len(b.songs) == 0 {
		x.root = deleteNode(x.root, s.rating)
	}
	return true
}

// RatingOf returns the rating an identity is filed under.
func (x *Index) RatingOf(id string) (int, bool) {
	s, ok := x.slots[id]
	return s.rating, ok
}

// Len returns the number of indexed songs.
func (x *Index) Len() int {
	return len(x.slots)
}

// Counts returns the bucket size for every rating from 1 to 5.
// Absent ratings report zero.
func (x *Index) Counts() map[int]int {
	counts := make(map[int]int, domain.MaxRating)
	for r := domain.MinRating; r <= domain.MaxRating; r++ {
		counts[r] = 0
	}
	x.Walk(func(rating int, songs []domain.RatedSong) {
		counts[rating] = len(songs)
	})
	return counts
}

// Ratings returns the ratings present, ascending.
func (x *Index) Ratings() []int {
	var ratings []int
	x.Walk(func(rating int, _ []domain.RatedSong) {
		ratings = append(ratings, rating)
	})
	return ratings
}

// Walk visits buckets in ascending rating order.
// fn must not retain or modify songs.
func (x *Index) Walk(fn func(rating int, songs []domain.RatedSong)) {
	var walk func(b *bucket)
	walk = func(b *bucket) {
		if b == nil {
			return
		}
		walk(b.left)
		fn(b.rating, b.songs)
		walk(b.right)
	}
	walk(x.root)
}

func (x *Index) find(rating int) *bucket {
	cur := x.root
	for cur != nil {
		switch {
		case rating == cur.rating:
			return cur
		case rating < cur.rating:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	return nil
}

func (x *Index) findOrCreate(rating int) *bucket {
	link := &x.root
	for *link != nil {
		cur := *link
		switch {
		case rating == cur.rating:
			return cur
		case rating < cur.rating:
			link = &cur.left
		default:
			link = &cur.right
		}
	}
	*link = &bucket{rating: rating}
	return *link
}

// deleteNode removes the node holding rating from the subtree at b and
// returns the new subtree root. A node with two children takes over its
// in-order successor's rating and bucket.
func deleteNode(b *bucket, rating int) *bucket {
	if b == nil {
		return nil
	}
	switch {
	case rating < b.rating:
		b.left = deleteNode(b.left, rating)
		return b
	case rating > b.rating:
		b.right = deleteNode(b.right, rating)
		return b
	}

	if b.left == nil {
		return b.right
	}
	if b.right == nil {
		return b.left
	}

	succ := b.right
	for succ.left != nil {
		succ = succ.left
	}
	b.rating, b.songs = succ.rating, succ.songs
	b.right = deleteNode(b.right, succ.rating)
	return b
}
