// Package playlist implements the playlist engine: a doubly linked sequence of
// songs with O(1) append, node-swap moves and a lazy reversal flag.
//
// Nodes live in an arena and reference each other through stable handles
// rather than pointers. Freed slots are recycled, so handles stay small and
// the arena never holds more slots than the largest size the playlist reached.
//
// The engine is not safe for concurrent use. service.PlaylistService guards
// every engine behind a single mutation lock.
package playlist

import (
	"fmt"

	"github.com/tejashwikalptaru/playwise/internal/domain"
)

// handle addresses a node in the arena.
type handle int32

// nilHandle marks the absence of a neighbour.
const nilHandle handle = -1

type node struct {
	song domain.Song
	prev handle
	next handle
}

// Engine is an ordered, mutable sequence of songs.
//
// Invariants, outside of an in-progress swap:
//   - head.prev and tail.next are nilHandle
//   - size equals the number of nodes reachable from head via next
//   - the next-chain and the prev-chain describe the same order
//
// reversed never changes links. It only decides which physical end is
// logical index 0.
type Engine struct {
	nodes []node
	free  []handle

	head handle
	tail handle
	size int

	reversed bool
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{
		head: nilHandle,
		tail: nilHandle,
	}
}

// Len returns the number of songs.
func (e *Engine) Len() int {
	return e.size
}

// Reversed reports whether logical index 0 is currently the physical tail.
func (e *Engine) Reversed() bool {
	return e.reversed
}

// Append adds a song at the logical end of the playlist.
// When the playlist is reversed, the logical end is the physical head.
func (e *Engine) Append(song domain.Song) {
	h := e.alloc(song)

	switch {
	case e.head == nilHandle:
		e.head = h
		e.tail = h
	case e.reversed:
		e.nodes[h].next = e.head
		e.nodes[e.head].prev = h
		e.head = h
	default:
		e.nodes[h].prev = e.tail
		e.nodes[e.tail].next = h
		e.tail = h
	}
	e.size++
}

// DeleteAt removes the song at a logical index and returns it.
func (e *Engine) DeleteAt(index int) (domain.Song, error) {
	if err := e.checkIndex(index); err != nil {
		return domain.Song{}, err
	}

	h := e.locate(index)
	n := e.nodes[h]

	switch {
	case e.size == 1:
		e.head = nilHandle
		e.tail = nilHandle
	case h == e.head:
		e.head = n.next
		e.nodes[e.head].prev = nilHandle
	case h == e.tail:
		e.tail = n.prev
		e.nodes[e.tail].next = nilHandle
	default:
		e.nodes[n.prev].next = n.next
		e.nodes[n.next].prev = n.prev
	}
	e.size--
	e.release(h)

	return n.song, nil
}

// Move exchanges the songs at two logical indices by swapping their nodes.
// Moving an index onto itself is a no-op.
func (e *Engine) Move(from, to int) error {
	if err := e.checkIndex(from); err != nil {
		return err
	}
	if err := e.checkIndex(to); err != nil {
		return err
	}
	if from == to {
		return nil
	}

	e.swap(e.locate(from), e.locate(to))
	return nil
}

// Reverse toggles the reversal flag in O(1).
func (e *Engine) Reverse() {
	e.reversed = !e.reversed
}

// At returns the song at a logical index.
func (e *Engine) At(index int) (domain.Song, error) {
	if err := e.checkIndex(index); err != nil {
		return domain.Song{}, err
	}
	return e.nodes[e.locate(index)].song, nil
}

// Each visits songs in logical order until fn returns false.
func (e *Engine) Each(fn func(index int, song domain.Song) bool) {
	cur, step := e.head, func(n *node) handle { return n.next }
	if e.reversed {
		cur, step = e.tail, func(n *node) handle { return n.prev }
	}

	for i := 0; cur != nilHandle; i++ {
		n := &e.nodes[cur]
		if !fn(i, n.song) {
			return
		}
		cur = step(n)
	}
}

// Songs returns the songs in logical order.
func (e *Engine) Songs() []domain.Song {
	songs := make([]domain.Song, 0, e.size)
	e.Each(func(_ int, s domain.Song) bool {
		songs = append(songs, s)
		return true
	})
	return songs
}

// IndexOf returns the logical index of the first song with the given title,
// or -1 when no song matches.
func (e *Engine) IndexOf(title string) int {
	found := -1
	e.Each(func(i int, s domain.Song) bool {
		if s.Title == title {
			found = i
			return false
		}
		return true
	})
	return found
}

// Clear drops every node. The reversal flag is kept.
func (e *Engine) Clear() {
	e.nodes = e.nodes[:0]
	e.free = e.free[:0]
	e.head = nilHandle
	e.tail = nilHandle
	e.size = 0
}

// Reset clears the engine and appends songs so that the logical order
// afterwards equals the order of songs, whatever the reversal flag.
func (e *Engine) Reset(songs []domain.Song) {
	e.Clear()
	for _, s := range songs {
		e.Append(s)
	}
}

// CheckIntegrity walks the chain in both directions and reports the first
// broken invariant.
func (e *Engine) CheckIntegrity() error {
	if (e.head == nilHandle) != (e.tail == nilHandle) {
		return fmt.Errorf("head %d and tail %d disagree on emptiness", e.head, e.tail)
	}
	if e.head == nilHandle {
		if e.size != 0 {
			return fmt.Errorf("empty chain with size %d", e.size)
		}
		return nil
	}
	if p := e.nodes[e.head].prev; p != nilHandle {
		return fmt.Errorf("head.prev is %d, want nil", p)
	}
	if n := e.nodes[e.tail].next; n != nilHandle {
		return fmt.Errorf("tail.next is %d, want nil", n)
	}

	forward := make([]handle, 0, e.size)
	for cur, prev := e.head, nilHandle; cur != nilHandle; prev, cur = cur, e.nodes[cur].next {
		if len(forward) > e.size {
			return fmt.Errorf("forward walk exceeds size %d: cycle", e.size)
		}
		if e.nodes[cur].prev != prev {
			return fmt.Errorf("node %d has prev %d, want %d", cur, e.nodes[cur].prev, prev)
		}
		forward = append(forward, cur)
	}
	if len(forward) != e.size {
		return fmt.Errorf("forward walk visited %d nodes, size is %d", len(forward), e.size)
	}
	if last := forward[len(forward)-1]; last != e.tail {
		return fmt.Errorf("forward walk ended at %d, tail is %d", last, e.tail)
	}

	i := len(forward) - 1
	for cur := e.tail; cur != nilHandle; cur = e.nodes[cur].prev {
		if i < 0 {
			return fmt.Errorf("backward walk exceeds size %d: cycle", e.size)
		}
		if forward[i] != cur {
			return fmt.Errorf("backward walk at %d found %d, forward found %d", i, cur, forward[i])
		}
		i--
	}
	if i != -1 {
		return fmt.Errorf("backward walk stopped %d nodes early", i+1)
	}
	return nil
}

// physical converts a logical index into a physical position counted from
// head. Every index-aware operation goes through here.
func (e *Engine) physical(logical int) int {
	if e.reversed {
		return e.size - 1 - logical
	}
	return logical
}

// locate returns the node at a logical index, which must be valid.
// It walks from whichever physical end is closer.
func (e *Engine) locate(logical int) handle {
	pos := e.physical(logical)

	if pos <= e.size/2 {
		cur := e.head
		for range pos {
			cur = e.nodes[cur].next
		}
		return cur
	}

	cur := e.tail
	for range e.size - 1 - pos {
		cur = e.nodes[cur].prev
	}
	return cur
}

func (e *Engine) checkIndex(index int) error {
	if e.size == 0 || index < 0 || index >= e.size {
		return domain.NewIndexError(index, e.size)
	}
	return nil
}

// swap exchanges the chain positions of a and b in constant time.
// Adjacent nodes need their own branch: exchanging next/prev blindly would
// leave a node pointing at itself.
func (e *Engine) swap(a, b handle) {
	if a == b {
		return
	}
	na, nb := &e.nodes[a], &e.nodes[b]

	switch {
	case na.next == b:
		na.next = nb.next
		nb.prev = na.prev
		na.prev = b
		nb.next = a
	case nb.next == a:
		nb.next = na.next
		na.prev = nb.prev
		nb.prev = a
		na.next = b
	default:
		na.next, nb.next = nb.next, na.next
		na.prev, nb.prev = nb.prev, na.prev
	}

	if na.next != nilHandle {
		e.nodes[na.next].prev = a
	}
	if nb.next != nilHandle {
		e.nodes[nb.next].prev = b
	}
	if na.prev != nilHandle {
		e.nodes[na.prev].next = a
	}
	if nb.prev != nilHandle {
		e.nodes[nb.prev].next = b
	}

	switch e.head {
	case a:
		e.head = b
	case b:
		e.head = a
	}
	switch e.tail {
	case a:
		e.tail = b
	case b:
		e.tail = a
	}
}

func (e *Engine) alloc(song domain.Song) handle {
	n := node{song: song, prev: nilHandle, next: nilHandle}
	if k := len(e.free); k > 0 {
		h := e.free[k-1]
		e.free = e.free[:k-1]
		e.nodes[h] = n
		return h
	}
	e.nodes = append(e.nodes, n)
	return handle(len(e.nodes) - 1)
}

func (e *Engine) release(h handle) {
	e.nodes[h] = node{prev: nilHandle, next: nilHandle}
	e.free = append(e.free, h)
}
