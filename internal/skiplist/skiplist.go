// Package skiplist provides an ordered container backed by a probabilistic
// skip list.
//
// The list keeps items sorted by a caller-supplied ordering and supports
// expected O(log n) insertion, removal and bound searches. It is the storage
// layer for the interval containers in the rangemap package, where bound
// queries locate the intervals overlapping a character range.
//
// The list is single-threaded and not reentrant: callbacks passed to the
// iteration methods must not mutate the list.
package skiplist

import "math/rand/v2"

// maxHeight caps tower growth. With p=0.5 this supports ~2^32 items.
const maxHeight = 32

type node[T any] struct {
	item  T
	tower []*node[T]
}

// List is an ordered multiset of items.
//
// Duplicate keys are allowed; Remove and Find operate on the first item that
// compares equal to the probe. The zero value is not usable; construct with
// New.
type List[T any] struct {
	head   *node[T] // sentinel; item is the zero value and never compared
	less   func(a, b T) bool
	rng    *rand.Rand
	length int
}

// New creates an empty list ordered by less.
//
// The random source drives tower heights only; it never affects the ordering
// contract. Passing a seeded source makes the layout reproducible, which the
// compiler uses to keep repeated compilations structurally identical.
func New[T any](less func(a, b T) bool, rng *rand.Rand) *List[T] {
	return &List[T]{
		head: &node[T]{tower: make([]*node[T], maxHeight)},
		less: less,
		rng:  rng,
	}
}

// Len returns the number of items in the list.
func (l *List[T]) Len() int {
	return l.length
}

func (l *List[T]) equal(a, b T) bool {
	return !l.less(a, b) && !l.less(b, a)
}

// randomHeight samples a geometric height with parameter 0.5.
func (l *List[T]) randomHeight() int {
	h := 1
	for h < maxHeight && l.rng.Uint32()&1 == 1 {
		h++
	}
	return h
}

// Insert adds item to the list. Items comparing equal to an existing item are
// inserted after it.
func (l *List[T]) Insert(item T) {
	var update [maxHeight]*node[T]

	cur := l.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.tower[level] != nil && !l.less(item, cur.tower[level].item) {
			cur = cur.tower[level]
		}
		update[level] = cur
	}

	n := &node[T]{item: item, tower: make([]*node[T], l.randomHeight())}
	for level := range n.tower {
		n.tower[level] = update[level].tower[level]
		update[level].tower[level] = n
	}
	l.length++
}

// Remove deletes the first item comparing equal to probe.
// It returns the removed item and whether one was found.
func (l *List[T]) Remove(probe T) (T, bool) {
	var update [maxHeight]*node[T]

	cur := l.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.tower[level] != nil && l.less(cur.tower[level].item, probe) {
			cur = cur.tower[level]
		}
		update[level] = cur
	}

	target := cur.tower[0]
	if target == nil || !l.equal(target.item, probe) {
		var zero T
		return zero, false
	}
	for level := range target.tower {
		if update[level].tower[level] == target {
			update[level].tower[level] = target.tower[level]
		}
	}
	l.length--
	return target.item, true
}

// Find returns the first item comparing equal to probe.
func (l *List[T]) Find(probe T) (T, bool) {
	n := l.ceiling(probe)
	if n == nil || !l.equal(n.item, probe) {
		var zero T
		return zero, false
	}
	return n.item, true
}

// ceiling returns the first node whose item is >= probe, or nil.
func (l *List[T]) ceiling(probe T) *node[T] {
	cur := l.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.tower[level] != nil && l.less(cur.tower[level].item, probe) {
			cur = cur.tower[level]
		}
	}
	return cur.tower[0]
}

// floor returns the last node whose item is <= probe, or nil.
func (l *List[T]) floor(probe T) *node[T] {
	cur := l.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.tower[level] != nil && !l.less(probe, cur.tower[level].item) {
			cur = cur.tower[level]
		}
	}
	if cur == l.head {
		return nil
	}
	return cur
}

// predecessor returns the last node whose item is strictly < probe, or nil.
func (l *List[T]) predecessor(probe T) *node[T] {
	cur := l.head
	for level := maxHeight - 1; level >= 0; level-- {
		for cur.tower[level] != nil && l.less(cur.tower[level].item, probe) {
			cur = cur.tower[level]
		}
	}
	if cur == l.head {
		return nil
	}
	return cur
}

// Ascend calls f for every item in ascending order until f returns false.
func (l *List[T]) Ascend(f func(T) bool) {
	for cur := l.head.tower[0]; cur != nil; cur = cur.tower[0] {
		if !f(cur.item) {
			return
		}
	}
}

// AscendFrom calls f for every item >= probe in ascending order until f
// returns false.
func (l *List[T]) AscendFrom(probe T, f func(T) bool) {
	for cur := l.ceiling(probe); cur != nil; cur = cur.tower[0] {
		if !f(cur.item) {
			return
		}
	}
}

// DescendFrom calls f for every item <= probe in descending order until f
// returns false. Of several items comparing equal, only the last is visited.
//
// Skip list towers only link forward, so each step re-searches from the head.
// The interval containers only ever take the first couple of items.
func (l *List[T]) DescendFrom(probe T, f func(T) bool) {
	for cur := l.floor(probe); cur != nil; cur = l.predecessor(cur.item) {
		if !f(cur.item) {
			return
		}
	}
}
