// Package rangemap provides interval containers over the Unicode scalar
// alphabet.
//
// A Map partitions the full range [0, 0x10FFFF] into contiguous intervals,
// each carrying a StateSet value. Every scalar belongs to exactly one
// interval, so point lookups, additive range updates and overlap queries stay
// cheap even though the alphabet is 17 bits wide. Set specialises Map to a
// boolean membership marker and is the representation of character classes.
//
// Containers are built during compilation on a single goroutine; once the
// owning automaton is frozen they are only read.
package rangemap

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/coregx/redfa/internal/skiplist"
)

// Bounds of the Unicode scalar alphabet.
const (
	MinRune rune = 0
	MaxRune rune = 0x10FFFF
)

// Interval is a run [Start, End] of scalars sharing one value.
// Intervals are owned by their Map; callers outside the package must treat
// them as read-only.
type Interval struct {
	Start, End rune
	Value      StateSet
}

func (iv *Interval) String() string {
	return fmt.Sprintf("[%q-%q]=%v", iv.Start, iv.End, iv.Value)
}

// Map is an ordered interval map covering the whole scalar alphabet.
//
// Invariants, restored after every mutation:
//   - the intervals cover [MinRune, MaxRune] exactly, without overlap;
//   - intervals are contiguous: each starts right after its predecessor ends;
//   - no two neighbouring intervals carry equal values.
type Map struct {
	list *skiplist.List[*Interval]
}

// byEnd orders intervals by their upper bound. Since intervals never overlap,
// this is a total order, and the first interval with End >= c contains c.
func byEnd(a, b *Interval) bool {
	return a.End < b.End
}

// NewMap creates a map with a single interval spanning the whole alphabet and
// carrying the empty set. The random source seeds the backing skip list.
func NewMap(rng *rand.Rand) *Map {
	m := &Map{list: skiplist.New(byEnd, rng)}
	m.list.Insert(&Interval{Start: MinRune, End: MaxRune})
	return m
}

// Get returns the value of the unique interval containing c.
func (m *Map) Get(c rune) StateSet {
	return m.interval(c).Value
}

// interval returns the interval containing c.
func (m *Map) interval(c rune) *Interval {
	var found *Interval
	m.list.AscendFrom(&Interval{End: c}, func(iv *Interval) bool {
		found = iv
		return false
	})
	if found == nil || found.Start > c {
		panic(fmt.Sprintf("rangemap: no interval contains %q", c))
	}
	return found
}

// Ranges calls f for every interval in ascending order until f returns false.
func (m *Map) Ranges(f func(*Interval) bool) {
	m.list.Ascend(f)
}

// Len returns the number of intervals.
func (m *Map) Len() int {
	return m.list.Len()
}

// QueryOverlap decomposes the intervals intersecting [start, end] into three
// groups: left straddles start, every middle interval is fully contained, and
// right straddles end. When a single interval strictly encloses the queried
// range, it is returned as both left and right, and middle is empty.
func (m *Map) QueryOverlap(start, end rune) (left *Interval, middle []*Interval, right *Interval) {
	m.list.AscendFrom(&Interval{End: start}, func(iv *Interval) bool {
		switch {
		case iv.Start < start && iv.End <= end:
			left = iv
		case iv.Start >= start && iv.End > end:
			if iv.Start <= end {
				right = iv
			}
			return false
		case iv.Start >= start && iv.End <= end:
			middle = append(middle, iv)
		default: // iv.Start < start && iv.End > end
			left, right = iv, iv
			return false
		}
		return true
	})
	return left, middle, right
}

// AddRange unions value into the value of every scalar in [start, end],
// splitting straddling intervals as needed and coalescing equal-valued
// neighbours afterwards.
func (m *Map) AddRange(start, end rune, value StateSet) {
	if start > end {
		panic(fmt.Sprintf("rangemap: reversed range %q-%q", start, end))
	}

	left, middle, right := m.QueryOverlap(start, end)
	if left != nil && left == right {
		// One interval strictly encloses [start, end]: split in three.
		// left.Start < start and right.End > end here, so neither
		// start-1 nor end+1 can leave the alphabet.
		mid := &Interval{Start: start, End: end, Value: left.Value.Union(value)}
		tail := &Interval{Start: end + 1, End: right.End, Value: right.Value.Clone()}
		// Shrinking End in place keeps the skip list ordered: the new
		// key still sits strictly between both neighbours.
		left.End = start - 1
		m.list.Insert(mid)
		m.list.Insert(tail)
	} else {
		if left != nil {
			head := &Interval{Start: start, End: left.End, Value: left.Value.Union(value)}
			left.End = start - 1
			m.list.Insert(head)
		}
		if right != nil {
			head := &Interval{Start: right.Start, End: end, Value: right.Value.Union(value)}
			right.Start = end + 1
			m.list.Insert(head)
		}
		for _, iv := range middle {
			iv.Value.Update(value)
		}
	}

	m.mergeEquals(start, end)
}

// prev returns the interval immediately before iv, or nil.
func (m *Map) prev(iv *Interval) *Interval {
	var out *Interval
	skip := true
	m.list.DescendFrom(iv, func(cur *Interval) bool {
		if skip {
			skip = false
			return true
		}
		out = cur
		return false
	})
	return out
}

// next returns the interval immediately after iv, or nil.
func (m *Map) next(iv *Interval) *Interval {
	var out *Interval
	skip := true
	m.list.AscendFrom(iv, func(cur *Interval) bool {
		if skip {
			skip = false
			return true
		}
		out = cur
		return false
	})
	return out
}

// mergeEquals coalesces equal-valued neighbours across the just-mutated
// region [start, end], including the intervals immediately bordering it.
func (m *Map) mergeEquals(start, end rune) {
	left, middle, right := m.QueryOverlap(start, end)
	if left != nil || right != nil || len(middle) == 0 {
		panic("rangemap: mutated region not split on range boundaries")
	}

	if p := m.prev(middle[0]); p != nil {
		middle = append([]*Interval{p}, middle...)
	}
	if n := m.next(middle[len(middle)-1]); n != nil {
		middle = append(middle, n)
	}

	var prev *Interval
	for _, iv := range middle {
		if prev != nil && prev.Value.Equal(iv.Value) {
			m.list.Remove(iv)
			// Growing prev.End to the removed neighbour's bound
			// cannot overtake the next key.
			prev.End = iv.End
		} else {
			prev = iv
		}
	}
}

// String returns the interval list, mainly for debugging and tests.
func (m *Map) String() string {
	var b strings.Builder
	m.Ranges(func(iv *Interval) bool {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(iv.String())
		return true
	})
	return b.String()
}
