package rangemap

import (
	"fmt"
	"hash/fnv"
	"slices"
	"strings"
)

// StateSet is a set of uint32 identities, kept sorted for cheap structural
// comparison. It is the value type carried by Map intervals: during subset
// construction the elements are NFA state IDs, and the boolean Set type uses
// the empty set and {1} as its two markers.
type StateSet struct {
	ids []uint32
}

// NewStateSet creates a set holding the given identities.
func NewStateSet(ids ...uint32) StateSet {
	s := StateSet{}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id, keeping the backing slice sorted.
func (s *StateSet) Add(id uint32) {
	i, ok := slices.BinarySearch(s.ids, id)
	if ok {
		return
	}
	s.ids = slices.Insert(s.ids, i, id)
}

// Update inserts every element of other.
func (s *StateSet) Update(other StateSet) {
	for _, id := range other.ids {
		s.Add(id)
	}
}

// Union returns a new set holding the elements of both s and other.
func (s StateSet) Union(other StateSet) StateSet {
	out := s.Clone()
	out.Update(other)
	return out
}

// Clone returns an independent copy of s.
func (s StateSet) Clone() StateSet {
	return StateSet{ids: slices.Clone(s.ids)}
}

// Contains reports whether id is in the set.
func (s StateSet) Contains(id uint32) bool {
	_, ok := slices.BinarySearch(s.ids, id)
	return ok
}

// Equal reports whether s and other hold the same elements.
func (s StateSet) Equal(other StateSet) bool {
	return slices.Equal(s.ids, other.ids)
}

// IsEmpty reports whether the set has no elements.
func (s StateSet) IsEmpty() bool {
	return len(s.ids) == 0
}

// Len returns the number of elements.
func (s StateSet) Len() int {
	return len(s.ids)
}

// IDs returns the elements in ascending order.
// The returned slice is valid until the next mutation.
func (s StateSet) IDs() []uint32 {
	return s.ids
}

// Key returns an FNV-1a digest of the elements. Two equal sets always produce
// the same key; callers interning by key must still verify with Equal.
func (s StateSet) Key() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, id := range s.ids {
		buf[0] = byte(id)
		buf[1] = byte(id >> 8)
		buf[2] = byte(id >> 16)
		buf[3] = byte(id >> 24)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// String returns a human-readable representation of the set.
func (s StateSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range s.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	b.WriteByte('}')
	return b.String()
}
