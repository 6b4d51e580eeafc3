package rangemap

import (
	"math/rand/v2"
	"strings"
)

// Boolean markers carried by Set intervals. Membership is encoded exactly as
// a one-element value set, so Set inherits all Map invariants unchanged.
var (
	setTrue  = NewStateSet(1)
	setFalse = StateSet{}
)

// Set is a set of Unicode scalars stored as ranges: a Map whose interval
// values are restricted to the two boolean markers. It is the representation
// of character classes, from a single literal up to a complemented bracket
// spanning the whole alphabet.
type Set struct {
	m *Map
}

// NewSet creates an empty scalar set.
func NewSet(rng *rand.Rand) *Set {
	return &Set{m: NewMap(rng)}
}

// All returns a set containing every scalar. It is the charset of the dot
// operator.
func All(rng *rand.Rand) *Set {
	s := NewSet(rng)
	s.AddRange(MinRune, MaxRune)
	return s
}

// AddRange marks every scalar in [start, end] as a member.
func (s *Set) AddRange(start, end rune) {
	s.m.AddRange(start, end, setTrue)
}

// AddChar marks a single scalar as a member.
func (s *Set) AddChar(c rune) {
	s.AddRange(c, c)
}

// Contains reports whether c is a member.
func (s *Set) Contains(c rune) bool {
	return !s.m.Get(c).IsEmpty()
}

// Complement inverts the set in place. Flipping every interval marker keeps
// neighbouring values distinct, so no re-coalescing is needed.
func (s *Set) Complement() {
	s.m.Ranges(func(iv *Interval) bool {
		if iv.Value.IsEmpty() {
			iv.Value = setTrue.Clone()
		} else {
			iv.Value = setFalse.Clone()
		}
		return true
	})
}

// TrueRanges calls f for every member interval in ascending order until f
// returns false.
func (s *Set) TrueRanges(f func(start, end rune) bool) {
	s.m.Ranges(func(iv *Interval) bool {
		if iv.Value.IsEmpty() {
			return true
		}
		return f(iv.Start, iv.End)
	})
}

// String renders the member ranges, mainly for debugging and tests.
func (s *Set) String() string {
	var b strings.Builder
	s.TrueRanges(func(start, end rune) bool {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		if start == end {
			b.WriteString(strings.ToValidUTF8(string(start), "?"))
		} else {
			b.WriteString(strings.ToValidUTF8(string(start)+"-"+string(end), "?"))
		}
		return true
	})
	return b.String()
}
