// Package dfa turns an NFA into a deterministic automaton by subset
// construction.
//
// Every DFA state is identified by the frozen set of NFA states it stands
// for and owns a range map partitioning the scalar alphabet into intervals
// that share a successor set. States are interned in a table keyed on the
// identity set, so each reachable subset is materialised exactly once; the
// interval de-duplication is what keeps the automaton small over a 17-bit
// alphabet. Once built, a DFA is immutable and safe for concurrent matching.
package dfa

import (
	"fmt"

	"github.com/coregx/redfa/rangemap"
)

// State is one deterministic state, frozen after construction.
type State struct {
	id uint32

	// states is the frozen NFA-state set that is this state's identity.
	states rangemap.StateSet

	// trans maps scalar intervals to the ε-closed successor set; an empty
	// set means no transition.
	trans *rangemap.Map

	// endSet is the ε-closed successor set of the end-of-input anchor
	// transition, taken by the matcher once the input is exhausted.
	endSet rangemap.StateSet

	// table interns every state of the automaton by its identity set.
	table *table

	// isMatch records whether the NFA accept state is in states.
	isMatch bool

	// matchEmpty is set on the start state only: whether the empty input
	// is accepted, with both anchors acting as ε.
	matchEmpty bool
}

// ID returns the state's index in construction order. The start state is 0.
func (s *State) ID() uint32 {
	return s.id
}

// IsMatch reports whether this state accepts.
func (s *State) IsMatch() bool {
	return s.isMatch
}

// MatchesEmpty reports whether the empty input matches. Only the start state
// carries this flag.
func (s *State) MatchesEmpty() bool {
	return s.matchEmpty
}

// States returns the NFA-state identities of this state in ascending order.
func (s *State) States() []uint32 {
	return s.states.IDs()
}

// Follow returns the successor on scalar c, or nil when the automaton
// rejects. Anything outside the scalar alphabet (in particular the anchor
// sentinels) has no transition.
func (s *State) Follow(c rune) *State {
	if c < rangemap.MinRune || c > rangemap.MaxRune {
		return nil
	}
	next := s.trans.Get(c)
	if next.IsEmpty() {
		return nil
	}
	return s.table.lookup(next)
}

// FollowEnd returns the successor of the end-of-input anchor transition, or
// nil. The matcher takes this step once, after the last character.
func (s *State) FollowEnd() *State {
	if s.endSet.IsEmpty() {
		return nil
	}
	return s.table.lookup(s.endSet)
}

// Ranges calls f for every transition interval in ascending scalar order
// until f returns false. Intervals with a nil successor reject. This is the
// read-only traversal surface for rendering collaborators.
func (s *State) Ranges(f func(start, end rune, to *State) bool) {
	s.trans.Ranges(func(iv *rangemap.Interval) bool {
		var to *State
		if !iv.Value.IsEmpty() {
			to = s.table.lookup(iv.Value)
		}
		return f(iv.Start, iv.End, to)
	})
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, states=%v)", s.id, s.isMatch, s.states)
}

// table interns DFA states by identity set. Keys are content digests of the
// sorted sets; every bucket verifies with exact set equality, so a digest
// collision cannot alias two states.
type table struct {
	buckets map[uint64][]*State
	count   int
}

func newTable() *table {
	return &table{buckets: make(map[uint64][]*State)}
}

// lookup returns the interned state for set, or nil.
func (t *table) lookup(set rangemap.StateSet) *State {
	for _, s := range t.buckets[set.Key()] {
		if s.states.Equal(set) {
			return s
		}
	}
	return nil
}

// insert interns a state under its identity set.
func (t *table) insert(s *State) {
	key := s.states.Key()
	t.buckets[key] = append(t.buckets[key], s)
	t.count++
}

// DFA is a compiled deterministic automaton.
type DFA struct {
	start *State
	table *table
}

// Start returns the start state.
func (d *DFA) Start() *State {
	return d.start
}

// Len returns the number of materialised states.
func (d *DFA) Len() int {
	return d.table.count
}

// States calls f for every materialised state until f returns false, in no
// particular order.
func (d *DFA) States(f func(*State) bool) {
	for _, bucket := range d.table.buckets {
		for _, s := range bucket {
			if !f(s) {
				return
			}
		}
	}
}

// String returns a human-readable summary of the automaton.
func (d *DFA) String() string {
	return fmt.Sprintf("DFA{states: %d}", d.table.count)
}
