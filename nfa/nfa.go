// Package nfa builds a Thompson NFA with ε-transitions from a regex AST.
//
// States live in an arena and are referenced by stable StateID indices. A
// state carries at most one labelled edge: either a single scalar (possibly
// an anchor sentinel) or a charset of scalar ranges, plus any number of
// ε-successors. Anchors stay in the same position as characters; the
// ε-closure decides from context whether an anchor edge may be crossed, which
// is how ^ and $ are woven into determinization instead of needing a
// dedicated conditional-edge mechanism.
package nfa

import (
	"fmt"

	"github.com/coregx/redfa/internal/sparse"
	"github.com/coregx/redfa/rangemap"
	"github.com/coregx/redfa/syntax"
)

// StateID uniquely identifies an NFA state within its arena.
type StateID uint32

// NoRune marks a state without a single-scalar edge.
const NoRune rune = -1

// Anchors is a set of anchor symbols treated as ε during a closure.
type Anchors uint8

const (
	// AnchorBegin lets ^ edges be crossed: the closure is taken at the
	// start of the input.
	AnchorBegin Anchors = 1 << iota

	// AnchorEnd lets $ edges be crossed: the closure is taken past the
	// last character of the input.
	AnchorEnd
)

// State is one NFA state. The zero value has no edges.
type State struct {
	// ch is the label of the single-scalar edge to, or NoRune. The label
	// may be an anchor sentinel, which consumes a position instead of a
	// character.
	ch rune

	// charset is the label of the range edge to, for class and dot edges.
	// A state never carries both a scalar and a charset edge.
	charset *rangemap.Set

	// to is the destination of the labelled edge.
	to StateID

	// epsilon lists the ε-successors.
	epsilon []StateID
}

// Rune returns the scalar edge label and destination.
// The label is NoRune when the state has no scalar edge.
func (s *State) Rune() (rune, StateID) {
	return s.ch, s.to
}

// Charset returns the range-set edge label and destination.
// The set is nil when the state has no charset edge.
func (s *State) Charset() (*rangemap.Set, StateID) {
	return s.charset, s.to
}

// Epsilons returns the ε-successors.
// The returned slice must not be modified.
func (s *State) Epsilons() []StateID {
	return s.epsilon
}

// IsAnchor reports whether the scalar edge label is an anchor sentinel.
func (s *State) IsAnchor() bool {
	return s.ch == syntax.RuneBegin || s.ch == syntax.RuneEnd
}

// NFA is a compiled automaton: an arena of states, reachable from Start, with
// a single accepting state.
type NFA struct {
	states []State
	start  StateID
	accept StateID
}

// Start returns the start state ID.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the accepting state ID.
func (n *NFA) Accept() StateID {
	return n.accept
}

// Len returns the number of states in the arena.
func (n *NFA) Len() int {
	return len(n.states)
}

// State returns the state with the given ID, or nil for an ID outside the
// arena.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// String returns a human-readable summary of the automaton.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, accept: %d}", len(n.states), n.start, n.accept)
}

// Closure computes the ε-closure of seed: every state reachable through
// ε-edges, plus through anchor edges whose symbol is in extra. The result is
// in ascending StateID order, canonical for interning.
func (n *NFA) Closure(seed []StateID, extra Anchors) rangemap.StateSet {
	visited := sparse.NewSet(uint32(len(n.states)))
	for _, id := range seed {
		visited.Insert(uint32(id))
	}

	// visited.Values grows in insertion order, so indexing through it is
	// the worklist.
	for i := 0; i < visited.Len(); i++ {
		st := &n.states[visited.Values()[i]]
		for _, e := range st.epsilon {
			visited.Insert(uint32(e))
		}
		switch st.ch {
		case syntax.RuneBegin:
			if extra&AnchorBegin != 0 {
				visited.Insert(uint32(st.to))
			}
		case syntax.RuneEnd:
			if extra&AnchorEnd != 0 {
				visited.Insert(uint32(st.to))
			}
		}
	}

	return rangemap.NewStateSet(visited.Values()...)
}
