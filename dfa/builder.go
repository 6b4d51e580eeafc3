package dfa

import (
	"math/rand/v2"

	"github.com/coregx/redfa/nfa"
	"github.com/coregx/redfa/rangemap"
	"github.com/coregx/redfa/syntax"
)

// Config configures subset construction.
type Config struct {
	// MaxStates caps how many DFA states may be materialised before
	// construction aborts with ErrStateLimit. Zero means no limit.
	//
	// Subset construction always terminates, but the subset space is
	// exponential in the NFA size in the worst case; the cap keeps
	// adversarial patterns from exhausting memory.
	MaxStates uint32
}

// DefaultConfig returns a configuration with a generous state budget.
func DefaultConfig() Config {
	return Config{MaxStates: 100000}
}

// Build runs subset construction over the NFA.
//
// The work queue is seeded with the ε-closure of the NFA start state taken
// with ^ acting as ε: the automaton starts at the beginning of the input, so
// begin anchors are crossable exactly once, there. Everywhere else closures
// are taken with no anchor context, which is all the anchor handling the
// construction needs.
//
// The random source seeds the per-state range maps; it influences skip-list
// layout only, never the language accepted.
func Build(n *nfa.NFA, rng *rand.Rand, cfg Config) (*DFA, error) {
	tbl := newTable()
	startSet := n.Closure([]nfa.StateID{n.Start()}, nfa.AnchorBegin)

	queue := []rangemap.StateSet{startSet}
	var start *State
	for len(queue) > 0 {
		set := queue[0]
		queue = queue[1:]
		if tbl.lookup(set) != nil {
			// Enqueued again before it was materialised.
			continue
		}
		if cfg.MaxStates > 0 && tbl.count >= int(cfg.MaxStates) {
			return nil, ErrStateLimit
		}

		st := &State{
			id:      uint32(tbl.count),
			states:  set,
			trans:   rangemap.NewMap(rng),
			table:   tbl,
			isMatch: set.Contains(uint32(n.Accept())),
		}

		// Union every member's labelled edge into the range map. Raw
		// target sets go in first; the freeze below replaces each
		// interval value with its ε-closure.
		var endTargets []nfa.StateID
		for _, id := range set.IDs() {
			ns := n.State(nfa.StateID(id))
			if cs, to := ns.Charset(); cs != nil {
				cs.TrueRanges(func(lo, hi rune) bool {
					st.trans.AddRange(lo, hi, rangemap.NewStateSet(uint32(to)))
					return true
				})
				continue
			}
			ch, to := ns.Rune()
			switch ch {
			case nfa.NoRune:
			case syntax.RuneBegin:
				// Crossable only through the start-state closure.
			case syntax.RuneEnd:
				endTargets = append(endTargets, to)
			default:
				st.trans.AddRange(ch, ch, rangemap.NewStateSet(uint32(to)))
			}
		}

		// Freeze: close every interval value with no anchor context.
		st.trans.Ranges(func(iv *rangemap.Interval) bool {
			if !iv.Value.IsEmpty() {
				iv.Value = n.Closure(toStateIDs(iv.Value), 0)
			}
			return true
		})

		// The end-of-input transition closes with $ acting as ε:
		// past the last character, chained end anchors cost nothing.
		if len(endTargets) > 0 {
			st.endSet = n.Closure(endTargets, nfa.AnchorEnd)
		}

		tbl.insert(st)

		st.trans.Ranges(func(iv *rangemap.Interval) bool {
			if !iv.Value.IsEmpty() && tbl.lookup(iv.Value) == nil {
				queue = append(queue, iv.Value)
			}
			return true
		})
		if !st.endSet.IsEmpty() && tbl.lookup(st.endSet) == nil {
			queue = append(queue, st.endSet)
		}

		if start == nil {
			start = st
			// The empty input sits at both the beginning and the
			// end, so it matches iff the accept state is reachable
			// with both anchors acting as ε.
			both := n.Closure(toStateIDs(set), nfa.AnchorBegin|nfa.AnchorEnd)
			start.matchEmpty = both.Contains(uint32(n.Accept()))
		}
	}

	return &DFA{start: start, table: tbl}, nil
}

func toStateIDs(set rangemap.StateSet) []nfa.StateID {
	ids := make([]nfa.StateID, set.Len())
	for i, id := range set.IDs() {
		ids[i] = nfa.StateID(id)
	}
	return ids
}
