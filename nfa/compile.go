package nfa

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/coregx/redfa/rangemap"
	"github.com/coregx/redfa/syntax"
)

// ErrInvalidAST indicates an AST node the Thompson construction cannot
// translate. The parser never produces one; this guards collaborators that
// build ASTs by hand.
var ErrInvalidAST = errors.New("invalid AST node")

// frag is an NFA fragment under construction, a start/end state pair.
type frag struct {
	start, end StateID
}

// compiler owns the arena being built.
type compiler struct {
	states []State
	rng    *rand.Rand
}

// Compile translates an AST into an NFA using the Thompson construction:
// leaves and alternations get fresh states, repetitions and concatenations
// rewire their children's fragments, and fragments compose through ε-edges
// only.
//
// The random source seeds the skip lists backing charset edges; it never
// affects which strings the automaton accepts.
func Compile(root *syntax.Node, rng *rand.Rand) (*NFA, error) {
	c := &compiler{rng: rng}
	f, err := c.compile(root)
	if err != nil {
		return nil, err
	}
	return &NFA{states: c.states, start: f.start, accept: f.end}, nil
}

// newState appends a fresh edgeless state to the arena.
func (c *compiler) newState() StateID {
	c.states = append(c.states, State{ch: NoRune})
	return StateID(len(c.states) - 1)
}

func (c *compiler) addEpsilon(from, to StateID) {
	c.states[from].epsilon = append(c.states[from].epsilon, to)
}

func (c *compiler) compile(node *syntax.Node) (frag, error) {
	switch node.Op() {
	case syntax.OpEmpty:
		// One state doubling as start and end.
		s := c.newState()
		return frag{s, s}, nil

	case syntax.OpChar:
		end := c.newState()
		start := c.newState()
		c.states[start].ch = node.Rune()
		c.states[start].to = end
		return frag{start, end}, nil

	case syntax.OpCharRange:
		set := rangemap.NewSet(c.rng)
		lo, hi := node.Range()
		set.AddRange(lo, hi)
		return c.charsetFrag(set), nil

	case syntax.OpBracket:
		set, err := c.bracketSet(node)
		if err != nil {
			return frag{}, err
		}
		return c.charsetFrag(set), nil

	case syntax.OpDot:
		return c.charsetFrag(rangemap.All(c.rng)), nil

	case syntax.OpStar:
		sub, err := c.compile(node.Children()[0])
		if err != nil {
			return frag{}, err
		}
		c.addEpsilon(sub.start, sub.end)
		c.addEpsilon(sub.end, sub.start)
		return sub, nil

	case syntax.OpPlus:
		sub, err := c.compile(node.Children()[0])
		if err != nil {
			return frag{}, err
		}
		c.addEpsilon(sub.end, sub.start)
		return sub, nil

	case syntax.OpQuestion:
		sub, err := c.compile(node.Children()[0])
		if err != nil {
			return frag{}, err
		}
		c.addEpsilon(sub.start, sub.end)
		return sub, nil

	case syntax.OpCat:
		var out frag
		prevEnd := StateID(0)
		for i, child := range node.Children() {
			sub, err := c.compile(child)
			if err != nil {
				return frag{}, err
			}
			if i == 0 {
				out.start = sub.start
			} else {
				c.addEpsilon(prevEnd, sub.start)
			}
			prevEnd = sub.end
		}
		out.end = prevEnd
		return out, nil

	case syntax.OpOr:
		start := c.newState()
		end := c.newState()
		for _, child := range node.Children() {
			sub, err := c.compile(child)
			if err != nil {
				return frag{}, err
			}
			c.addEpsilon(start, sub.start)
			c.addEpsilon(sub.end, end)
		}
		return frag{start, end}, nil

	default:
		return frag{}, fmt.Errorf("%w: %v", ErrInvalidAST, node.Op())
	}
}

// charsetFrag builds the two-state fragment of a range edge.
func (c *compiler) charsetFrag(set *rangemap.Set) frag {
	end := c.newState()
	start := c.newState()
	c.states[start].charset = set
	c.states[start].to = end
	return frag{start, end}
}

// bracketSet merges every bracket child into one range set, flattening nested
// brackets spliced in from predefined classes, then applies the complement.
func (c *compiler) bracketSet(node *syntax.Node) (*rangemap.Set, error) {
	set := rangemap.NewSet(c.rng)
	for _, child := range node.Children() {
		switch child.Op() {
		case syntax.OpChar:
			set.AddChar(child.Rune())
		case syntax.OpCharRange:
			lo, hi := child.Range()
			set.AddRange(lo, hi)
		case syntax.OpBracket:
			sub, err := c.bracketSet(child)
			if err != nil {
				return nil, err
			}
			sub.TrueRanges(func(start, end rune) bool {
				set.AddRange(start, end)
				return true
			})
		default:
			return nil, fmt.Errorf("%w: %v inside bracket", ErrInvalidAST, child.Op())
		}
	}
	if node.Negated() {
		set.Complement()
	}
	return set, nil
}
