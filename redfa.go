// Package redfa compiles regular expressions into deterministic finite
// automata over the full Unicode scalar alphabet and matches input prefixes
// against them.
//
// The pipeline is classic, built leaves first: a hand-written tokeniser and
// recursive-descent parser produce a small AST, a Thompson construction turns
// it into an NFA with ε-transitions, and subset construction determinizes it
// using interval maps over [U+0000, U+10FFFF] so the 17-bit alphabet never
// has to be enumerated. Anchors (^ $ \A \Z) ride along as pseudo-character
// edges interpreted by the ε-closure, not as a separate matcher mode.
//
// Matching answers one question, longest accepted prefix:
//
//	re, err := redfa.Compile(`a*b`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchBegin("aaabb") // 4: "aaab" is the longest accepted prefix
//	re.MatchFull("aaab")   // true
//
// The flavour has alternation, grouping, * + ?, the dot, bracket classes
// with ranges and complement, the predefined classes \w \W \s \S \d \D, and
// anchors. There are no capture groups, no backreferences, no counted
// repetitions and no flags.
//
// A compiled Regex is immutable and safe for concurrent use.
package redfa

import (
	"math/rand/v2"
	"unicode/utf8"

	"github.com/coregx/redfa/dfa"
	"github.com/coregx/redfa/nfa"
	"github.com/coregx/redfa/syntax"
)

// NoMatch is returned by MatchBegin when no prefix of the input matches, not
// even the empty one.
const NoMatch = -1

// Config configures compilation.
type Config struct {
	// Seed drives the skip lists backing the interval maps. It only
	// shuffles internal layout: any seed yields an automaton accepting
	// the same language, and the default makes repeated compilations of
	// one pattern structurally identical.
	Seed uint64

	// MaxStates caps the number of DFA states materialised during subset
	// construction. Zero means no limit.
	MaxStates uint32
}

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return Config{
		Seed:      1,
		MaxStates: dfa.DefaultConfig().MaxStates,
	}
}

// Regex is a compiled regular expression.
type Regex struct {
	pattern string
	dfa     *dfa.DFA
}

// Compile compiles a pattern with the default configuration.
//
// Errors are *syntax.ParseError values classified by kind (bad bracket
// range, illegal escape, unexpected token or end of pattern, unsupported
// construct), or *dfa.Error when the state budget is exceeded.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom configuration.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	root, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(config.Seed, config.Seed^0x9E3779B97F4A7C15))
	n, err := nfa.Compile(root, rng)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Build(n, rng, dfa.Config{MaxStates: config.MaxStates})
	if err != nil {
		return nil, err
	}
	return &Regex{pattern: pattern, dfa: d}, nil
}

// MustCompile compiles a pattern and panics if it fails.
// Useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("redfa: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.pattern
}

// MatchBegin returns the length in bytes of the longest prefix of s accepted
// by the pattern, or NoMatch when no prefix matches at all. A return of 0
// means the empty prefix matches and nothing longer does.
//
// Input is decoded as UTF-8; invalid bytes match whatever the pattern says
// about U+FFFD.
func (re *Regex) MatchBegin(s string) int {
	state := re.dfa.Start()
	if s == "" {
		if state.MatchesEmpty() {
			return 0
		}
		return NoMatch
	}

	last := NoMatch
	if state.IsMatch() {
		last = 0
	}
	for i := 0; i < len(s); {
		c, width := utf8.DecodeRuneInString(s[i:])
		state = state.Follow(c)
		if state == nil {
			return last
		}
		i += width
		if state.IsMatch() {
			last = i
		}
	}

	// One final step across the end-of-input anchor, where $ holds.
	if end := state.FollowEnd(); end != nil && end.IsMatch() {
		last = len(s)
	}
	return last
}

// MatchFull reports whether the pattern accepts all of s, i.e. whether the
// longest matching prefix is the whole input.
func (re *Regex) MatchFull(s string) bool {
	return re.MatchBegin(s) == len(s)
}

// MatchBegin compiles pattern and returns the longest accepted prefix length
// of s, as Regex.MatchBegin.
func MatchBegin(pattern, s string) (int, error) {
	re, err := Compile(pattern)
	if err != nil {
		return NoMatch, err
	}
	return re.MatchBegin(s), nil
}

// MatchFull compiles pattern and reports whether it accepts all of s.
func MatchFull(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchFull(s), nil
}
