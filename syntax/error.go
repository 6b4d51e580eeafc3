package syntax

import "fmt"

// ErrorKind classifies parse errors.
type ErrorKind uint8

const (
	// BadRange marks a bracket range whose side is not a single character,
	// or whose end sorts before its start.
	BadRange ErrorKind = iota

	// IllegalEscape marks a hex escape with the wrong digit count or a
	// non-hex digit, or an escape cut short by the end of the pattern.
	IllegalEscape

	// UnexpectedToken marks a token the grammar cannot accept at the
	// current position, such as a repetition with nothing to repeat.
	UnexpectedToken

	// UnexpectedEOF is an UnexpectedToken whose offending token is EOF.
	UnexpectedEOF

	// Unsupported marks syntax the flavour recognises but does not
	// implement: backreferences and the word boundaries \b \B.
	Unsupported
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case BadRange:
		return "BadRange"
	case IllegalEscape:
		return "IllegalEscape"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case Unsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", uint8(k))
	}
}

// ParseError is the error type surfaced by compilation. Compilation aborts at
// the first problem; nothing is recovered.
type ParseError struct {
	Kind ErrorKind

	// Msg describes the problem, e.g. "reversed range".
	Msg string

	// Got is the offending token for UnexpectedToken and UnexpectedEOF;
	// Expect is the token the grammar wanted, when there is a single one.
	Got    Token
	Expect Token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case UnexpectedToken, UnexpectedEOF:
		if e.Expect.Kind != KindEOF || e.Got.Kind == KindEOF {
			return fmt.Sprintf("regex: %s: got %v, expected %v", e.Msg, e.Got, e.Expect)
		}
		return fmt.Sprintf("regex: %s: got %v", e.Msg, e.Got)
	default:
		return fmt.Sprintf("regex: %s", e.Msg)
	}
}

// Is reports whether target matches this error. A *ParseError with no Msg
// acts as a kind probe, so errors.Is(err, &ParseError{Kind: BadRange}) tests
// the class. UnexpectedEOF additionally matches an UnexpectedToken probe,
// being a specialisation of it.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	if t.Msg != "" && t.Msg != e.Msg {
		return false
	}
	if e.Kind == UnexpectedEOF && t.Kind == UnexpectedToken {
		return true
	}
	return e.Kind == t.Kind
}

// errUnexpected builds an UnexpectedToken or, when got is EOF, an
// UnexpectedEOF.
func errUnexpected(msg string, got, expect Token) *ParseError {
	kind := UnexpectedToken
	if got.Kind == KindEOF {
		kind = UnexpectedEOF
	}
	if msg == "" {
		msg = "unexpected token"
		if kind == UnexpectedEOF {
			msg = "unexpected end of pattern"
		}
	}
	return &ParseError{Kind: kind, Msg: msg, Got: got, Expect: expect}
}
