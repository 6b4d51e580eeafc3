package dfa

import "fmt"

// ErrStateLimit indicates that subset construction materialised more states
// than the configured budget allows. This guards against pathological
// patterns whose subset space blows up.
var ErrStateLimit = &Error{Kind: StateLimit, Message: "DFA state limit exceeded"}

// ErrorKind classifies DFA construction errors.
type ErrorKind uint8

const (
	// StateLimit indicates too many states were created.
	StateLimit ErrorKind = iota
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case StateLimit:
		return "StateLimit"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", uint8(k))
	}
}

// Error represents a DFA construction failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is implements error comparison for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
