package parser

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

const (
	// Recoverable means the parser did not match and nothing was committed;
	// a combinator may try another alternative.
	Recoverable Kind = iota
	// Fatal means parsing must stop. Combinators never retry or swallow it.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Recoverable:
		return "recoverable"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a parse failure.
type Error struct {
	Kind     Kind
	Offset   int    // byte offset into the input, when the input has one
	Expected string // what the failing parser was looking for
	Err      error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("offset %d: expected %s", e.Offset, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fail returns a recoverable failure at offset.
func Fail(offset int, expected string) *Error {
	return &Error{Kind: Recoverable, Offset: offset, Expected: expected}
}

// Failf is Fail with a formatted expectation.
func Failf(offset int, format string, args ...any) *Error {
	return Fail(offset, fmt.Sprintf(format, args...))
}

// IsRecoverable reports whether err is a recoverable parse failure.
func IsRecoverable(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == Recoverable
}

// IsFatal reports whether err must stop parsing. Errors that are not parse
// failures are fatal.
func IsFatal(err error) bool {
	return err != nil && !IsRecoverable(err)
}

// Cut turns recoverable failures of p into fatal ones. Use it once a construct has
// been recognised far enough that trying an alternative would hide a real error.
func Cut[I, O any](p Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(input I) (I, O, error) {
		rest, out, err := p.Parse(input)
		if err == nil {
			return rest, out, nil
		}
		var perr *Error
		if errors.As(err, &perr) && perr.Kind == Recoverable {
			cut := *perr
			cut.Kind = Fatal
			return rest, out, &cut
		}
		return rest, out, err
	})
}

func furthest(a, b error) error {
	var ea, eb *Error
	if a == nil || !errors.As(a, &ea) {
		return b
	}
	if !errors.As(b, &eb) {
		return a
	}
	if eb.Offset > ea.Offset {
		return b
	}
	return a
}
