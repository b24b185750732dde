// Package parser is a small parser-combinator engine.
//
// A Parser consumes a prefix of its input and returns the remaining input together
// with a value, or fails with an *Error whose Kind tells combinators whether another
// alternative may be tried (Recoverable) or parsing must stop (Fatal).
//
// Parsers hold no state between calls. The same parser value may be used for any
// number of Parse calls, including concurrent calls on different inputs, as long as
// the functions it was built from are themselves free of shared state.
package parser

// Parser consumes a prefix of input and produces a value of type O.
// On success it returns the input that remains after the match.
type Parser[I, O any] interface {
	Parse(input I) (I, O, error)
}

// Func adapts a function to the Parser interface.
type Func[I, O any] func(input I) (I, O, error)

func (f Func[I, O]) Parse(input I) (I, O, error) {
	return f(input)
}

// Map applies fn to the output of p.
func Map[I, A, B any](p Parser[I, A], fn func(A) B) Parser[I, B] {
	return Func[I, B](func(input I) (I, B, error) {
		rest, a, err := p.Parse(input)
		if err != nil {
			var zero B
			return input, zero, err
		}
		return rest, fn(a), nil
	})
}

// Value replaces the output of p with v. The same v is returned on every
// success, so v must not own storage that a later step may write into: a
// non-empty map or slice folded by a monoid Combine would be modified in
// place and the change would show up in every following parse. Use ValueFunc
// for such outputs.
func Value[I, A, B any](p Parser[I, A], v B) Parser[I, B] {
	return Map(p, func(A) B { return v })
}

// ValueFunc replaces the output of p with a fresh value from fn on every
// success.
func ValueFunc[I, A, B any](p Parser[I, A], fn func() B) Parser[I, B] {
	return Map(p, func(A) B { return fn() })
}

// Alt tries each parser in order on the same input and returns the first success.
// A fatal failure stops the search. When every alternative fails recoverably, the
// failure that got furthest into the input is returned.
func Alt[I, O any](ps ...Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(input I) (I, O, error) {
		var best error
		for _, p := range ps {
			rest, out, err := p.Parse(input)
			if err == nil {
				return rest, out, nil
			}
			if !IsRecoverable(err) {
				var zero O
				return input, zero, err
			}
			best = furthest(best, err)
		}
		var zero O
		if best == nil {
			best = &Error{Kind: Recoverable, Expected: "one of zero alternatives"}
		}
		return input, zero, best
	})
}

// Lazy defers building the parser until it is needed, which lets recursive grammars
// refer to rules that are defined later. build is called on every Parse.
func Lazy[I, O any](build func() Parser[I, O]) Parser[I, O] {
	return Func[I, O](func(input I) (I, O, error) {
		return build().Parse(input)
	})
}
