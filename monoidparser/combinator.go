package monoidparser

import (
	"github.com/dhamidi/combi/monoid"
	"github.com/dhamidi/combi/parser"
)

// Combinator wraps a parser with methods for the operators of this package, so
// that grammars read left to right:
//
//	Of(key).Then(Of(sep).Then(value).Maybe()).Many1()
type Combinator[I comparable, O monoid.Monoid[O]] struct {
	parser.Parser[I, O]
}

// Of wraps p.
func Of[I comparable, O monoid.Monoid[O]](p parser.Parser[I, O]) Combinator[I, O] {
	return Combinator[I, O]{Parser: p}
}

func (c Combinator[I, O]) Then(other parser.Parser[I, O]) Combinator[I, O] {
	return Of[I, O](Then(c.Parser, other))
}

func (c Combinator[I, O]) Maybe() Combinator[I, O] {
	return Of[I, O](Maybe(c.Parser))
}

func (c Combinator[I, O]) Opt() Combinator[I, O] {
	return c.Maybe()
}

func (c Combinator[I, O]) Many0() Combinator[I, O] {
	return Of[I, O](Many0(c.Parser))
}

func (c Combinator[I, O]) Many1() Combinator[I, O] {
	return Of[I, O](Many1(c.Parser))
}
