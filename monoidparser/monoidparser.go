// Package monoidparser combines parsers whose output is a monoid.
//
// Sequencing, optional and repeated parsers fold their sub-results with the
// output type's Combine, so a grammar can be assembled without writing any
// accumulation code:
//
//	word := parser.Map(parser.TakeWhile1("letter", unicode.IsLetter), toText)
//	comma := parser.Map(parser.Tag(","), toText)
//	list := monoidparser.Of(word).Then(monoidparser.Of(comma).Then(word).Many0())
//
// Parsing "a,b,c" with list yields the Text "a,b,c".
//
// Failures follow the parser package: a recoverable failure lets Maybe and the
// repetitions stop or substitute the identity element, a fatal failure always
// propagates and discards anything folded so far.
package monoidparser

import (
	"github.com/dhamidi/combi/monoid"
	"github.com/dhamidi/combi/parser"
)

// ThenParser runs P1 and then P2 on the remaining input and combines their outputs.
type ThenParser[I any, O monoid.Monoid[O]] struct {
	P1, P2 parser.Parser[I, O]
}

// Then returns a parser for p1 followed by p2. If either fails, the failure is
// returned unchanged; input consumed by p1 is not given back.
func Then[I any, O monoid.Monoid[O]](p1, p2 parser.Parser[I, O]) ThenParser[I, O] {
	return ThenParser[I, O]{P1: p1, P2: p2}
}

func (t ThenParser[I, O]) Parse(input I) (I, O, error) {
	rest, out1, err := t.P1.Parse(input)
	if err != nil {
		return rest, out1, err
	}
	rest, out2, err := t.P2.Parse(rest)
	if err != nil {
		return rest, out2, err
	}
	return rest, out1.Combine(out2), nil
}

// ConcatParser runs each of Ps in turn and combines all of their outputs.
type ConcatParser[I any, O monoid.Monoid[O]] struct {
	Ps []parser.Parser[I, O]
}

// Concat is Then generalised to any number of parsers. With no parsers it
// matches the empty input and returns the identity element.
func Concat[I any, O monoid.Monoid[O]](ps ...parser.Parser[I, O]) ConcatParser[I, O] {
	return ConcatParser[I, O]{Ps: ps}
}

func (c ConcatParser[I, O]) Parse(input I) (I, O, error) {
	acc := monoid.Empty[O]()
	for _, p := range c.Ps {
		rest, out, err := p.Parse(input)
		if err != nil {
			return rest, out, err
		}
		acc = acc.Combine(out)
		input = rest
	}
	return input, acc, nil
}

// FlattenParser folds the slice produced by P into a single value.
type FlattenParser[I any, S ~[]O, O monoid.Monoid[O]] struct {
	P parser.Parser[I, S]
}

// Flatten adapts a parser producing several monoid values, such as the result of
// parser.Many0 or parser.Opt, into one that produces their concatenation.
func Flatten[I any, S ~[]O, O monoid.Monoid[O]](p parser.Parser[I, S]) FlattenParser[I, S, O] {
	return FlattenParser[I, S, O]{P: p}
}

func (f FlattenParser[I, S, O]) Parse(input I) (I, O, error) {
	rest, outs, err := f.P.Parse(input)
	if err != nil {
		var zero O
		return rest, zero, err
	}
	return rest, monoid.Concat([]O(outs)...), nil
}

// MaybeParser runs P and falls back to the identity element when P does not match.
type MaybeParser[I any, O monoid.Monoid[O]] struct {
	P parser.Parser[I, O]
}

// Maybe makes p optional. A recoverable failure of p becomes a success that
// consumes nothing and returns O's identity element. Fatal failures propagate.
func Maybe[I any, O monoid.Monoid[O]](p parser.Parser[I, O]) MaybeParser[I, O] {
	return MaybeParser[I, O]{P: p}
}

// Opt is another name for Maybe.
func Opt[I any, O monoid.Monoid[O]](p parser.Parser[I, O]) MaybeParser[I, O] {
	return Maybe(p)
}

func (m MaybeParser[I, O]) Parse(input I) (I, O, error) {
	return Flatten[I, []O, O](parser.Opt[I, O](byRef(&m.P))).Parse(input)
}

// Many0Parser folds zero or more matches of P.
type Many0Parser[I comparable, O monoid.Monoid[O]] struct {
	P parser.Parser[I, O]
}

// Many0 repeats p until it fails recoverably or stops consuming input, and
// combines every output in order. Zero matches yields O's identity element.
// A fatal failure propagates and the outputs combined so far are discarded.
func Many0[I comparable, O monoid.Monoid[O]](p parser.Parser[I, O]) Many0Parser[I, O] {
	return Many0Parser[I, O]{P: p}
}

func (m Many0Parser[I, O]) Parse(input I) (I, O, error) {
	return Flatten[I, []O, O](parser.Many0[I, O](byRef(&m.P))).Parse(input)
}

// Many1Parser folds one or more matches of P.
type Many1Parser[I comparable, O monoid.Monoid[O]] struct {
	P parser.Parser[I, O]
}

// Many1 is Many0 but requires one match; when there is none, the recoverable
// failure of the first attempt is returned.
func Many1[I comparable, O monoid.Monoid[O]](p parser.Parser[I, O]) Many1Parser[I, O] {
	return Many1Parser[I, O]{P: p}
}

func (m Many1Parser[I, O]) Parse(input I) (I, O, error) {
	return Flatten[I, []O, O](parser.Many1[I, O](byRef(&m.P))).Parse(input)
}

// refParser lends a parser to one of the parser package helpers for the duration
// of a single call, without copying it into the helper.
type refParser[I, O any] struct {
	p *parser.Parser[I, O]
}

func byRef[I, O any](p *parser.Parser[I, O]) refParser[I, O] {
	return refParser[I, O]{p: p}
}

func (r refParser[I, O]) Parse(input I) (I, O, error) {
	return (*r.p).Parse(input)
}
