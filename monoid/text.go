package monoid

import (
	"strings"

	"golang.org/x/exp/constraints"
)

// Text combines by concatenation.
type Text string

func (Text) Unit() Text { return "" }

func (t Text) Combine(other Text) Text { return t + other }

// ConcatAll joins xs with a single allocation.
func (Text) ConcatAll(xs []Text) Text {
	var b strings.Builder
	n := 0
	for _, x := range xs {
		n += len(x)
	}
	b.Grow(n)
	for _, x := range xs {
		b.WriteString(string(x))
	}
	return Text(b.String())
}

func (t Text) String() string { return string(t) }

// Number is the set of types Sum and Product accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum combines by addition.
type Sum[N Number] struct {
	Value N
}

func (Sum[N]) Unit() Sum[N] { return Sum[N]{} }

func (s Sum[N]) Combine(other Sum[N]) Sum[N] { return Sum[N]{Value: s.Value + other.Value} }

// Product combines by multiplication.
type Product[N Number] struct {
	Value N
}

func (Product[N]) Unit() Product[N] { return Product[N]{Value: 1} }

func (p Product[N]) Combine(other Product[N]) Product[N] {
	return Product[N]{Value: p.Value * other.Value}
}

// Any combines by logical or.
type Any bool

func (Any) Unit() Any { return false }

func (a Any) Combine(other Any) Any { return a || other }

// All combines by logical and.
type All bool

func (All) Unit() All { return true }

func (a All) Combine(other All) All { return a && other }
