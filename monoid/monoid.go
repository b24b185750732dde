// Package monoid defines combinable values: types with an identity element and an
// associative combine operation.
//
// A type T takes part by implementing Monoid[T] on its own value type:
//
//	type Text string
//
//	func (Text) Unit() Text               { return "" }
//	func (t Text) Combine(other Text) Text { return t + other }
//
// Every instance must satisfy, for all x, y and z:
//
//	Unit().Combine(x) == x                       // left identity
//	x.Combine(Unit()) == x                       // right identity
//	x.Combine(y.Combine(z)) == x.Combine(y).Combine(z) // associativity
//
// The compiler cannot check these laws; the package tests cover them for the
// instances defined here.
//
// Combine consumes both operands. Container instances append into, and return, the
// receiver's storage, and may hand back the right operand unchanged when the
// receiver is empty. Callers must not use either operand after combining them.
package monoid

import "iter"

// Monoid is satisfied by any type T with an identity element and an associative
// Combine. Unit is called on the zero value of T and must not depend on the
// receiver.
type Monoid[T any] interface {
	Unit() T
	Combine(other T) T
}

// Concatenator is implemented by instances that can fold a whole sequence faster
// than repeated Combine calls. Concat uses it when the identity element provides it.
type Concatenator[T any] interface {
	ConcatAll(xs []T) T
}

// Empty returns the identity element of T.
func Empty[T Monoid[T]]() T {
	var zero T
	return zero.Unit()
}

// Concat folds xs left to right, starting from the identity element.
func Concat[T Monoid[T]](xs ...T) T {
	acc := Empty[T]()
	if c, ok := any(acc).(Concatenator[T]); ok {
		return c.ConcatAll(xs)
	}
	for _, x := range xs {
		acc = acc.Combine(x)
	}
	return acc
}

// ConcatSeq is Concat over an iterator.
func ConcatSeq[T Monoid[T]](seq iter.Seq[T]) T {
	acc := Empty[T]()
	for x := range seq {
		acc = acc.Combine(x)
	}
	return acc
}
