package monoid

import (
	"cmp"
	"maps"
	"slices"
)

// Slice is an ordered sequence; Combine appends the right operand after the left.
type Slice[E any] []E

func (Slice[E]) Unit() Slice[E] { return nil }

func (s Slice[E]) Combine(other Slice[E]) Slice[E] {
	switch {
	case len(other) == 0:
		return s
	case len(s) == 0:
		return other
	}
	return append(s, other...)
}

// ConcatAll appends every element of xs into one new slice.
func (Slice[E]) ConcatAll(xs []Slice[E]) Slice[E] {
	n := 0
	for _, x := range xs {
		n += len(x)
	}
	if n == 0 {
		return nil
	}
	out := make(Slice[E], 0, n)
	for _, x := range xs {
		out = append(out, x...)
	}
	return out
}

// Set is an unordered set; Combine is union.
type Set[E comparable] map[E]struct{}

// SetOf returns a Set holding elems.
func SetOf[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

func (Set[E]) Unit() Set[E] { return nil }

func (s Set[E]) Combine(other Set[E]) Set[E] {
	switch {
	case len(other) == 0:
		return s
	case len(s) == 0:
		return other
	}
	for e := range other {
		s[e] = struct{}{}
	}
	return s
}

// Has reports whether e is in s.
func (s Set[E]) Has(e E) bool {
	_, ok := s[e]
	return ok
}

// Sorted returns the elements of s in ascending order.
func Sorted[E cmp.Ordered](s Set[E]) []E {
	return slices.Sorted(maps.Keys(s))
}

// Map is a key-value map; Combine is union and the right operand wins on
// key collision.
type Map[K comparable, V any] map[K]V

func (Map[K, V]) Unit() Map[K, V] { return nil }

func (m Map[K, V]) Combine(other Map[K, V]) Map[K, V] {
	switch {
	case len(other) == 0:
		return m
	case len(m) == 0:
		return other
	}
	maps.Copy(m, other)
	return m
}
