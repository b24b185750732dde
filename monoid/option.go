package monoid

// Option is an optional T, treated as a container of zero or one elements.
// Two present values combine their contents; an absent value is the identity.
type Option[T Monoid[T]] struct {
	Value T
	Valid bool
}

// Some returns a present Option holding v.
func Some[T Monoid[T]](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent Option.
func None[T Monoid[T]]() Option[T] {
	return Option[T]{}
}

func (Option[T]) Unit() Option[T] { return Option[T]{} }

func (o Option[T]) Combine(other Option[T]) Option[T] {
	switch {
	case !o.Valid:
		return other
	case !other.Valid:
		return o
	default:
		return Some(o.Value.Combine(other.Value))
	}
}

// Get returns the held value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// OrUnit returns the held value, or T's identity element when absent.
func (o Option[T]) OrUnit() T {
	if !o.Valid {
		return Empty[T]()
	}
	return o.Value
}
