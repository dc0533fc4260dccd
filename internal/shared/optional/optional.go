// Package optional provides an explicit "maybe absent" result for lookups.
package optional

// Optional holds a value that may be absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Of wraps a present value.
func Of[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// Empty returns an absent value.
func Empty[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool {
	return o.present
}
