package cache

// Result is the outcome of a cache or store lookup: either Found with a
// value or Missing. A Missing result never carries a usable value.
type Result[V any] struct {
	value V
	found bool
}

// Found wraps a present value
func Found[V any](value V) Result[V] {
	return Result[V]{value: value, found: true}
}

// Missing is the empty result
func Missing[V any]() Result[V] {
	return Result[V]{}
}

// HasValue reports whether the lookup found a value
func (r Result[V]) HasValue() bool {
	return r.found
}

// Value returns the value, or the zero value when missing
func (r Result[V]) Value() V {
	return r.value
}

// Get returns the value and whether it was found
func (r Result[V]) Get() (V, bool) {
	return r.value, r.found
}
