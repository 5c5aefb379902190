// Package assoc implements the parent-existence-check-then-child-operation
// protocol shared by every nested sub-resource endpoint. The parent check is
// unconditional and always runs before any child-level work.
package assoc

import "github.com/quoteflow/quoteflow/pkg/apperr"

// Lookup is the two-variant result of a store lookup: either a value was
// found or it was not. Callers that need the throwing behavior use OrFail
// at the call site instead of threading boolean flags through the stack.
type Lookup[T any] struct {
	value T
	found bool
}

// Found wraps a located value.
func Found[T any](v T) Lookup[T] {
	return Lookup[T]{value: v, found: true}
}

// None is the missing-value variant.
func None[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Get returns the value and whether it was found.
func (l Lookup[T]) Get() (T, bool) {
	return l.value, l.found
}

// Ok reports whether a value was found.
func (l Lookup[T]) Ok() bool {
	return l.found
}

// OrFail returns the value, or a NotFound error naming the entity when the
// lookup came up empty.
func (l Lookup[T]) OrFail(entity string) (T, error) {
	if !l.found {
		var zero T
		return zero, apperr.NotFound(entity)
	}
	return l.value, nil
}
