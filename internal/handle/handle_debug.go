//go:build colt_debug

package handle

import "fmt"

// Handle is a typed index into the arena holding values of type T. In
// colt_debug builds it also remembers which buffer minted it, so a
// dereference against the wrong buffer panics instead of silently
// reading an unrelated entry.
type Handle[T any] struct {
	index uint32
	owner BufferID
}

// New wraps a raw arena index as an untagged Handle[T]; CheckOwner
// accepts it against any buffer. Used by tests that build handles by
// hand.
func New[T any](index uint32) Handle[T] {
	return Handle[T]{index: index}
}

// Tagged wraps a raw arena index as a Handle[T] minted by owner.
func Tagged[T any](index uint32, owner BufferID) Handle[T] {
	return Handle[T]{index: index, owner: owner}
}

func (h Handle[T]) Index() uint32 { return h.index }

// CheckOwner panics when h was minted by a different buffer than the
// one dereferencing it. Untagged handles (owner 0) pass.
func (h Handle[T]) CheckOwner(owner BufferID) {
	if h.owner != 0 && h.owner != owner {
		panic(fmt.Sprintf("handle: index %d minted by buffer %d dereferenced on buffer %d",
			h.index, h.owner, owner))
	}
}

func invalidHandle[T any]() Handle[T] {
	return Handle[T]{index: invalidIndex}
}
