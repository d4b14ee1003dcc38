// Package handle provides a typed 32-bit index into an append-only
// arena (TypeToken, ProdExprToken, StmtExprToken, ...). Absence is
// modeled explicitly by Opt[T] rather than folded into Handle[T]
// itself.
//
// A handle is only meaningful to the buffer that minted it. Builds
// with the `colt_debug` tag make that checkable: handles carry the id
// of their originating buffer and every dereference verifies it.
package handle

// BufferID identifies the buffer a tagged handle was minted by. The
// zero value means "untagged" and is never handed out by NextBufferID.
type BufferID uint32

var lastBufferID BufferID

// NextBufferID mints a fresh buffer identity. Buffers live on a single
// thread, so a plain counter suffices.
func NextBufferID() BufferID {
	lastBufferID++
	return lastBufferID
}

// invalidIndex is the sentinel stored by the empty Opt[T] that None
// returns. A zero-value Opt[T] does not hold it: its handle has index
// 0, so it reads as present. math.MaxUint32 is never a legal arena index in
// practice (it would require 4 billion entries), so it is safe to
// reserve as "no handle" without growing Opt[T] to carry a separate
// boolean.
const invalidIndex = ^uint32(0)

// Opt is an optional Handle[T]: present or absent, with no boolean
// alongside it to fall out of sync.
type Opt[T any] struct {
	h Handle[T]
}

// None returns the empty Opt[T].
func None[T any]() Opt[T] {
	return Opt[T]{h: invalidHandle[T]()}
}

// Some wraps h as a present Opt[T].
func Some[T any](h Handle[T]) Opt[T] {
	return Opt[T]{h: h}
}

// Get returns the wrapped handle and true if o is present.
func (o Opt[T]) Get() (Handle[T], bool) {
	if o.h.Index() == invalidIndex {
		return Handle[T]{}, false
	}
	return o.h, true
}

func (o Opt[T]) IsSome() bool { return o.h.Index() != invalidIndex }
func (o Opt[T]) IsNone() bool { return o.h.Index() == invalidIndex }
