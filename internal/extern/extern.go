// Package extern defines the seams a Session exposes to the outside
// world: foreign-function calls, dynamic-library loading, REPL input,
// and allocation. Each is a thin interface specified only by the shape
// of the data it exchanges with the core, mirroring the marshaling
// boundary described for the FFI trampoline; none carry an
// implementation here, since linking a real C ABI or dynamic loader is
// out of scope for this repository.
package extern

import (
	"unsafe"

	"github.com/colt-lang/coltgo/internal/handle"
	"github.com/colt-lang/coltgo/internal/types"
)

// TypeToken addresses an interned type, the same handle Session's
// TypeBuffer hands out.
type TypeToken = handle.Handle[types.TypeVariant]

// Value is a boxed runtime value crossing the FFI boundary: a raw
// 64-bit payload, read under Type the same way constfold reads a
// payload under an OperandType.
type Value struct {
	Raw  uint64
	Type TypeToken
}

// Trampoline marshals a Colt-typed argument list across a C ABI call
// and marshals the result back.
type Trampoline interface {
	Call(symbol string, args []Value, ret TypeToken) (Value, error)
}

// LibraryLoader resolves a dynamic library a Trampoline can call into.
type LibraryLoader interface {
	Load(path string) (Library, error)
}

// Library is a loaded dynamic library, open until Close.
type Library interface {
	Symbol(name string) (uintptr, error)
	Close() error
}

// REPLSource supplies one compilation unit's worth of source at a
// time to an interactive session.
type REPLSource interface {
	NextLine() (string, bool)
}

// Allocator is the only cross-cutting resource a Session depends on
// beyond Go's own heap: swapping it lets an embedder hand the compiler
// an arena or pool allocator instead of the runtime's.
type Allocator interface {
	Alloc(size, align uintptr) (unsafe.Pointer, bool)
	Free(p unsafe.Pointer)
}
