package types

import "github.com/colt-lang/coltgo/internal/handle"

// TypeBuffer interns TypeVariants: structurally-equal types collapse
// to the same handle, so downstream comparisons are handle equality
// rather than a deep TypeVariant walk. One TypeBuffer is shared across
// every file in a compilation.
type TypeBuffer struct {
	id        handle.BufferID
	types     []TypeVariant
	index     map[uint64][]uint32 // hash -> candidate indices, for interning
	fnPayload []FnPayload
	fnIndex   map[uint64][]uint32

	names map[uint32]string
}

func NewTypeBuffer() *TypeBuffer {
	return &TypeBuffer{
		id:      handle.NextBufferID(),
		index:   make(map[uint64][]uint32),
		fnIndex: make(map[uint64][]uint32),
		names:   make(map[uint32]string),
	}
}

// AddType interns variant and returns its handle, reusing an existing
// entry if one is structurally equal.
func (b *TypeBuffer) AddType(variant TypeVariant) handle.Handle[TypeVariant] {
	h := variant.Hash()
	for _, idx := range b.index[h] {
		if b.types[idx].Equal(variant) {
			return handle.Tagged[TypeVariant](idx, b.id)
		}
	}
	idx := uint32(len(b.types))
	b.types = append(b.types, variant)
	b.index[h] = append(b.index[h], idx)
	return handle.Tagged[TypeVariant](idx, b.id)
}

func (b *TypeBuffer) ErrorType() handle.Handle[TypeVariant] { return b.AddType(Error()) }
func (b *TypeBuffer) VoidType() handle.Handle[TypeVariant]  { return b.AddType(Void()) }

func (b *TypeBuffer) AddBuiltin(id BuiltinID) handle.Handle[TypeVariant] {
	return b.AddType(Builtin(id))
}

func (b *TypeBuffer) AddPtr(to handle.Handle[TypeVariant]) handle.Handle[TypeVariant] {
	return b.AddType(Ptr(to))
}

func (b *TypeBuffer) AddMutPtr(to handle.Handle[TypeVariant]) handle.Handle[TypeVariant] {
	return b.AddType(MutPtr(to))
}

func (b *TypeBuffer) AddOpaquePtr() handle.Handle[TypeVariant] {
	return b.AddType(OpaquePtr())
}

func (b *TypeBuffer) AddMutOpaquePtr() handle.Handle[TypeVariant] {
	return b.AddType(MutOpaquePtr())
}

// AddFn interns payload (by hash, same scheme as AddType) and then
// interns a KindFn TypeVariant referencing it by payload index.
func (b *TypeBuffer) AddFn(payload FnPayload) handle.Handle[TypeVariant] {
	h := payload.Hash()
	for _, idx := range b.fnIndex[h] {
		if b.fnPayload[idx].Equal(payload) {
			return b.AddType(Fn(idx))
		}
	}
	idx := uint32(len(b.fnPayload))
	b.fnPayload = append(b.fnPayload, payload)
	b.fnIndex[h] = append(b.fnIndex[h], idx)
	return b.AddType(Fn(idx))
}

// Type dereferences h. The returned value is a copy: TypeBuffer never
// hands out a pointer into its backing slice, so a later AddType call
// (which may reallocate) cannot invalidate it.
func (b *TypeBuffer) Type(h handle.Handle[TypeVariant]) TypeVariant {
	h.CheckOwner(b.id)
	return b.types[h.Index()]
}

func (b *TypeBuffer) FnPayloadOf(t TypeVariant) FnPayload {
	return b.fnPayload[t.FnPayload]
}

// TypeName renders h as Colt source syntax (`i32`, `mutptr.i32`,
// `opaque_ptr`, `fn(i32) -> bool`, ...), caching the result since pointer
// chains are rendered recursively and function types are rendered
// once per distinct signature.
func (b *TypeBuffer) TypeName(h handle.Handle[TypeVariant]) string {
	if name, ok := b.names[h.Index()]; ok {
		return name
	}
	name := b.computeTypeName(b.Type(h))
	b.names[h.Index()] = name
	return name
}

func (b *TypeBuffer) computeTypeName(t TypeVariant) string {
	switch t.Kind {
	case KindError:
		return "<ERROR>"
	case KindVoid:
		return "void"
	case KindBuiltin:
		return t.Builtin.String()
	case KindPtr:
		return "ptr." + b.TypeName(t.PointeeType)
	case KindMutPtr:
		return "mutptr." + b.TypeName(t.PointeeType)
	case KindOpaquePtr:
		return "opaque_ptr"
	case KindMutOpaquePtr:
		return "mut_opaque_ptr"
	case KindFn:
		return b.fnTypeName(b.FnPayloadOf(t))
	default:
		return "<unknown>"
	}
}

func (b *TypeBuffer) fnTypeName(p FnPayload) string {
	s := "fn("
	for i, arg := range p.Arguments {
		if i > 0 {
			s += ", "
		}
		s += b.TypeName(arg.Type)
	}
	if p.IsVariadic {
		if len(p.Arguments) > 0 {
			s += ", "
		}
		s += "..."
	}
	s += ") -> " + b.TypeName(p.ReturnType)
	return s
}
