// Package bytecode implements the ColtiExecutable container format and the
// 64-bit instruction encoding emitted into its sections: the format the
// back-end writes and the disassembler reads.
//
// Instruction word layout
// ========================
//
// Every instruction is one 64-bit word. The top 4 bits select the family;
// the remaining 60 bits are family-specific fields, laid out high-to-low:
//
//	Family       OpCode  Fields (high -> low)
//	BinaryType   0000    [4b sub-op][8b dst][8b a][8b b][4b type][28b pad]
//	BinaryBits   0001    [4b sub-op][8b dst][8b a][8b b][6b width][26b pad]
//	Branch       0010    [4b sub-op][56b signed offset]
//	SignedImm    0011    [60b signed immediate]
//	UnsignedImm  0100    [60b unsigned immediate]
//
// Signed fields are sign-extended from their bit-width on decode. All
// multi-byte values are little-endian on disk, host-endian in memory.
package bytecode

import "github.com/colt-lang/coltgo/internal/bitset"

// Family is the 4-bit instruction-word discriminant occupying bits
// [63:60] of every instruction.
type Family uint8

const (
	FamilyBinaryType Family = iota
	FamilyBinaryBits
	FamilyBranch
	FamilySignedImm
	FamilyUnsignedImm
)

func (f Family) String() string {
	switch f {
	case FamilyBinaryType:
		return "binary_type"
	case FamilyBinaryBits:
		return "binary_bits"
	case FamilyBranch:
		return "branch"
	case FamilySignedImm:
		return "signed_imm"
	case FamilyUnsignedImm:
		return "unsigned_imm"
	default:
		return "unknown"
	}
}

// Bit fields shared by every family: the top nibble always carries the
// family discriminant.
var fieldFamily = bitset.Field{Offset: 60, Width: 4}

// BinaryTypeOp enumerates the sub-ops of the BinaryType family: typed
// arithmetic and comparison against an operand-type tag.
type BinaryTypeOp uint8

const (
	BTAdd BinaryTypeOp = iota
	BTSub
	BTMul
	BTDiv
	BTMod
	BTEq
	BTNeq
	BTLt
	BTGt
	BTLe
	BTGe
)

func (o BinaryTypeOp) String() string {
	switch o {
	case BTAdd:
		return "add"
	case BTSub:
		return "sub"
	case BTMul:
		return "mul"
	case BTDiv:
		return "div"
	case BTMod:
		return "mod"
	case BTEq:
		return "eq"
	case BTNeq:
		return "neq"
	case BTLt:
		return "lt"
	case BTGt:
		return "gt"
	case BTLe:
		return "le"
	case BTGe:
		return "ge"
	default:
		return "unknown"
	}
}

var (
	btFieldSubOp = bitset.Field{Offset: 56, Width: 4}
	btFieldDst   = bitset.Field{Offset: 48, Width: 8}
	btFieldA     = bitset.Field{Offset: 40, Width: 8}
	btFieldB     = bitset.Field{Offset: 32, Width: 8}
	btFieldType  = bitset.Field{Offset: 28, Width: 4}
)

// EncodeBinaryType packs a BinaryType instruction: dst = a <op> b, where
// a/b/dst are 8-bit operand-slot indices and typeTag is the
// constfold.OperandType ordinal the operands are interpreted under.
func EncodeBinaryType(op BinaryTypeOp, dst, a, b uint8, typeTag uint8) uint64 {
	var w uint64
	w = fieldFamily.Set(w, uint64(FamilyBinaryType))
	w = btFieldSubOp.Set(w, uint64(op))
	w = btFieldDst.Set(w, uint64(dst))
	w = btFieldA.Set(w, uint64(a))
	w = btFieldB.Set(w, uint64(b))
	w = btFieldType.Set(w, uint64(typeTag))
	return w
}

// DecodeBinaryType unpacks a BinaryType instruction word.
func DecodeBinaryType(w uint64) (op BinaryTypeOp, dst, a, b, typeTag uint8) {
	return BinaryTypeOp(btFieldSubOp.Get(w)), uint8(btFieldDst.Get(w)),
		uint8(btFieldA.Get(w)), uint8(btFieldB.Get(w)), uint8(btFieldType.Get(w))
}

// BinaryBitsOp enumerates the sub-ops of the BinaryBits family: bitwise
// and shift operations masked to a declared width.
type BinaryBitsOp uint8

const (
	BBAnd BinaryBitsOp = iota
	BBOr
	BBXor
	BBLsr
	BBLsl
	BBAsr
)

func (o BinaryBitsOp) String() string {
	switch o {
	case BBAnd:
		return "and"
	case BBOr:
		return "or"
	case BBXor:
		return "xor"
	case BBLsr:
		return "lsr"
	case BBLsl:
		return "lsl"
	case BBAsr:
		return "asr"
	default:
		return "unknown"
	}
}

var (
	bbFieldSubOp = bitset.Field{Offset: 56, Width: 4}
	bbFieldDst   = bitset.Field{Offset: 48, Width: 8}
	bbFieldA     = bitset.Field{Offset: 40, Width: 8}
	bbFieldB     = bitset.Field{Offset: 32, Width: 8}
	bbFieldWidth = bitset.Field{Offset: 26, Width: 6}
)

// EncodeBinaryBits packs a BinaryBits instruction: dst = (a <op> b) masked
// to the low `width` bits (width in [1, 64]; the field is 6 bits wide, so
// 64 is encoded as 0).
func EncodeBinaryBits(op BinaryBitsOp, dst, a, b uint8, width uint8) uint64 {
	var w uint64
	w = fieldFamily.Set(w, uint64(FamilyBinaryBits))
	w = bbFieldSubOp.Set(w, uint64(op))
	w = bbFieldDst.Set(w, uint64(dst))
	w = bbFieldA.Set(w, uint64(a))
	w = bbFieldB.Set(w, uint64(b))
	w = bbFieldWidth.Set(w, uint64(width&0x3f))
	return w
}

// DecodeBinaryBits unpacks a BinaryBits instruction word.
func DecodeBinaryBits(w uint64) (op BinaryBitsOp, dst, a, b, width uint8) {
	return BinaryBitsOp(bbFieldSubOp.Get(w)), uint8(bbFieldDst.Get(w)),
		uint8(bbFieldA.Get(w)), uint8(bbFieldB.Get(w)), uint8(bbFieldWidth.Get(w))
}

// BranchOp enumerates the sub-ops of the Branch family.
type BranchOp uint8

const (
	BrUnconditional BranchOp = iota
	BrIfTrue
	BrIfFalse
	BrCall
)

func (o BranchOp) String() string {
	switch o {
	case BrUnconditional:
		return "b"
	case BrIfTrue:
		return "bt"
	case BrIfFalse:
		return "bf"
	case BrCall:
		return "call"
	default:
		return "unknown"
	}
}

var (
	brFieldSubOp  = bitset.Field{Offset: 56, Width: 4}
	brFieldOffset = bitset.Field{Offset: 0, Width: 56}
)

// EncodeBranch packs a Branch instruction with a signed offset (relative
// to the instruction's own position; the exact base is the emitter's
// convention, not fixed by this encoding).
func EncodeBranch(op BranchOp, offset int64) uint64 {
	var w uint64
	w = fieldFamily.Set(w, uint64(FamilyBranch))
	w = brFieldSubOp.Set(w, uint64(op))
	w = brFieldOffset.SetSigned(w, offset)
	return w
}

// DecodeBranch unpacks a Branch instruction word.
func DecodeBranch(w uint64) (op BranchOp, offset int64) {
	return BranchOp(brFieldSubOp.Get(w)), brFieldOffset.GetSigned(w)
}

var fieldImm60 = bitset.Field{Offset: 0, Width: 60}

// EncodeSignedImm packs a SignedImm instruction loading a 60-bit signed
// immediate.
func EncodeSignedImm(value int64) uint64 {
	var w uint64
	w = fieldFamily.Set(w, uint64(FamilySignedImm))
	w = fieldImm60.SetSigned(w, value)
	return w
}

// DecodeSignedImm unpacks a SignedImm instruction word.
func DecodeSignedImm(w uint64) int64 {
	return fieldImm60.GetSigned(w)
}

// EncodeUnsignedImm packs an UnsignedImm instruction loading a 60-bit
// unsigned immediate.
func EncodeUnsignedImm(value uint64) uint64 {
	var w uint64
	w = fieldFamily.Set(w, uint64(FamilyUnsignedImm))
	w = fieldImm60.Set(w, value)
	return w
}

// DecodeUnsignedImm unpacks an UnsignedImm instruction word.
func DecodeUnsignedImm(w uint64) uint64 {
	return fieldImm60.Get(w)
}

// DecodeFamily reads the top 4 bits of an instruction word, the first
// step any decoder (including the disassembler) must take before
// dispatching to a family-specific decode function.
func DecodeFamily(w uint64) Family {
	return Family(fieldFamily.Get(w))
}
