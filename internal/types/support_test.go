package types

import "testing"

func TestSupportsUnary_Error_AlwaysBuiltin(t *testing.T) {
	for op := OpInc; op <= OpBitNot; op++ {
		if got := Error().SupportsUnary(op); got != UnaryBuiltin {
			t.Errorf("Error().SupportsUnary(%v) = %v, want UnaryBuiltin", op, got)
		}
	}
}

func TestSupportsUnary_Void_NeverSupported(t *testing.T) {
	for op := OpInc; op <= OpBitNot; op++ {
		if got := Void().SupportsUnary(op); got != UnaryInvalid {
			t.Errorf("Void().SupportsUnary(%v) = %v, want UnaryInvalid", op, got)
		}
	}
}

func TestSupportsUnary_Bool_OnlyBoolNot(t *testing.T) {
	b := Builtin(BOOL)
	if got := b.SupportsUnary(OpBoolNot); got != UnaryBuiltin {
		t.Errorf("bool.SupportsUnary(!) = %v, want UnaryBuiltin", got)
	}
	for _, op := range []UnaryOp{OpInc, OpDec, OpNegate, OpAddress, OpDeref, OpBitNot} {
		if got := b.SupportsUnary(op); got != UnaryInvalid {
			t.Errorf("bool.SupportsUnary(%v) = %v, want UnaryInvalid", op, got)
		}
	}
}

func TestSupportsUnary_SignedInt_FullSet(t *testing.T) {
	i := Builtin(I32)
	for _, op := range []UnaryOp{OpBitNot, OpNegate, OpInc, OpDec} {
		if got := i.SupportsUnary(op); got != UnaryBuiltin {
			t.Errorf("i32.SupportsUnary(%v) = %v, want UnaryBuiltin", op, got)
		}
	}
}

func TestSupportsUnary_UnsignedInt_NoNegate(t *testing.T) {
	u := Builtin(U32)
	if got := u.SupportsUnary(OpNegate); got != UnaryInvalid {
		t.Errorf("u32.SupportsUnary(-) = %v, want UnaryInvalid", got)
	}
	for _, op := range []UnaryOp{OpBitNot, OpInc, OpDec} {
		if got := u.SupportsUnary(op); got != UnaryBuiltin {
			t.Errorf("u32.SupportsUnary(%v) = %v, want UnaryBuiltin", op, got)
		}
	}
}

func TestSupportsUnary_Float_NoBitNot(t *testing.T) {
	f := Builtin(F64)
	if got := f.SupportsUnary(OpBitNot); got != UnaryInvalid {
		t.Errorf("f64.SupportsUnary(~) = %v, want UnaryInvalid", got)
	}
	for _, op := range []UnaryOp{OpInc, OpDec, OpNegate} {
		if got := f.SupportsUnary(op); got != UnaryBuiltin {
			t.Errorf("f64.SupportsUnary(%v) = %v, want UnaryBuiltin", op, got)
		}
	}
}

func TestSupportsUnary_Char_NeverSupported(t *testing.T) {
	c := Builtin(CHAR)
	for op := OpInc; op <= OpBitNot; op++ {
		if got := c.SupportsUnary(op); got != UnaryInvalid {
			t.Errorf("char.SupportsUnary(%v) = %v, want UnaryInvalid", op, got)
		}
	}
}

func TestSupportsUnary_Bytes_OnlyBitNot(t *testing.T) {
	byt := Builtin(BYTE)
	if got := byt.SupportsUnary(OpBitNot); got != UnaryBuiltin {
		t.Errorf("BYTE.SupportsUnary(~) = %v, want UnaryBuiltin", got)
	}
	if got := byt.SupportsUnary(OpNegate); got != UnaryInvalid {
		t.Errorf("BYTE.SupportsUnary(-) = %v, want UnaryInvalid", got)
	}
}

func TestSupportsBinary_OpaquePtr_OnlyComparisonsAgainstOpaque(t *testing.T) {
	op := OpaquePtr()
	if got := op.SupportsBinary(OpEqual, MutOpaquePtr()); got != BinaryBuiltin {
		t.Errorf("opaque == mut_opaque = %v, want BinaryBuiltin", got)
	}
	b := NewTypeBuffer()
	i32 := b.AddBuiltin(I32)
	if got := op.SupportsBinary(OpEqual, Ptr(i32)); got != BinaryInvalidType {
		t.Errorf("opaque == ptr(i32) = %v, want BinaryInvalidType", got)
	}
	if got := op.SupportsBinary(OpSum, MutOpaquePtr()); got != BinaryInvalidOp {
		t.Errorf("opaque + opaque = %v, want BinaryInvalidOp", got)
	}
}

func TestSupportsBinary_Pointer_ArithmeticAndSamePointeeComparison(t *testing.T) {
	b := NewTypeBuffer()
	i32 := b.AddBuiltin(I32)
	u32 := b.AddBuiltin(U32)
	p1 := Ptr(i32)
	p2 := Ptr(i32)
	p3 := Ptr(u32)

	if got := p1.SupportsBinary(OpSum, Builtin(I32)); got != BinaryBuiltin {
		t.Errorf("ptr i32 + i32 = %v, want BinaryBuiltin", got)
	}
	if got := p1.SupportsBinary(OpSum, Builtin(BOOL)); got != BinaryInvalidType {
		t.Errorf("ptr i32 + bool = %v, want BinaryInvalidType", got)
	}
	if got := p1.SupportsBinary(OpEqual, p2); got != BinaryBuiltin {
		t.Errorf("ptr i32 == ptr i32 = %v, want BinaryBuiltin", got)
	}
	if got := p1.SupportsBinary(OpEqual, p3); got != BinaryInvalidType {
		t.Errorf("ptr i32 == ptr u32 = %v, want BinaryInvalidType", got)
	}
	if got := p1.SupportsBinary(OpMul, Builtin(I32)); got != BinaryInvalidOp {
		t.Errorf("ptr i32 * i32 = %v, want BinaryInvalidOp", got)
	}
}

func TestSupportsBinary_SameWidthRule(t *testing.T) {
	i32 := Builtin(I32)
	if got := i32.SupportsBinary(OpSum, Builtin(I32)); got != BinaryBuiltin {
		t.Errorf("i32 + i32 = %v, want BinaryBuiltin", got)
	}
	if got := i32.SupportsBinary(OpSum, Builtin(I64)); got != BinaryInvalidType {
		t.Errorf("i32 + i64 = %v, want BinaryInvalidType", got)
	}
}

func TestSupportsBinary_Float_NoBitwise(t *testing.T) {
	f := Builtin(F64)
	for _, op := range []BinaryOp{OpBitAnd, OpBitOr, OpBitXor, OpBitLshift, OpBitRshift} {
		if got := f.SupportsBinary(op, Builtin(F64)); got != BinaryInvalidOp {
			t.Errorf("f64 %v f64 = %v, want BinaryInvalidOp", op, got)
		}
	}
	if got := f.SupportsBinary(OpSum, Builtin(F64)); got != BinaryBuiltin {
		t.Errorf("f64 + f64 = %v, want BinaryBuiltin", got)
	}
	if got := f.SupportsBinary(OpMod, Builtin(F64)); got != BinaryInvalidOp {
		t.Errorf("f64 %% f64 = %v, want BinaryInvalidOp", got)
	}
}

func TestSupportsBinary_Bool_LogicalAndEquality(t *testing.T) {
	bl := Builtin(BOOL)
	for _, op := range []BinaryOp{OpBitAnd, OpBitOr, OpBitXor, OpBoolAnd, OpBoolOr, OpEqual, OpNotEqual} {
		if got := bl.SupportsBinary(op, Builtin(BOOL)); got != BinaryBuiltin {
			t.Errorf("bool %v bool = %v, want BinaryBuiltin", op, got)
		}
	}
	if got := bl.SupportsBinary(OpLess, Builtin(BOOL)); got != BinaryInvalidOp {
		t.Errorf("bool < bool = %v, want BinaryInvalidOp", got)
	}
}

func TestSupportsBinary_Char_NeverSupported(t *testing.T) {
	c := Builtin(CHAR)
	if got := c.SupportsBinary(OpEqual, Builtin(CHAR)); got != BinaryInvalidOp {
		t.Errorf("char == char = %v, want BinaryInvalidOp", got)
	}
}

func TestSupportsBinary_Error_AlwaysBuiltin(t *testing.T) {
	if got := Error().SupportsBinary(OpDiv, Void()); got != BinaryBuiltin {
		t.Errorf("error / void = %v, want BinaryBuiltin", got)
	}
}

func TestComparisonResultIsAlwaysBool(t *testing.T) {
	// SupportsBinary only reports acceptance/rejection; the bool-typing
	// of a successful comparison is enforced by the caller that builds
	// the ProdBinary node, so this only pins IsComparisonOp's membership.
	for op := OpLess; op <= OpEqual; op++ {
		if !IsComparisonOp(op) {
			t.Errorf("IsComparisonOp(%v) = false, want true", op)
		}
	}
	if IsComparisonOp(OpSum) {
		t.Errorf("IsComparisonOp(+) = true, want false")
	}
}

func TestCastableTo_ErrorAndBuiltinOnly(t *testing.T) {
	if got := Error().CastableTo(Void()); got != ConversionBuiltin {
		t.Errorf("error as void = %v, want ConversionBuiltin", got)
	}
	if got := Builtin(I32).CastableTo(Builtin(F64)); got != ConversionBuiltin {
		t.Errorf("i32 as f64 = %v, want ConversionBuiltin", got)
	}
	if got := Builtin(I32).CastableTo(Void()); got != ConversionInvalid {
		t.Errorf("i32 as void = %v, want ConversionInvalid", got)
	}
	if got := Void().CastableTo(Builtin(I32)); got != ConversionInvalid {
		t.Errorf("void as i32 = %v, want ConversionInvalid", got)
	}
}

// TestIsSameAs_ErrorAbsorption: IsSameAs is reflexive and returns true
// whenever at least one side is Error.
func TestIsSameAs_ErrorAbsorption(t *testing.T) {
	if !Error().IsSameAs(Builtin(I32)) {
		t.Errorf("error.IsSameAs(i32) = false, want true")
	}
	if !Builtin(I32).IsSameAs(Error()) {
		t.Errorf("i32.IsSameAs(error) = false, want true")
	}
	if !Builtin(I32).IsSameAs(Builtin(I32)) {
		t.Errorf("i32.IsSameAs(i32) = false, want true")
	}
	if Builtin(I32).IsSameAs(Builtin(U32)) {
		t.Errorf("i32.IsSameAs(u32) = true, want false")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	a := Builtin(I32)
	b := Builtin(I32)
	if a.Equal(b) && a.Hash() != b.Hash() {
		t.Errorf("a.Equal(b) but Hash differs: %d != %d", a.Hash(), b.Hash())
	}
}
