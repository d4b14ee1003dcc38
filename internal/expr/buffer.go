package expr

import (
	"fmt"

	"github.com/colt-lang/coltgo/internal/handle"
	"github.com/colt-lang/coltgo/internal/lexer"
	"github.com/colt-lang/coltgo/internal/types"
)

// ExprBuffer owns the producer and statement expression vectors for one
// compilation session and is the only way to construct an expression:
// every builder below enforces the precondition its result type
// depends on and panics (an internal invariant violation, not a
// user-facing diagnostic) rather than returning a malformed node.
type ExprBuffer struct {
	id    handle.BufferID
	types *types.TypeBuffer
	prod  []ProdExpr
	stmt  []StmtExpr
}

func NewExprBuffer(typeBuffer *types.TypeBuffer) *ExprBuffer {
	return &ExprBuffer{id: handle.NextBufferID(), types: typeBuffer}
}

func (b *ExprBuffer) addProd(e ProdExpr) ProdExprToken {
	idx := uint32(len(b.prod))
	b.prod = append(b.prod, e)
	return handle.Tagged[ProdExpr](idx, b.id)
}

func (b *ExprBuffer) addStmt(e StmtExpr) StmtExprToken {
	idx := uint32(len(b.stmt))
	b.stmt = append(b.stmt, e)
	return handle.Tagged[StmtExpr](idx, b.id)
}

// Prod returns the expression prod addresses.
func (b *ExprBuffer) Prod(prod ProdExprToken) ProdExpr {
	prod.CheckOwner(b.id)
	return b.prod[prod.Index()]
}

// Stmt returns the expression stmt addresses.
func (b *ExprBuffer) Stmt(stmt StmtExprToken) StmtExpr {
	stmt.CheckOwner(b.id)
	return b.stmt[stmt.Index()]
}

// TypeOfProd returns the type of the expression prod addresses.
func (b *ExprBuffer) TypeOfProd(prod ProdExprToken) types.TypeVariant {
	return b.types.Type(b.Prod(prod).Type)
}

// TypeOfStmt returns the type of the expression stmt addresses
// (void for scopes and conditions, the declared type for variable and
// global declarations, and the error type for an error statement).
func (b *ExprBuffer) TypeOfStmt(stmt StmtExprToken) types.TypeVariant {
	return b.types.Type(b.Stmt(stmt).Type)
}

func (b *ExprBuffer) AddError(r lexer.TokenRange) ProdExprToken {
	return b.addProd(ProdExpr{Kind: ProdError, Range: r, Type: b.types.ErrorType()})
}

func (b *ExprBuffer) AddErrorStmt(r lexer.TokenRange) StmtExprToken {
	return b.addStmt(StmtExpr{Kind: StmtError, Range: r, Type: b.types.ErrorType()})
}

func (b *ExprBuffer) AddNOP(r lexer.TokenRange) ProdExprToken {
	return b.addProd(ProdExpr{Kind: ProdNOP, Range: r, Type: b.types.VoidType()})
}

// AddLiteral requires id to be a built-in type; value is interpreted
// under id at codegen/constant-folding time.
func (b *ExprBuffer) AddLiteral(r lexer.TokenRange, value uint64, id types.BuiltinID) ProdExprToken {
	return b.addProd(ProdExpr{
		Kind: ProdLiteral, Range: r,
		Type:         b.types.AddBuiltin(id),
		LiteralValue: value,
	})
}

// AddUnary has no precondition: every unary operator is type-checked by
// the caller via TypeVariant.SupportsUnary before this is called.
func (b *ExprBuffer) AddUnary(r lexer.TokenRange, op types.UnaryOp, e ProdExprToken) ProdExprToken {
	return b.addProd(ProdExpr{
		Kind: ProdUnary, Range: r,
		Type: b.Prod(e).Type, UnaryOp: op, UnaryOperand: e,
	})
}

// AddBinary requires lhs and rhs to share a type. The result is bool
// for the comparison family, otherwise lhs's type.
func (b *ExprBuffer) AddBinary(r lexer.TokenRange, lhs ProdExprToken, op types.BinaryOp, rhs ProdExprToken) ProdExprToken {
	lhsType := b.Prod(lhs).Type
	if lhsType != b.Prod(rhs).Type {
		panic("expr: AddBinary requires both operands to share a type")
	}
	resultType := lhsType
	if types.IsComparisonOp(op) {
		resultType = b.types.AddBuiltin(types.BOOL)
	}
	return b.addProd(ProdExpr{
		Kind: ProdBinary, Range: r,
		Type: resultType, BinaryLHS: lhs, BinaryOp: op, BinaryRHS: rhs,
	})
}

// AddCast requires dst and the operand's type to both be built-in.
func (b *ExprBuffer) AddCast(r lexer.TokenRange, dst handle.Handle[types.TypeVariant], e ProdExprToken) ProdExprToken {
	if !b.types.Type(dst).IsBuiltin() || !b.Prod(e).typeIsBuiltin(b) {
		panic("expr: AddCast requires both types to be built-in")
	}
	return b.addProd(ProdExpr{Kind: ProdCast, Range: r, Type: dst, CastOperand: e})
}

// AddBitCast additionally requires at least one side to be byte-family
// (BYTE/WORD/DWORD/QWORD).
func (b *ExprBuffer) AddBitCast(r lexer.TokenRange, dst handle.Handle[types.TypeVariant], e ProdExprToken) ProdExprToken {
	dstType := b.types.Type(dst)
	srcType := b.TypeOfProd(e)
	if !dstType.IsBuiltin() || !srcType.IsBuiltin() {
		panic("expr: AddBitCast requires both types to be built-in")
	}
	if !dstType.IsBuiltinAnd(types.IsBytes) && !srcType.IsBuiltinAnd(types.IsBytes) {
		panic("expr: AddBitCast requires at least one side to be byte-family")
	}
	return b.addProd(ProdExpr{Kind: ProdCast, Range: r, Type: dst, CastOperand: e, IsBitCast: true})
}

func (e ProdExpr) typeIsBuiltin(b *ExprBuffer) bool {
	return b.types.Type(e.Type).IsBuiltin()
}

// AddAddressOf requires decl to be a variable or global declaration;
// the result is MutPtr<T> or Ptr<T> depending on decl's mutability.
func (b *ExprBuffer) AddAddressOf(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	d := b.Stmt(decl)
	if !d.IsVarDecl() && !d.IsGlobalDecl() {
		panic("expr: AddAddressOf requires a variable or global declaration")
	}
	var resultType handle.Handle[types.TypeVariant]
	if d.IsMut {
		resultType = b.types.AddMutPtr(d.DeclType)
	} else {
		resultType = b.types.AddPtr(d.DeclType)
	}
	return b.addProd(ProdExpr{Kind: ProdAddressOf, Range: r, Type: resultType, AddressOfDecl: decl})
}

// AddPtrLoad requires e to have a non-opaque pointer type; the result
// is the pointee type.
func (b *ExprBuffer) AddPtrLoad(r lexer.TokenRange, e ProdExprToken) ProdExprToken {
	t := b.TypeOfProd(e)
	if !t.IsAnyPtr() {
		panic("expr: AddPtrLoad requires a non-opaque pointer operand")
	}
	return b.addProd(ProdExpr{Kind: ProdPtrLoad, Range: r, Type: t.PointeeType, PtrLoadOperand: e})
}

// AddVarRead requires decl to be a local variable declaration.
func (b *ExprBuffer) AddVarRead(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	d := b.Stmt(decl)
	if !d.IsVarDecl() {
		panic("expr: AddVarRead requires a local variable declaration")
	}
	return b.addProd(ProdExpr{Kind: ProdVarRead, Range: r, Type: d.DeclType, ReadDecl: decl})
}

// AddGlobalRead requires decl to be a global declaration.
func (b *ExprBuffer) AddGlobalRead(r lexer.TokenRange, decl StmtExprToken) ProdExprToken {
	d := b.Stmt(decl)
	if !d.IsGlobalDecl() {
		panic("expr: AddGlobalRead requires a global declaration")
	}
	return b.addProd(ProdExpr{Kind: ProdGlobalRead, Range: r, Type: d.DeclType, ReadDecl: decl})
}

// AddVarWrite requires decl to be local and value's type to match it.
func (b *ExprBuffer) AddVarWrite(r lexer.TokenRange, decl StmtExprToken, value ProdExprToken) ProdExprToken {
	d := b.Stmt(decl)
	if !d.IsVarDecl() {
		panic("expr: AddVarWrite requires a local variable declaration")
	}
	if d.DeclType != b.Prod(value).Type {
		panic("expr: AddVarWrite requires value's type to match the declaration")
	}
	return b.addProd(ProdExpr{Kind: ProdVarWrite, Range: r, Type: b.types.VoidType(), WriteDecl: decl, WriteValue: value})
}

// AddGlobalWrite requires decl to be global and value's type to match it.
func (b *ExprBuffer) AddGlobalWrite(r lexer.TokenRange, decl StmtExprToken, value ProdExprToken) ProdExprToken {
	d := b.Stmt(decl)
	if !d.IsGlobalDecl() {
		panic("expr: AddGlobalWrite requires a global declaration")
	}
	if d.DeclType != b.Prod(value).Type {
		panic("expr: AddGlobalWrite requires value's type to match the declaration")
	}
	return b.addProd(ProdExpr{Kind: ProdGlobalWrite, Range: r, Type: b.types.VoidType(), WriteDecl: decl, WriteValue: value})
}

// AddPtrStore requires dst to be a non-opaque MutPtr<T> and value's
// type to be T.
func (b *ExprBuffer) AddPtrStore(r lexer.TokenRange, dst ProdExprToken, value ProdExprToken) ProdExprToken {
	dstType := b.TypeOfProd(dst)
	if !dstType.IsMutPtr() {
		panic("expr: AddPtrStore requires a non-opaque mutable pointer destination")
	}
	if dstType.PointeeType != b.Prod(value).Type {
		panic("expr: AddPtrStore requires value's type to match the pointee type")
	}
	return b.addProd(ProdExpr{Kind: ProdPtrStore, Range: r, Type: b.types.VoidType(), StoreDst: dst, WriteValue: value})
}

func isDeclExpr(s StmtExpr) bool { return s.IsVarDecl() || s.IsGlobalDecl() }

// AddMove requires both operands to be local variable declarations.
func (b *ExprBuffer) AddMove(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !b.Stmt(from).IsVarDecl() || !b.Stmt(to).IsVarDecl() {
		panic("expr: AddMove requires two local variable declarations")
	}
	return b.addProd(ProdExpr{Kind: ProdMove, Range: r, Type: b.types.VoidType(), TransferFrom: from, TransferTo: to})
}

// AddCopy requires both operands to be variable or global declarations.
func (b *ExprBuffer) AddCopy(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !isDeclExpr(b.Stmt(from)) || !isDeclExpr(b.Stmt(to)) {
		panic("expr: AddCopy requires two variable or global declarations")
	}
	return b.addProd(ProdExpr{Kind: ProdCopy, Range: r, Type: b.types.VoidType(), TransferFrom: from, TransferTo: to})
}

// AddCMove requires both operands to be variable or global declarations.
func (b *ExprBuffer) AddCMove(r lexer.TokenRange, from, to StmtExprToken) ProdExprToken {
	if !isDeclExpr(b.Stmt(from)) || !isDeclExpr(b.Stmt(to)) {
		panic("expr: AddCMove requires two variable or global declarations")
	}
	return b.addProd(ProdExpr{Kind: ProdCMove, Range: r, Type: b.types.VoidType(), TransferFrom: from, TransferTo: to})
}

// AddFnCall calls callee (a KindFn type) with args, evaluated
// left-to-right, typed as the callee's declared return type.
// Argument-count and specifier checking against the payload belong to
// the parser that constructs the call.
func (b *ExprBuffer) AddFnCall(r lexer.TokenRange, callee handle.Handle[types.TypeVariant], args []ProdExprToken) ProdExprToken {
	calleeType := b.types.Type(callee)
	if calleeType.Kind != types.KindFn {
		panic("expr: AddFnCall requires a function-typed callee")
	}
	payload := b.types.FnPayloadOf(calleeType)
	return b.addProd(ProdExpr{Kind: ProdFnCall, Range: r, Type: payload.ReturnType, Callee: callee, Args: args})
}

// AddScope creates a root scope with no parent.
func (b *ExprBuffer) AddScope(r lexer.TokenRange) StmtExprToken {
	return b.addStmt(StmtExpr{Kind: StmtScope, Range: r, Type: b.types.VoidType(), ScopeParent: handle.None[StmtExpr]()})
}

// AddScopeWithParent requires parent to itself be a scope; the new
// scope is appended to the parent's child list.
func (b *ExprBuffer) AddScopeWithParent(r lexer.TokenRange, parent StmtExprToken) StmtExprToken {
	if !b.Stmt(parent).IsScope() {
		panic("expr: AddScopeWithParent requires a scope as parent")
	}
	tok := b.addStmt(StmtExpr{
		Kind: StmtScope, Range: r, Type: b.types.VoidType(),
		ScopeParent: handle.Some(parent),
	})
	b.AppendToScope(parent, tok)
	return tok
}

// AppendToScope records child as owned by scope, in insertion order.
func (b *ExprBuffer) AppendToScope(scope StmtExprToken, child StmtExprToken) {
	if !b.Stmt(scope).IsScope() {
		panic("expr: AppendToScope requires a scope")
	}
	s := &b.stmt[scope.Index()]
	s.ScopeChildren = append(s.ScopeChildren, child)
}

// AddCondition requires cond's type to be bool.
func (b *ExprBuffer) AddCondition(r lexer.TokenRange, cond ProdExprToken, then StmtExprToken, els handle.Opt[StmtExpr]) StmtExprToken {
	if !b.TypeOfProd(cond).IsBuiltinAnd(types.IsBool) {
		panic("expr: AddCondition requires a bool condition")
	}
	return b.addStmt(StmtExpr{
		Kind: StmtCondition, Range: r, Type: b.types.VoidType(),
		CondExpr: cond, ThenStmt: then, ElseStmt: els,
	})
}

func (b *ExprBuffer) AddGlobalDecl(r lexer.TokenRange, declType handle.Handle[types.TypeVariant], name string, init ProdExprToken, isMut bool) StmtExprToken {
	return b.addStmt(StmtExpr{
		Kind: StmtGlobalDecl, Range: r, Type: declType,
		DeclName: name, DeclType: declType, DeclInit: handle.Some(init), IsMut: isMut,
	})
}

func (b *ExprBuffer) AddVarDecl(r lexer.TokenRange, declType handle.Handle[types.TypeVariant], localID uint32, name string, init handle.Opt[ProdExpr], isMut bool) StmtExprToken {
	return b.addStmt(StmtExpr{
		Kind: StmtVarDecl, Range: r, Type: declType,
		DeclName: name, DeclType: declType, DeclInit: init, IsMut: isMut, LocalID: localID,
	})
}

// DebugString renders tok for debugging, e.g. "prod#3(binary)".
func DebugString(b *ExprBuffer, tok ProdExprToken) string {
	return fmt.Sprintf("prod#%d(%s)", tok.Index(), b.Prod(tok).Kind)
}
