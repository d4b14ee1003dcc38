// Package expr implements Colt's expression arena: two append-only
// vectors of producer and statement expressions, each a closed sum
// addressed by handle rather than pointer, mirroring internal/types'
// TypeVariant/TypeBuffer split.
package expr

import (
	"github.com/colt-lang/coltgo/internal/handle"
	"github.com/colt-lang/coltgo/internal/lexer"
	"github.com/colt-lang/coltgo/internal/types"
)

// ProdExprToken addresses a value-producing expression in an ExprBuffer.
type ProdExprToken = handle.Handle[ProdExpr]

// StmtExprToken addresses a statement expression in an ExprBuffer.
type StmtExprToken = handle.Handle[StmtExpr]

// ProdExprKind discriminates ProdExpr.
type ProdExprKind uint8

const (
	ProdError ProdExprKind = iota
	ProdNOP
	ProdLiteral
	ProdUnary
	ProdBinary
	ProdCast
	ProdAddressOf
	ProdPtrLoad
	ProdVarRead
	ProdGlobalRead
	ProdVarWrite
	ProdGlobalWrite
	ProdPtrStore
	ProdMove
	ProdCopy
	ProdCMove
	ProdFnCall
)

func (k ProdExprKind) String() string {
	switch k {
	case ProdError:
		return "error"
	case ProdNOP:
		return "nop"
	case ProdLiteral:
		return "literal"
	case ProdUnary:
		return "unary"
	case ProdBinary:
		return "binary"
	case ProdCast:
		return "cast"
	case ProdAddressOf:
		return "address_of"
	case ProdPtrLoad:
		return "ptr_load"
	case ProdVarRead:
		return "var_read"
	case ProdGlobalRead:
		return "global_read"
	case ProdVarWrite:
		return "var_write"
	case ProdGlobalWrite:
		return "global_write"
	case ProdPtrStore:
		return "ptr_store"
	case ProdMove:
		return "move"
	case ProdCopy:
		return "copy"
	case ProdCMove:
		return "cmove"
	case ProdFnCall:
		return "fn_call"
	default:
		return "unknown"
	}
}

// ProdExpr is a value-producing expression: the closed sum of every
// node kind ExprBuffer can hand back a ProdExprToken for. Only the
// field(s) documented for the active Kind are meaningful.
type ProdExpr struct {
	Kind  ProdExprKind
	Range lexer.TokenRange
	Type  handle.Handle[types.TypeVariant]

	// Literal: the raw payload, interpreted per Type's BuiltinID.
	LiteralValue uint64

	// Unary: UnaryOp applied to UnaryOperand.
	UnaryOp      types.UnaryOp
	UnaryOperand ProdExprToken

	// Binary: LHS op RHS.
	BinaryLHS ProdExprToken
	BinaryOp  types.BinaryOp
	BinaryRHS ProdExprToken

	// Cast/BitCast: CastOperand reinterpreted/converted to Type.
	CastOperand ProdExprToken
	IsBitCast   bool

	// AddressOf: address of a var/global declaration.
	AddressOfDecl StmtExprToken

	// PtrLoad: load through PtrLoadOperand, a non-opaque pointer.
	PtrLoadOperand ProdExprToken

	// VarRead/GlobalRead: ReadDecl is the declaration read from.
	ReadDecl StmtExprToken

	// VarWrite/GlobalWrite/PtrStore: write WriteValue into WriteDecl (or,
	// for PtrStore, into the pointer produced by StoreDst).
	WriteDecl  StmtExprToken
	WriteValue ProdExprToken
	StoreDst   ProdExprToken

	// Move/Copy/CMove: transfer between two declarations.
	TransferFrom StmtExprToken
	TransferTo   StmtExprToken

	// FnCall: Callee is a KindFn TypeVariant; Args are evaluated
	// left-to-right before the call.
	Callee handle.Handle[types.TypeVariant]
	Args   []ProdExprToken
}

// StmtExprKind discriminates StmtExpr.
type StmtExprKind uint8

const (
	StmtError StmtExprKind = iota
	StmtScope
	StmtCondition
	StmtGlobalDecl
	StmtVarDecl
)

func (k StmtExprKind) String() string {
	switch k {
	case StmtError:
		return "error"
	case StmtScope:
		return "scope"
	case StmtCondition:
		return "condition"
	case StmtGlobalDecl:
		return "global_decl"
	case StmtVarDecl:
		return "var_decl"
	default:
		return "unknown"
	}
}

// StmtExpr is a statement expression: the closed sum of every node
// kind ExprBuffer can hand back a StmtExprToken for.
type StmtExpr struct {
	Kind  StmtExprKind
	Range lexer.TokenRange
	Type  handle.Handle[types.TypeVariant]

	// Scope: optional enclosing scope, plus the statements the scope
	// owns, in insertion order.
	ScopeParent   handle.Opt[StmtExpr]
	ScopeChildren []StmtExprToken

	// Condition: if CondExpr then ThenStmt else ElseStmt.
	CondExpr ProdExprToken
	ThenStmt StmtExprToken
	ElseStmt handle.Opt[StmtExpr]

	// GlobalDecl/VarDecl.
	DeclName string
	DeclType handle.Handle[types.TypeVariant]
	DeclInit handle.Opt[ProdExpr]
	IsMut    bool
	LocalID  uint32
}

func (s StmtExpr) IsVarDecl() bool    { return s.Kind == StmtVarDecl }
func (s StmtExpr) IsGlobalDecl() bool { return s.Kind == StmtGlobalDecl }
func (s StmtExpr) IsScope() bool      { return s.Kind == StmtScope }
