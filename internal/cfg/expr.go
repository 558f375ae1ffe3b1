package cfg

import "weft/internal/types"

type ExprKind uint8

const (
	ExprConst ExprKind = iota
	ExprVar
	ExprNeg
	ExprBinary
	ExprIndex
	ExprLen
)

type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	default:
		return "?"
	}
}

// IsCompare reports whether the operator produces a bool.
func (op BinOp) IsCompare() bool {
	return op >= OpLt
}

// Const is a self-contained literal; the kind/width pair maps onto an
// interned type during analysis.
type Const struct {
	Kind    types.Kind
	Width   types.Width
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Complex complex128
}

// Expr is a small expression tree. Buffer-valued expressions are
// restricted to direct variable references; element reads and length
// queries name the buffer variable directly.
type Expr struct {
	Kind ExprKind

	Const Const
	Var   VarID

	Op    BinOp
	Left  *Expr // operand of ExprNeg, left operand of ExprBinary
	Right *Expr

	Buf   VarID // for ExprIndex / ExprLen
	Index *Expr // for ExprIndex
}

func ConstBool(v bool) Expr {
	return Expr{Kind: ExprConst, Const: Const{Kind: types.KindBool, Bool: v}}
}

func ConstInt(w types.Width, v int64) Expr {
	return Expr{Kind: ExprConst, Const: Const{Kind: types.KindInt, Width: w, Int: v}}
}

func ConstFloat(w types.Width, v float64) Expr {
	return Expr{Kind: ExprConst, Const: Const{Kind: types.KindFloat, Width: w, Float: v}}
}

func ConstComplex(w types.Width, v complex128) Expr {
	return Expr{Kind: ExprConst, Const: Const{Kind: types.KindComplex, Width: w, Complex: v}}
}

func Var(id VarID) Expr {
	return Expr{Kind: ExprVar, Var: id}
}

func Neg(operand Expr) Expr {
	return Expr{Kind: ExprNeg, Left: &operand}
}

func Bin(op BinOp, left, right Expr) Expr {
	return Expr{Kind: ExprBinary, Op: op, Left: &left, Right: &right}
}

func Index(buf VarID, index Expr) Expr {
	return Expr{Kind: ExprIndex, Buf: buf, Index: &index}
}

func Len(buf VarID) Expr {
	return Expr{Kind: ExprLen, Buf: buf}
}

// ConstBoolValue reports whether e is a boolean literal and its value.
func (e *Expr) ConstBoolValue() (value, ok bool) {
	if e.Kind == ExprConst && e.Const.Kind == types.KindBool {
		return e.Const.Bool, true
	}
	return false, false
}
