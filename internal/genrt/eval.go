package genrt

import (
	"fmt"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/types"
)

// EvalExpr evaluates an expression against a frame of runtime values,
// promoting operands dynamically along the numeric lattice. Both the
// lowered instance and the interpreted fallback run their legs through
// this evaluator; faults (division by zero, bad index) surface as
// ordinary errors for the caller to unwind on.
func EvalExpr(rt *bufrt.Runtime, frame []Value, e *cfg.Expr) (Value, error) {
	switch e.Kind {
	case cfg.ExprConst:
		return constValue(e.Const), nil

	case cfg.ExprVar:
		if e.Var < 0 || int(e.Var) >= len(frame) {
			return Value{}, fmt.Errorf("genrt: unknown variable v%d", e.Var)
		}
		v := frame[e.Var]
		if v.Kind == types.KindInvalid {
			return Value{}, fmt.Errorf("genrt: read of unassigned variable v%d", e.Var)
		}
		return v, nil

	case cfg.ExprNeg:
		v, err := EvalExpr(rt, frame, e.Left)
		if err != nil {
			return Value{}, err
		}
		return evalNeg(v)

	case cfg.ExprBinary:
		left, err := EvalExpr(rt, frame, e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := EvalExpr(rt, frame, e.Right)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(e.Op, left, right)

	case cfg.ExprIndex:
		elems, err := bufferVar(rt, frame, e.Buf)
		if err != nil {
			return Value{}, err
		}
		iv, err := EvalExpr(rt, frame, e.Index)
		if err != nil {
			return Value{}, err
		}
		idx, ok := iv.AsInt()
		if !ok {
			return Value{}, fmt.Errorf("genrt: non-integral index %s", iv)
		}
		if idx < 0 || idx >= int64(len(elems)) {
			return Value{}, fmt.Errorf("genrt: index %d out of range [0, %d)", idx, len(elems))
		}
		return elems[idx], nil

	case cfg.ExprLen:
		elems, err := bufferVar(rt, frame, e.Buf)
		if err != nil {
			return Value{}, err
		}
		return IntValue(int64(len(elems))), nil

	default:
		return Value{}, fmt.Errorf("genrt: unsupported expression kind %d", e.Kind)
	}
}

func bufferVar(rt *bufrt.Runtime, frame []Value, id cfg.VarID) ([]Value, error) {
	if id < 0 || int(id) >= len(frame) {
		return nil, fmt.Errorf("genrt: unknown variable v%d", id)
	}
	v := frame[id]
	if !v.IsBuffer() {
		return nil, fmt.Errorf("genrt: variable v%d does not hold a buffer", id)
	}
	return BufferElems(rt, v.Buf)
}

func constValue(c cfg.Const) Value {
	switch c.Kind {
	case types.KindBool:
		return BoolValue(c.Bool)
	case types.KindInt:
		return IntValue(c.Int)
	case types.KindUint:
		return UintValue(c.Uint)
	case types.KindFloat:
		return FloatValue(c.Float)
	case types.KindComplex:
		return ComplexValue(c.Complex)
	default:
		return Value{}
	}
}

func rank(k types.Kind) int {
	switch k {
	case types.KindInt, types.KindUint:
		return 1
	case types.KindFloat:
		return 2
	case types.KindComplex:
		return 3
	default:
		return 0
	}
}

func evalNeg(v Value) (Value, error) {
	switch v.Kind {
	case types.KindInt:
		return IntValue(-v.Int), nil
	case types.KindUint:
		return UintValue(-v.Uint), nil
	case types.KindFloat:
		return FloatValue(-v.Float), nil
	case types.KindComplex:
		return ComplexValue(-v.Complex), nil
	default:
		return Value{}, fmt.Errorf("genrt: cannot negate %s value", v.Kind)
	}
}

func evalBinary(op cfg.BinOp, left, right Value) (Value, error) {
	lr, rr := rank(left.Kind), rank(right.Kind)
	if lr == 0 || rr == 0 {
		return Value{}, fmt.Errorf("genrt: operator %q on non-numeric operands %s, %s", op, left, right)
	}
	r := lr
	if rr > r {
		r = rr
	}
	switch r {
	case 3:
		lc, _ := left.AsComplex()
		rc, _ := right.AsComplex()
		return complexBinary(op, lc, rc)
	case 2:
		lf, _ := left.AsFloat()
		rf, _ := right.AsFloat()
		return floatBinary(op, lf, rf)
	default:
		if left.Kind == types.KindUint && right.Kind == types.KindUint {
			return uintBinary(op, left.Uint, right.Uint)
		}
		li, _ := left.AsInt()
		ri, _ := right.AsInt()
		return intBinary(op, li, ri)
	}
}

func intBinary(op cfg.BinOp, a, b int64) (Value, error) {
	switch op {
	case cfg.OpAdd:
		return IntValue(a + b), nil
	case cfg.OpSub:
		return IntValue(a - b), nil
	case cfg.OpMul:
		return IntValue(a * b), nil
	case cfg.OpDiv:
		if b == 0 {
			return Value{}, fmt.Errorf("genrt: integer division by zero")
		}
		return IntValue(a / b), nil
	case cfg.OpLt:
		return BoolValue(a < b), nil
	case cfg.OpLe:
		return BoolValue(a <= b), nil
	case cfg.OpGt:
		return BoolValue(a > b), nil
	case cfg.OpGe:
		return BoolValue(a >= b), nil
	case cfg.OpEq:
		return BoolValue(a == b), nil
	case cfg.OpNe:
		return BoolValue(a != b), nil
	}
	return Value{}, fmt.Errorf("genrt: unknown operator %q", op)
}

func uintBinary(op cfg.BinOp, a, b uint64) (Value, error) {
	switch op {
	case cfg.OpAdd:
		return UintValue(a + b), nil
	case cfg.OpSub:
		return UintValue(a - b), nil
	case cfg.OpMul:
		return UintValue(a * b), nil
	case cfg.OpDiv:
		if b == 0 {
			return Value{}, fmt.Errorf("genrt: integer division by zero")
		}
		return UintValue(a / b), nil
	case cfg.OpLt:
		return BoolValue(a < b), nil
	case cfg.OpLe:
		return BoolValue(a <= b), nil
	case cfg.OpGt:
		return BoolValue(a > b), nil
	case cfg.OpGe:
		return BoolValue(a >= b), nil
	case cfg.OpEq:
		return BoolValue(a == b), nil
	case cfg.OpNe:
		return BoolValue(a != b), nil
	}
	return Value{}, fmt.Errorf("genrt: unknown operator %q", op)
}

func floatBinary(op cfg.BinOp, a, b float64) (Value, error) {
	switch op {
	case cfg.OpAdd:
		return FloatValue(a + b), nil
	case cfg.OpSub:
		return FloatValue(a - b), nil
	case cfg.OpMul:
		return FloatValue(a * b), nil
	case cfg.OpDiv:
		return FloatValue(a / b), nil
	case cfg.OpLt:
		return BoolValue(a < b), nil
	case cfg.OpLe:
		return BoolValue(a <= b), nil
	case cfg.OpGt:
		return BoolValue(a > b), nil
	case cfg.OpGe:
		return BoolValue(a >= b), nil
	case cfg.OpEq:
		return BoolValue(a == b), nil
	case cfg.OpNe:
		return BoolValue(a != b), nil
	}
	return Value{}, fmt.Errorf("genrt: unknown operator %q", op)
}

func complexBinary(op cfg.BinOp, a, b complex128) (Value, error) {
	switch op {
	case cfg.OpAdd:
		return ComplexValue(a + b), nil
	case cfg.OpSub:
		return ComplexValue(a - b), nil
	case cfg.OpMul:
		return ComplexValue(a * b), nil
	case cfg.OpDiv:
		return ComplexValue(a / b), nil
	case cfg.OpEq:
		return BoolValue(a == b), nil
	case cfg.OpNe:
		return BoolValue(a != b), nil
	case cfg.OpLt, cfg.OpLe, cfg.OpGt, cfg.OpGe:
		return Value{}, fmt.Errorf("genrt: complex values are not ordered")
	}
	return Value{}, fmt.Errorf("genrt: unknown operator %q", op)
}
