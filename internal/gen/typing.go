package gen

import (
	"fmt"

	"weft/internal/cfg"
	"weft/internal/types"
)

// exprType statically types an expression over the front end's declared
// local types and the numeric promotion lattice. Only the shapes a
// suspending body may contain are accepted; anything else is a
// front-end contract violation.
func exprType(f *cfg.Func, in *types.Interner, e *cfg.Expr) (types.TypeID, error) {
	switch e.Kind {
	case cfg.ExprConst:
		if e.Const.Kind == types.KindBool {
			return in.Builtins().Bool, nil
		}
		return in.Intern(types.Type{Kind: e.Const.Kind, Width: e.Const.Width}), nil

	case cfg.ExprVar:
		if e.Var < 0 || int(e.Var) >= len(f.Locals) {
			return types.NoTypeID, fmt.Errorf("unknown variable v%d", e.Var)
		}
		return f.Locals[e.Var].Type, nil

	case cfg.ExprNeg:
		t, err := exprType(f, in, e.Left)
		if err != nil {
			return types.NoTypeID, err
		}
		if tt, ok := in.Lookup(t); !ok || !tt.IsNumeric() {
			return types.NoTypeID, fmt.Errorf("cannot negate %s", in.String(t))
		}
		return t, nil

	case cfg.ExprBinary:
		lt, err := exprType(f, in, e.Left)
		if err != nil {
			return types.NoTypeID, err
		}
		rt, err := exprType(f, in, e.Right)
		if err != nil {
			return types.NoTypeID, err
		}
		res, ok := in.Promote(lt, rt)
		if !ok {
			return types.NoTypeID, fmt.Errorf("operands %s and %s of %q do not promote",
				in.String(lt), in.String(rt), e.Op)
		}
		if e.Op.IsCompare() {
			return in.Builtins().Bool, nil
		}
		return res, nil

	case cfg.ExprIndex:
		elem, err := bufferElem(f, in, e.Buf)
		if err != nil {
			return types.NoTypeID, err
		}
		it, err := exprType(f, in, e.Index)
		if err != nil {
			return types.NoTypeID, err
		}
		if t := in.MustLookup(it); t.Kind != types.KindInt && t.Kind != types.KindUint {
			return types.NoTypeID, fmt.Errorf("index type %s is not integral", in.String(it))
		}
		return elem, nil

	case cfg.ExprLen:
		if _, err := bufferElem(f, in, e.Buf); err != nil {
			return types.NoTypeID, err
		}
		return in.Builtins().Int64, nil

	default:
		return types.NoTypeID, fmt.Errorf("unsupported expression kind %d", e.Kind)
	}
}

func bufferElem(f *cfg.Func, in *types.Interner, id cfg.VarID) (types.TypeID, error) {
	if id < 0 || int(id) >= len(f.Locals) {
		return types.NoTypeID, fmt.Errorf("unknown variable v%d", id)
	}
	t, ok := in.Lookup(f.Locals[id].Type)
	if !ok || t.Kind != types.KindBuffer {
		return types.NoTypeID, fmt.Errorf("variable %q is not a buffer", f.Locals[id].Name)
	}
	return t.Elem, nil
}

// isBufferType reports whether id names a managed buffer type.
func isBufferType(in *types.Interner, id types.TypeID) bool {
	t, ok := in.Lookup(id)
	return ok && t.Kind == types.KindBuffer
}
