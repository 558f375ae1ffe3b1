package gen

import (
	"fmt"
	"io"
	"strings"

	"weft/internal/cfg"
	"weft/internal/types"
)

// DumpMachine writes a human-readable representation of a lowered state
// machine.
func DumpMachine(w io.Writer, m *Machine, in *types.Interner) error {
	if w == nil || m == nil {
		return nil
	}
	d := m.Desc
	fmt.Fprintf(w, "generator %s:\n", d.Name)
	fmt.Fprintf(w, "  yield type: %s\n", in.String(d.YieldType))

	fmt.Fprintf(w, "  args:\n")
	for i, t := range d.Args {
		fmt.Fprintf(w, "    v%d %s: %s\n", i, m.Fn.Locals[i].Name, in.String(t))
	}

	fmt.Fprintf(w, "  state vars:\n")
	for _, sv := range d.Vars {
		buf := ""
		if sv.Buffer {
			buf = " managed"
		}
		fmt.Fprintf(w, "    slot %d = v%d %s: %s%s\n", sv.Slot, sv.Var, sv.Name, in.String(sv.Type), buf)
	}

	fmt.Fprintf(w, "  states: 0..%d, done=%d\n", d.NumYields, d.DoneState())
	for state, resume := range m.Resume {
		fmt.Fprintf(w, "    S%d resume bb%d owned=%s\n", state, resume, slotList(m.Plan.OwnedAt[state]))
	}

	fmt.Fprintf(w, "  blocks:\n")
	for i := range m.Fn.Blocks {
		dumpBlock(w, m, &m.Fn.Blocks[i])
	}
	return nil
}

func dumpBlock(w io.Writer, m *Machine, blk *cfg.Block) {
	fmt.Fprintf(w, "  bb%d:\n", blk.ID)
	for j := range blk.Instrs {
		managed := ""
		if m.Plan.ManagedStore[blk.ID][j] {
			managed = " ; release old, retain new"
		}
		fmt.Fprintf(w, "    v%d = %s%s\n", blk.Instrs[j].Dst, exprStr(m.Fn, &blk.Instrs[j].Src), managed)
	}
	switch blk.Term.Kind {
	case cfg.TermGoto:
		fmt.Fprintf(w, "    goto bb%d\n", blk.Term.Goto.Target)
	case cfg.TermIf:
		fmt.Fprintf(w, "    if %s -> bb%d else bb%d\n",
			exprStr(m.Fn, &blk.Term.If.Cond), blk.Term.If.Then, blk.Term.If.Else)
	case cfg.TermYield:
		fmt.Fprintf(w, "    yield %s -> S%d, resume bb%d\n",
			exprStr(m.Fn, &blk.Term.Yield.Value), m.StateOf[blk.ID], blk.Term.Yield.Resume)
	case cfg.TermReturn:
		fmt.Fprintf(w, "    return ; release %s, -> done\n", slotList(m.Plan.Teardown))
	case cfg.TermUnreachable:
		fmt.Fprintf(w, "    unreachable\n")
	}
}

func slotList(slots []int) string {
	if len(slots) == 0 {
		return "[]"
	}
	parts := make([]string, len(slots))
	for i, s := range slots {
		parts[i] = fmt.Sprintf("%d", s)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func exprStr(f *cfg.Func, e *cfg.Expr) string {
	switch e.Kind {
	case cfg.ExprConst:
		return constStr(e.Const)
	case cfg.ExprVar:
		return fmt.Sprintf("v%d", e.Var)
	case cfg.ExprNeg:
		return fmt.Sprintf("-%s", exprStr(f, e.Left))
	case cfg.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", exprStr(f, e.Left), e.Op, exprStr(f, e.Right))
	case cfg.ExprIndex:
		return fmt.Sprintf("v%d[%s]", e.Buf, exprStr(f, e.Index))
	case cfg.ExprLen:
		return fmt.Sprintf("len(v%d)", e.Buf)
	default:
		return "?"
	}
}

func constStr(c cfg.Const) string {
	switch c.Kind {
	case types.KindBool:
		return fmt.Sprintf("%t", c.Bool)
	case types.KindInt:
		return fmt.Sprintf("%d", c.Int)
	case types.KindUint:
		return fmt.Sprintf("%d", c.Uint)
	case types.KindFloat:
		return fmt.Sprintf("%g", c.Float)
	case types.KindComplex:
		return fmt.Sprintf("%v", c.Complex)
	default:
		return "?"
	}
}
