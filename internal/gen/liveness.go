package gen

import "weft/internal/cfg"

// blockLiveness holds use/def/in/out sets for liveness analysis.
type blockLiveness struct {
	use varSet
	def varSet
	in  varSet
	out varSet
}

// computeLiveness computes liveness information for all blocks in a
// function with a standard backward fixed-point iteration. Running to a
// fixed point carries uses across loop back-edges, so a variable read
// in a later iteration is live at every suspension point inside the
// loop.
func computeLiveness(f *cfg.Func) []blockLiveness {
	if f == nil {
		return nil
	}
	info := make([]blockLiveness, len(f.Blocks))
	for i := range f.Blocks {
		use, def := computeBlockUseDef(&f.Blocks[i])
		info[i].use = use
		info[i].def = def
	}

	changed := true
	for changed {
		changed = false
		for i := len(f.Blocks) - 1; i >= 0; i-- {
			out := varSet{}
			for _, succ := range cfg.FoldedSuccs(&f.Blocks[i].Term, nil) {
				out = unionSet(out, info[succ].in)
			}
			in := unionSet(cloneSet(info[i].use), subtractSet(out, info[i].def))

			if !setEqual(out, info[i].out) || !setEqual(in, info[i].in) {
				info[i].out = out
				info[i].in = in
				changed = true
			}
		}
	}
	return info
}

func computeBlockUseDef(bb *cfg.Block) (use, def varSet) {
	use = varSet{}
	def = varSet{}
	if bb == nil {
		return use, def
	}
	addUse := func(id cfg.VarID) {
		if id == cfg.NoVarID {
			return
		}
		if def.has(id) {
			return
		}
		use.add(id)
	}

	for i := range bb.Instrs {
		ins := &bb.Instrs[i]
		addUsesFromExpr(&ins.Src, addUse)
		def.add(ins.Dst)
	}

	switch bb.Term.Kind {
	case cfg.TermIf:
		addUsesFromExpr(&bb.Term.If.Cond, addUse)
	case cfg.TermYield:
		addUsesFromExpr(&bb.Term.Yield.Value, addUse)
	}

	return use, def
}

func addUsesFromExpr(e *cfg.Expr, addUse func(cfg.VarID)) {
	if e == nil {
		return
	}
	switch e.Kind {
	case cfg.ExprVar:
		addUse(e.Var)
	case cfg.ExprNeg:
		addUsesFromExpr(e.Left, addUse)
	case cfg.ExprBinary:
		addUsesFromExpr(e.Left, addUse)
		addUsesFromExpr(e.Right, addUse)
	case cfg.ExprIndex:
		addUse(e.Buf)
		addUsesFromExpr(e.Index, addUse)
	case cfg.ExprLen:
		addUse(e.Buf)
	}
}
