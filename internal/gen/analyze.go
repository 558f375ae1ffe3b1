package gen

import (
	"weft/internal/cfg"
	"weft/internal/diag"
	"weft/internal/types"
)

// YieldSite is one reachable suspension point.
type YieldSite struct {
	ID    int         // state tag, 1..N in block order
	Block cfg.BlockID // block whose terminator is the yield
	Type  types.TypeID
	Live  []cfg.VarID // variables live across the suspension, sorted
}

// Analysis is the joint result of the suspension-point analyzer and the
// yield-type unifier. Computed once per function; immutable afterwards.
type Analysis struct {
	Fn        *cfg.Func
	YieldType types.TypeID
	Sites     []YieldSite
	Vars      []StateVar // ordered union of every site's live set
}

// maxYieldSites caps suspension points per function; the resume table
// and state tags stay in a compact range.
const maxYieldSites = 1<<16 - 1

// Analyze locates every reachable suspension point, unifies the yielded
// value types and computes the state-variable layout. A function with
// zero reachable suspension points, or with yield types that do not
// meet in the promotion lattice, is rejected with a TypingError: it
// cannot be lowered natively (callers may still run it interpreted).
// A malformed graph is a LoweringError, with no fallback.
func Analyze(f *cfg.Func, in *types.Interner) (*Analysis, error) {
	if err := checkGraph(f); err != nil {
		return nil, err
	}
	for i := 0; i < f.NumParams; i++ {
		t, ok := in.Lookup(f.Locals[i].Type)
		if !ok || (!t.IsNumeric() && t.Kind != types.KindBool && t.Kind != types.KindBuffer) {
			return nil, diag.NewTypingError(diag.Errorf(diag.TypBadArgument, f.Span,
				"cannot type generator %q: parameter %q has unsupported type",
				f.Name, f.Locals[i].Name))
		}
	}

	reach := cfg.Reachable(f)

	var sites []YieldSite
	yieldType := types.NoTypeID
	for i := range f.Blocks {
		blk := &f.Blocks[i]
		if blk.Term.Kind != cfg.TermYield || !reach[blk.ID] {
			continue
		}
		t, err := exprType(f, in, &blk.Term.Yield.Value)
		if err != nil {
			return nil, diag.NewTypingError(diag.Errorf(diag.TypBadOperand, f.Span,
				"cannot type generator %q: %v", f.Name, err))
		}
		if yieldType == types.NoTypeID {
			yieldType = t
		} else {
			unified, ok := in.Promote(yieldType, t)
			if !ok {
				return nil, diag.NewTypingError(diag.Errorf(diag.TypNoCommonYield, f.Span,
					"cannot unify yield types for generator %q: %s and %s",
					f.Name, in.String(yieldType), in.String(t)))
			}
			yieldType = unified
		}
		sites = append(sites, YieldSite{ID: len(sites) + 1, Block: blk.ID, Type: t})
	}

	if len(sites) == 0 {
		return nil, diag.NewTypingError(diag.Errorf(diag.TypNoYieldValue, f.Span,
			"cannot type generator %q: it does not yield any value", f.Name))
	}
	if len(sites) > maxYieldSites {
		return nil, diag.NewLoweringError(diag.Errorf(diag.LowTooManyYield, f.Span,
			"generator %q has %d suspension points, limit is %d", f.Name, len(sites), maxYieldSites))
	}

	live := computeLiveness(f)
	all := varSet{}
	for i := range sites {
		// What must survive the suspension is exactly what is live on
		// entry to the resume block, i.e. the yield block's out set.
		s := live[sites[i].Block].out
		sites[i].Live = s.sorted()
		all = unionSet(all, s)
	}

	vars := make([]StateVar, 0, len(all))
	for _, id := range all.sorted() {
		loc := &f.Locals[id]
		vars = append(vars, StateVar{
			Var:    id,
			Name:   loc.Name,
			Type:   loc.Type,
			Slot:   int(id),
			Buffer: isBufferType(in, loc.Type),
		})
	}

	return &Analysis{
		Fn:        f,
		YieldType: yieldType,
		Sites:     sites,
		Vars:      vars,
	}, nil
}

// checkGraph verifies the structural preconditions of analysis: a valid
// entry, terminated blocks and in-range branch targets. Graphs from the
// builder satisfy them; graphs deserialized or built by hand may not.
func checkGraph(f *cfg.Func) error {
	if f.Entry < 0 || int(f.Entry) >= len(f.Blocks) {
		return diag.NewLoweringError(diag.Errorf(diag.LowMalformedCFG, f.Span,
			"generator %q has no valid entry block", f.Name))
	}
	for i := range f.Blocks {
		blk := &f.Blocks[i]
		if blk.Term.Kind == cfg.TermNone {
			return diag.NewLoweringError(diag.Errorf(diag.LowMalformedCFG, f.Span,
				"generator %q: block bb%d is unterminated", f.Name, blk.ID))
		}
		for _, succ := range blk.Term.Succs(nil) {
			if succ < 0 || int(succ) >= len(f.Blocks) {
				return diag.NewLoweringError(diag.Errorf(diag.LowMalformedCFG, f.Span,
					"generator %q: block bb%d targets unknown block bb%d", f.Name, blk.ID, succ))
			}
		}
	}
	return nil
}
