package gen

import (
	"weft/internal/cfg"
	"weft/internal/types"
)

// Machine is the lowered form of a suspending function: a finite set of
// states with an explicit resume-dispatch table and an ownership plan
// annotating every transition. One Machine is shared by every instance.
type Machine struct {
	Desc *Descriptor
	Fn   *cfg.Func

	// Resume maps a state tag to the block where execution continues:
	// state 0 resumes at the entry, state i at yield i's resume block.
	Resume []cfg.BlockID

	// StateOf maps a block id to the state tag its yield terminator
	// suspends into, or 0 for non-yield blocks.
	StateOf []int

	// YieldKind and ArgKinds are the runtime shapes of the unified
	// yield type and the argument types, so instances convert and
	// validate without consulting the interner.
	YieldKind types.Kind
	ArgKinds  []types.Kind

	Plan Plan
}

// Lower rewrites the analyzed function into its state-machine form.
// Analysis failures (no reachable yield, non-unifiable yield types)
// propagate as TypingError and no machine is produced.
func Lower(f *cfg.Func, in *types.Interner) (*Machine, error) {
	a, err := Analyze(f, in)
	if err != nil {
		return nil, err
	}
	return lowerAnalyzed(a, in), nil
}

func lowerAnalyzed(a *Analysis, in *types.Interner) *Machine {
	f := a.Fn
	desc := &Descriptor{
		Name:      f.Name,
		YieldType: a.YieldType,
		Vars:      a.Vars,
		NumYields: len(a.Sites),
	}
	for _, p := range f.Params() {
		desc.Args = append(desc.Args, p.Type)
	}

	m := &Machine{
		Desc:      desc,
		Fn:        f,
		Resume:    make([]cfg.BlockID, len(a.Sites)+1),
		StateOf:   make([]int, len(f.Blocks)),
		YieldKind: in.MustLookup(a.YieldType).Kind,
		Plan:      PlanOwnership(a, in),
	}
	for _, t := range desc.Args {
		m.ArgKinds = append(m.ArgKinds, in.MustLookup(t).Kind)
	}
	m.Resume[0] = f.Entry
	for _, site := range a.Sites {
		m.Resume[site.ID] = f.Blocks[site.Block].Term.Yield.Resume
		m.StateOf[site.Block] = site.ID
	}
	return m
}
