package gen

import (
	"slices"

	"weft/internal/cfg"
	"weft/internal/types"
)

// Plan carries the retain/release obligations the lowered machine must
// issue against the buffer runtime. All slot sets are computed
// statically; the runtime executes them without inspecting values,
// relying on the nil-handle no-op release for slots never bound on the
// executed path.
//
// The counting discipline is one reference per bound frame slot: init
// retains each buffer argument it stores, a managed store releases the
// slot's previous binding and retains the new one, and every exit path
// (natural exhaustion, explicit close, error unwind, abandonment)
// releases whatever the managed slots still hold. Each instance's
// handles are disjoint and independently counted, so tearing one
// instance down can never touch bookkeeping owned by another.
type Plan struct {
	// ArgAcquire lists frame slots holding buffer-typed arguments;
	// init retains them when it stores the argument values.
	ArgAcquire []int

	// ManagedStore flags, per block and instruction, assignments that
	// rebind a managed slot: release the old binding, retain the new.
	ManagedStore [][]bool

	// Teardown lists every managed frame slot. Exit paths release them
	// all; slots not bound at the current state hold NilHandle.
	Teardown []int

	// OwnedAt maps each state tag (0..NumYields) to the managed slots
	// statically proven live there. Introspection and machine dumps;
	// execution uses Teardown.
	OwnedAt [][]int
}

// PlanOwnership derives the ownership plan from the analysis result.
func PlanOwnership(a *Analysis, in *types.Interner) Plan {
	f := a.Fn

	var plan Plan
	managed := make([]bool, len(f.Locals))
	for id := range f.Locals {
		if isBufferType(in, f.Locals[id].Type) {
			managed[id] = true
			plan.Teardown = append(plan.Teardown, id)
		}
	}

	for id := 0; id < f.NumParams; id++ {
		if managed[id] {
			plan.ArgAcquire = append(plan.ArgAcquire, id)
		}
	}

	plan.ManagedStore = make([][]bool, len(f.Blocks))
	for i := range f.Blocks {
		blk := &f.Blocks[i]
		flags := make([]bool, len(blk.Instrs))
		for j := range blk.Instrs {
			dst := blk.Instrs[j].Dst
			flags[j] = dst != cfg.NoVarID && managed[dst]
		}
		plan.ManagedStore[i] = flags
	}

	plan.OwnedAt = make([][]int, len(a.Sites)+1)
	plan.OwnedAt[0] = slices.Clone(plan.ArgAcquire)
	for _, site := range a.Sites {
		owned := slices.Clone(plan.ArgAcquire)
		for _, id := range site.Live {
			if managed[id] && !slices.Contains(owned, int(id)) {
				owned = append(owned, int(id))
			}
		}
		slices.Sort(owned)
		plan.OwnedAt[site.ID] = owned
	}
	return plan
}
