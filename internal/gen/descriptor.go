// Package gen compiles suspendable functions into resumable state
// machines: yield-type unification, suspension-point liveness, buffer
// ownership planning and the lowering that ties them together.
package gen

import (
	"weft/internal/cfg"
	"weft/internal/types"
)

// StateVar is one variable that survives at least one suspension point.
// Each variable owns a single frame slot reused by every state that
// needs it.
type StateVar struct {
	Var    cfg.VarID
	Name   string
	Type   types.TypeID
	Slot   int  // index into the instance frame
	Buffer bool // managed-buffer type, subject to ownership planning
}

// Descriptor is the compiled-once metadata of a suspending function.
// Immutable after lowering; shared by every instance.
type Descriptor struct {
	Name      string
	YieldType types.TypeID   // unified result type of every suspension point
	Args      []types.TypeID // parameter types, in declaration order
	Vars      []StateVar     // ordered, deduplicated across all suspension points
	NumYields int            // live suspension states are 1..NumYields
}

// DoneState is the distinguished terminal state tag. State 0 means
// constructed but never advanced.
func (d *Descriptor) DoneState() int {
	return d.NumYields + 1
}
