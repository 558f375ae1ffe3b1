package genrt

import (
	"errors"
	"fmt"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/gen"
	"weft/internal/types"
)

// Instance is one running activation of a lowered state machine: the
// state tag plus a flat frame holding arguments and state variables.
// Suspension and resumption are ordinary calls; the machine's resume
// table dispatches the tag to the block where execution continues.
type Instance struct {
	m     *gen.Machine
	rt    *bufrt.Runtime
	state int
	frame []Value
}

var _ Generator = (*Instance)(nil)

// NewInstance allocates an instance, stores the argument values and
// acquires ownership of buffer-typed arguments. No body code runs; the
// instance starts in state 0.
func NewInstance(m *gen.Machine, rt *bufrt.Runtime, args []Value) (*Instance, error) {
	if len(args) != m.Fn.NumParams {
		return nil, fmt.Errorf("genrt: %s takes %d arguments, got %d", m.Desc.Name, m.Fn.NumParams, len(args))
	}
	for i, a := range args {
		want := m.ArgKinds[i]
		if want == types.KindBuffer != a.IsBuffer() {
			return nil, fmt.Errorf("genrt: argument %d of %s: have %s, want %s",
				i, m.Desc.Name, a.Kind, want)
		}
	}

	inst := &Instance{
		m:     m,
		rt:    rt,
		frame: make([]Value, len(m.Fn.Locals)),
	}
	copy(inst.frame, args)
	for _, slot := range m.Plan.ArgAcquire {
		if err := rt.Retain(inst.frame[slot].Buf); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// Desc exposes the shared compile-time metadata.
func (i *Instance) Desc() *gen.Descriptor {
	return i.m.Desc
}

// State returns the current state tag. 0 = constructed, 1..N = live
// suspension points, Desc().DoneState() = exhausted.
func (i *Instance) State() int {
	return i.state
}

func (i *Instance) Done() bool {
	return i.state == i.m.Desc.DoneState()
}

// Advance dispatches on the state tag and executes forward until the
// next suspension point or the end of the body.
func (i *Instance) Advance() (Value, bool, error) {
	if i.Done() {
		return Value{}, false, nil
	}
	cur := i.m.Resume[i.state]
	for {
		blk := &i.m.Fn.Blocks[cur]
		for j := range blk.Instrs {
			ins := &blk.Instrs[j]
			v, err := EvalExpr(i.rt, i.frame, &ins.Src)
			if err != nil {
				return i.unwind(err)
			}
			// Managed store: the new alias is retained before the old
			// binding is released, so rebinding a slot to the handle it
			// already holds cannot finalize it in between.
			if i.m.Plan.ManagedStore[cur][j] {
				if err := i.rt.Retain(v.Buf); err != nil {
					return i.unwind(err)
				}
				if err := i.rt.Release(i.frame[ins.Dst].Buf); err != nil {
					return i.unwind(err)
				}
			}
			i.frame[ins.Dst] = v
		}

		switch blk.Term.Kind {
		case cfg.TermGoto:
			cur = blk.Term.Goto.Target

		case cfg.TermIf:
			cond, err := EvalExpr(i.rt, i.frame, &blk.Term.If.Cond)
			if err != nil {
				return i.unwind(err)
			}
			if cond.Kind != types.KindBool {
				return i.unwind(fmt.Errorf("genrt: branch condition is %s, not bool", cond.Kind))
			}
			if cond.Bool {
				cur = blk.Term.If.Then
			} else {
				cur = blk.Term.If.Else
			}

		case cfg.TermYield:
			v, err := EvalExpr(i.rt, i.frame, &blk.Term.Yield.Value)
			if err != nil {
				return i.unwind(err)
			}
			out, err := v.Convert(i.m.YieldKind)
			if err != nil {
				return i.unwind(err)
			}
			i.state = i.m.StateOf[cur]
			return out, true, nil

		case cfg.TermReturn:
			err := i.teardown()
			return Value{}, false, err

		default:
			return i.unwind(fmt.Errorf("genrt: executed unreachable block bb%d", cur))
		}
	}
}

// Close releases every buffer handle the instance still owns and moves
// it to the terminal state without running further body code. Closing
// an exhausted or already-closed instance is a no-op.
func (i *Instance) Close() error {
	if i.Done() {
		return nil
	}
	return i.teardown()
}

// unwind is the error exit: same release obligations as Close, then the
// fault propagates.
func (i *Instance) unwind(cause error) (Value, bool, error) {
	if err := i.teardown(); err != nil {
		return Value{}, false, errors.Join(cause, err)
	}
	return Value{}, false, cause
}

// teardown releases the managed frame slots and enters the terminal
// state. Slots are cleared as they are released, so no path through the
// instance's lifetime can release a binding twice.
func (i *Instance) teardown() error {
	var errs []error
	for _, slot := range i.m.Plan.Teardown {
		h := i.frame[slot].Buf
		i.frame[slot] = Value{}
		if err := i.rt.Release(h); err != nil {
			errs = append(errs, err)
		}
	}
	i.state = i.m.Desc.DoneState()
	return errors.Join(errs...)
}
