// Package interp is the reference interpreted execution path for
// suspendable functions. It drives the raw control-flow graph with
// dynamic values and run-time numeric promotion, presenting the same
// init/advance/close protocol as the lowered path, so call sites do not
// care which path produced an instance. Functions the unifier rejects
// for native lowering still run here; a function that never yields is
// simply exhausted immediately.
package interp

import (
	"errors"
	"fmt"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/genrt"
	"weft/internal/types"
)

// Instance is one interpreted activation. Unlike the lowered path there
// is no descriptor and no unified yield type: values come out in their
// dynamic types. Ownership obligations are identical: buffer arguments
// are acquired at construction and every exit path releases what the
// frame still holds.
type Instance struct {
	fn     *cfg.Func
	rt     *bufrt.Runtime
	frame  []genrt.Value
	resume cfg.BlockID
	done   bool
}

var _ genrt.Generator = (*Instance)(nil)

func New(fn *cfg.Func, rt *bufrt.Runtime, args []genrt.Value) (*Instance, error) {
	if len(args) != fn.NumParams {
		return nil, fmt.Errorf("interp: %s takes %d arguments, got %d", fn.Name, fn.NumParams, len(args))
	}
	inst := &Instance{
		fn:     fn,
		rt:     rt,
		frame:  make([]genrt.Value, len(fn.Locals)),
		resume: fn.Entry,
	}
	copy(inst.frame, args)
	for _, a := range args {
		if a.IsBuffer() {
			if err := rt.Retain(a.Buf); err != nil {
				return nil, err
			}
		}
	}
	return inst, nil
}

func (i *Instance) Done() bool {
	return i.done
}

func (i *Instance) Advance() (genrt.Value, bool, error) {
	if i.done {
		return genrt.Value{}, false, nil
	}
	cur := i.resume
	for {
		blk := &i.fn.Blocks[cur]
		for j := range blk.Instrs {
			ins := &blk.Instrs[j]
			v, err := genrt.EvalExpr(i.rt, i.frame, &ins.Src)
			if err != nil {
				return i.unwind(err)
			}
			if err := i.store(ins.Dst, v); err != nil {
				return i.unwind(err)
			}
		}

		switch blk.Term.Kind {
		case cfg.TermGoto:
			cur = blk.Term.Goto.Target

		case cfg.TermIf:
			cond, err := genrt.EvalExpr(i.rt, i.frame, &blk.Term.If.Cond)
			if err != nil {
				return i.unwind(err)
			}
			if cond.Kind != types.KindBool {
				return i.unwind(fmt.Errorf("interp: branch condition is %s, not bool", cond.Kind))
			}
			if cond.Bool {
				cur = blk.Term.If.Then
			} else {
				cur = blk.Term.If.Else
			}

		case cfg.TermYield:
			v, err := genrt.EvalExpr(i.rt, i.frame, &blk.Term.Yield.Value)
			if err != nil {
				return i.unwind(err)
			}
			i.resume = blk.Term.Yield.Resume
			return v, true, nil

		case cfg.TermReturn:
			err := i.teardown()
			return genrt.Value{}, false, err

		default:
			return i.unwind(fmt.Errorf("interp: executed unreachable block bb%d", cur))
		}
	}
}

// store rebinds a frame slot, keeping one owned reference per bound
// buffer: retain the incoming alias first, then release the old
// binding.
func (i *Instance) store(dst cfg.VarID, v genrt.Value) error {
	old := i.frame[dst]
	if v.IsBuffer() {
		if err := i.rt.Retain(v.Buf); err != nil {
			return err
		}
	}
	i.frame[dst] = v
	if old.IsBuffer() {
		return i.rt.Release(old.Buf)
	}
	return nil
}

func (i *Instance) Close() error {
	if i.done {
		return nil
	}
	return i.teardown()
}

func (i *Instance) unwind(cause error) (genrt.Value, bool, error) {
	if err := i.teardown(); err != nil {
		return genrt.Value{}, false, errors.Join(cause, err)
	}
	return genrt.Value{}, false, cause
}

func (i *Instance) teardown() error {
	var errs []error
	for slot := range i.frame {
		if !i.frame[slot].IsBuffer() {
			continue
		}
		h := i.frame[slot].Buf
		i.frame[slot] = genrt.Value{}
		if err := i.rt.Release(h); err != nil {
			errs = append(errs, err)
		}
	}
	i.done = true
	return errors.Join(errs...)
}
