// Package compile is the pipeline that turns front-end control-flow
// graphs into runnable generators: native lowering where typing admits
// it, interpreted fallback where it does not.
package compile

import (
	"fmt"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/diag"
	"weft/internal/gen"
	"weft/internal/genrt"
	"weft/internal/interp"
	"weft/internal/trace"
	"weft/internal/types"
)

// Options configures the pipeline.
type Options struct {
	// Fallback routes functions the unifier rejects to the interpreted
	// path instead of failing compilation.
	Fallback bool

	// Workers bounds parallel function compilation; 0 means GOMAXPROCS.
	Workers int

	// CacheDir enables the on-disk descriptor cache when non-empty.
	CacheDir string

	// Tracer receives pipeline events; nil disables tracing.
	Tracer trace.Tracer
}

func (o Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return trace.Nop
	}
	return o.Tracer
}

// Compiled is one compiled function: either a lowered machine or, when
// typing rejected native lowering and fallback is enabled, the raw
// graph to interpret. Instances from either path speak the same
// generator protocol.
type Compiled struct {
	Name    string
	Fn      *cfg.Func
	Machine *gen.Machine // nil on the interpreted path

	// TypingErr records why native lowering was rejected; set only on
	// the interpreted path.
	TypingErr *diag.TypingError
}

// Native reports whether the function lowered to a state machine.
func (c *Compiled) Native() bool {
	return c.Machine != nil
}

// New creates one activation. The caller drives it and owns its
// teardown: close it, or drain it to exhaustion.
func (c *Compiled) New(rt *bufrt.Runtime, args []genrt.Value) (genrt.Generator, error) {
	if c.Machine != nil {
		return genrt.NewInstance(c.Machine, rt, args)
	}
	return interp.New(c.Fn, rt, args)
}

// Compile lowers one function. A TypingError is terminal unless
// opts.Fallback is set, in which case the function compiles to the
// interpreted path and the rejection is recorded on the result.
// Rejection of one function never affects its siblings.
func Compile(fn *cfg.Func, in *types.Interner, opts Options) (*Compiled, error) {
	tr := opts.tracer()
	machine, err := gen.Lower(fn, in)
	if err != nil {
		var te *diag.TypingError
		if !diag.AsTypingError(err, &te) {
			return nil, fmt.Errorf("compile %s: %w", fn.Name, err)
		}
		if !opts.Fallback {
			return nil, err
		}
		trace.Point(tr, trace.ScopeFunc, "fallback", "%s: %v", fn.Name, te)
		return &Compiled{Name: fn.Name, Fn: fn, TypingErr: te}, nil
	}

	trace.Point(tr, trace.ScopeFunc, "lowered", "%s: %d states, %d state vars",
		fn.Name, machine.Desc.NumYields, len(machine.Desc.Vars))

	if opts.CacheDir != "" {
		cache, err := OpenDiskCache(opts.CacheDir)
		if err != nil {
			return nil, err
		}
		if err := cache.Store(cfg.Fingerprint(fn), machine.Desc, in); err != nil {
			return nil, err
		}
	}
	return &Compiled{Name: fn.Name, Fn: fn, Machine: machine}, nil
}
