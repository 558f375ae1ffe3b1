// Package sample provides canonical suspendable-function graphs used by
// tests and by the weft CLI. Each constructor builds the control-flow
// graph a front end would hand to the generator core.
package sample

import (
	"fmt"
	"slices"

	"weft/internal/cfg"
	"weft/internal/types"
)

// Counter yields 0..x-1.
//
//	for i in 0..x { yield i }
func Counter(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("counter")
	x := b.Param("x", i64)
	i := b.Local("i", i64)

	entry := b.Block()
	head := b.Block()
	body := b.Block()
	step := b.Block()
	exit := b.Block()

	b.Assign(entry, i, cfg.ConstInt(types.Width64, 0))
	b.Goto(entry, head)
	b.If(head, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.Var(x)), body, exit)
	b.Yield(body, cfg.Var(i), step)
	b.Assign(step, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(step, head)
	b.Return(exit)
	return b.MustFinish()
}

// Nested interleaves an outer and an inner loop of yields.
//
//	for i in 0..x { yield i; for j in 1..3 { yield i+j } }
func Nested(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("nested")
	x := b.Param("x", i64)
	i := b.Local("i", i64)
	j := b.Local("j", i64)

	entry := b.Block()
	outerHead := b.Block()
	outerBody := b.Block()
	innerInit := b.Block()
	innerHead := b.Block()
	innerBody := b.Block()
	innerStep := b.Block()
	outerStep := b.Block()
	exit := b.Block()

	b.Assign(entry, i, cfg.ConstInt(types.Width64, 0))
	b.Goto(entry, outerHead)
	b.If(outerHead, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.Var(x)), outerBody, exit)
	b.Yield(outerBody, cfg.Var(i), innerInit)
	b.Assign(innerInit, j, cfg.ConstInt(types.Width64, 1))
	b.Goto(innerInit, innerHead)
	b.If(innerHead, cfg.Bin(cfg.OpLt, cfg.Var(j), cfg.ConstInt(types.Width64, 3)), innerBody, outerStep)
	b.Yield(innerBody, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.Var(j)), innerStep)
	b.Assign(innerStep, j, cfg.Bin(cfg.OpAdd, cfg.Var(j), cfg.ConstInt(types.Width64, 1)))
	b.Goto(innerStep, innerHead)
	b.Assign(outerStep, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(outerStep, outerHead)
	b.Return(exit)
	return b.MustFinish()
}

// Countdown yields x..1 by negating an ascending counter.
//
//	for i in -x..0 { yield -i }
func Countdown(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("countdown")
	x := b.Param("x", i64)
	i := b.Local("i", i64)

	entry := b.Block()
	head := b.Block()
	body := b.Block()
	step := b.Block()
	exit := b.Block()

	b.Assign(entry, i, cfg.Neg(cfg.Var(x)))
	b.Goto(entry, head)
	b.If(head, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.ConstInt(types.Width64, 0)), body, exit)
	b.Yield(body, cfg.Neg(cfg.Var(i)), step)
	b.Assign(step, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(step, head)
	b.Return(exit)
	return b.MustFinish()
}

// Polymorphic yields an int, a float and a complex; the unifier must
// settle on complex128.
//
//	yield x; yield x + 1.5; yield x + 1i
func Polymorphic(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("polymorphic")
	x := b.Param("x", i64)

	first := b.Block()
	second := b.Block()
	third := b.Block()
	exit := b.Block()

	b.Yield(first, cfg.Var(x), second)
	b.Yield(second, cfg.Bin(cfg.OpAdd, cfg.Var(x), cfg.ConstFloat(types.Width64, 1.5)), third)
	b.Yield(third, cfg.Bin(cfg.OpAdd, cfg.Var(x), cfg.ConstComplex(types.Width128, 1i)), exit)
	b.Return(exit)
	return b.MustFinish()
}

// EarlyReturn loops three times then returns; the yield after the
// return is unreachable and must not affect typing or state layout.
//
//	for i in 0..3 { yield z; yield y+z }
//	return
//	yield x
func EarlyReturn(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("early_return")
	x := b.Param("x", i64)
	y := b.Param("y", i64)
	z := b.Param("z", i64)
	i := b.Local("i", i64)

	entry := b.Block()
	head := b.Block()
	body := b.Block()
	second := b.Block()
	step := b.Block()
	exit := b.Block()
	dead := b.Block()

	b.Assign(entry, i, cfg.ConstInt(types.Width64, 0))
	b.Goto(entry, head)
	b.If(head, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.ConstInt(types.Width64, 3)), body, exit)
	b.Yield(body, cfg.Var(z), second)
	b.Yield(second, cfg.Bin(cfg.OpAdd, cfg.Var(y), cfg.Var(z)), step)
	b.Assign(step, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(step, head)
	b.Return(exit)
	b.Yield(dead, cfg.Var(x), exit)
	return b.MustFinish()
}

// NoYield contains one suspension point behind a statically-false
// branch. Native lowering rejects it; interpreted execution is an empty
// sequence.
//
//	if false { yield 1 }
func NoYield(in *types.Interner) *cfg.Func {
	b := cfg.NewBuilder("no_yield")

	entry := b.Block()
	guarded := b.Block()
	exit := b.Block()

	b.If(entry, cfg.ConstBool(false), guarded, exit)
	b.Yield(guarded, cfg.ConstInt(types.Width64, 1), exit)
	b.Return(exit)
	return b.MustFinish()
}

// Invariant loops forever yielding the same computed value; only close
// or abandonment terminates it.
//
//	x = a + 1
//	loop { y = b + 2; yield x + y }
func Invariant(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	b := cfg.NewBuilder("invariant")
	a := b.Param("a", i64)
	bb := b.Param("b", i64)
	x := b.Local("x", i64)
	y := b.Local("y", i64)

	entry := b.Block()
	loop := b.Block()

	b.Assign(entry, x, cfg.Bin(cfg.OpAdd, cfg.Var(a), cfg.ConstInt(types.Width64, 1)))
	b.Goto(entry, loop)
	b.Assign(loop, y, cfg.Bin(cfg.OpAdd, cfg.Var(bb), cfg.ConstInt(types.Width64, 2)))
	b.Yield(loop, cfg.Bin(cfg.OpAdd, cfg.Var(x), cfg.Var(y)), loop)
	return b.MustFinish()
}

// BufferIter yields every element of a float buffer; the buffer lives
// in the generator state and is subject to ownership tracking.
//
//	for i in 0..len(arr) { yield arr[i] }
func BufferIter(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	f64 := in.Builtins().Float64
	bufT := in.Intern(types.MakeBuffer(f64))

	b := cfg.NewBuilder("buffer_iter")
	arr := b.Param("arr", bufT)
	i := b.Local("i", i64)

	entry := b.Block()
	head := b.Block()
	body := b.Block()
	step := b.Block()
	exit := b.Block()

	b.Assign(entry, i, cfg.ConstInt(types.Width64, 0))
	b.Goto(entry, head)
	b.If(head, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.Len(arr)), body, exit)
	b.Yield(body, cfg.Index(arr, cfg.Var(i)), step)
	b.Assign(step, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(step, head)
	b.Return(exit)
	return b.MustFinish()
}

// BufferZip alternates elements of two buffers; two independently
// counted handles live in one generator state.
//
//	for i in 0..len(a) { yield a[i]; yield b[i] }
func BufferZip(in *types.Interner) *cfg.Func {
	i64 := in.Builtins().Int64
	f64 := in.Builtins().Float64
	bufT := in.Intern(types.MakeBuffer(f64))

	b := cfg.NewBuilder("buffer_zip")
	a1 := b.Param("a", bufT)
	a2 := b.Param("b", bufT)
	i := b.Local("i", i64)

	entry := b.Block()
	head := b.Block()
	first := b.Block()
	second := b.Block()
	step := b.Block()
	exit := b.Block()

	b.Assign(entry, i, cfg.ConstInt(types.Width64, 0))
	b.Goto(entry, head)
	b.If(head, cfg.Bin(cfg.OpLt, cfg.Var(i), cfg.Len(a1)), first, exit)
	b.Yield(first, cfg.Index(a1, cfg.Var(i)), second)
	b.Yield(second, cfg.Index(a2, cfg.Var(i)), step)
	b.Assign(step, i, cfg.Bin(cfg.OpAdd, cfg.Var(i), cfg.ConstInt(types.Width64, 1)))
	b.Goto(step, head)
	b.Return(exit)
	return b.MustFinish()
}

// Registry maps sample names to constructors, in a stable order.
var registry = map[string]func(*types.Interner) *cfg.Func{
	"counter":      Counter,
	"countdown":    Countdown,
	"nested":       Nested,
	"polymorphic":  Polymorphic,
	"early_return": EarlyReturn,
	"no_yield":     NoYield,
	"invariant":    Invariant,
	"buffer_iter":  BufferIter,
	"buffer_zip":   BufferZip,
}

// Names lists all sample names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build constructs the named sample.
func Build(name string, in *types.Interner) (*cfg.Func, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sample: unknown sample %q", name)
	}
	return ctor(in), nil
}
