package interp

import (
	"testing"

	"weft/internal/bufrt"
	"weft/internal/gen"
	"weft/internal/genrt"
	"weft/internal/sample"
	"weft/internal/types"
)

func asComplexSeq(t *testing.T, vals []genrt.Value) []complex128 {
	t.Helper()
	out := make([]complex128, 0, len(vals))
	for _, v := range vals {
		c, ok := v.AsComplex()
		if !ok {
			t.Fatalf("non-numeric value %s", v)
		}
		out = append(out, c)
	}
	return out
}

// Interpreted execution must produce the same value sequence as the
// lowered machine, up to numeric widening.
func TestMatchesLoweredPath(t *testing.T) {
	cases := []struct {
		name string
		args []genrt.Value
	}{
		{"counter", []genrt.Value{genrt.IntValue(6)}},
		{"countdown", []genrt.Value{genrt.IntValue(4)}},
		{"nested", []genrt.Value{genrt.IntValue(2)}},
		{"polymorphic", []genrt.Value{genrt.IntValue(8)}},
		{"early_return", []genrt.Value{genrt.IntValue(5), genrt.IntValue(6), genrt.IntValue(7)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := types.NewInterner()
			f, err := sample.Build(tc.name, in)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			m, err := gen.Lower(f, in)
			if err != nil {
				t.Fatalf("Lower: %v", err)
			}
			rt := bufrt.New()

			native, err := genrt.NewInstance(m, rt, tc.args)
			if err != nil {
				t.Fatalf("NewInstance: %v", err)
			}
			nativeVals, err := genrt.Drain(native)
			if err != nil {
				t.Fatalf("Drain(native): %v", err)
			}

			interp, err := New(f, rt, tc.args)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			interpVals, err := genrt.Drain(interp)
			if err != nil {
				t.Fatalf("Drain(interp): %v", err)
			}

			ns := asComplexSeq(t, nativeVals)
			is := asComplexSeq(t, interpVals)
			if len(ns) != len(is) {
				t.Fatalf("native yielded %d values, interp %d", len(ns), len(is))
			}
			for i := range ns {
				if ns[i] != is[i] {
					t.Errorf("value %d: native %v, interp %v", i, ns[i], is[i])
				}
			}
		})
	}
}

func TestNoYieldRunsEmpty(t *testing.T) {
	in := types.NewInterner()
	rt := bufrt.New()
	inst, err := New(sample.NoYield(in), rt, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vals, err := genrt.Drain(inst)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if len(vals) != 0 {
		t.Errorf("yielded %v, want empty sequence", vals)
	}
	if !inst.Done() {
		t.Error("exhausted instance not done")
	}
	if _, ok, err := inst.Advance(); ok || err != nil {
		t.Errorf("Advance after exhaustion = ok=%t err=%v", ok, err)
	}
}

func TestDynamicYieldTypes(t *testing.T) {
	in := types.NewInterner()
	rt := bufrt.New()
	inst, err := New(sample.Polymorphic(in), rt, []genrt.Value{genrt.IntValue(8)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vals, err := genrt.Drain(inst)
	if err != nil {
		t.Fatalf("Drain: %v", err)
	}
	// No unified type here; each value keeps its dynamic kind.
	wantKinds := []types.Kind{types.KindInt, types.KindFloat, types.KindComplex}
	if len(vals) != len(wantKinds) {
		t.Fatalf("yielded %d values, want %d", len(vals), len(wantKinds))
	}
	for i, v := range vals {
		if v.Kind != wantKinds[i] {
			t.Errorf("value %d has kind %s, want %s", i, v.Kind, wantKinds[i])
		}
	}
}

func TestBufferOwnership(t *testing.T) {
	in := types.NewInterner()
	f := sample.BufferIter(in)
	rt := bufrt.New()
	h := genrt.NewFloatBuffer(rt, []float64{1, 2, 3})

	inst, err := New(f, rt, []genrt.Value{genrt.BufferValue(h)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := rt.RefCount(h); got != 2 {
		t.Fatalf("count after construction = %d, want 2", got)
	}
	if _, ok, err := inst.Advance(); !ok || err != nil {
		t.Fatalf("Advance: ok=%t err=%v", ok, err)
	}
	if err := inst.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got := rt.RefCount(h); got != 1 {
		t.Errorf("count after close = %d, want 1", got)
	}
	if err := inst.Close(); err != nil {
		t.Fatalf("repeated Close: %v", err)
	}
	if got := rt.RefCount(h); got != 1 {
		t.Errorf("count after repeated close = %d, want 1", got)
	}
	if err := rt.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if stats := rt.Stats(); stats.Live != 0 {
		t.Errorf("%d handles leaked", stats.Live)
	}
}

func TestZipMatchesLowered(t *testing.T) {
	in := types.NewInterner()
	f := sample.BufferZip(in)
	m, err := gen.Lower(f, in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	rt := bufrt.New()
	ha := genrt.NewFloatBuffer(rt, []float64{1, 2})
	hb := genrt.NewFloatBuffer(rt, []float64{10, 20})
	args := []genrt.Value{genrt.BufferValue(ha), genrt.BufferValue(hb)}

	native, err := genrt.NewInstance(m, rt, args)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	nativeVals, err := genrt.Drain(native)
	if err != nil {
		t.Fatalf("Drain(native): %v", err)
	}
	interp, err := New(f, rt, args)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	interpVals, err := genrt.Drain(interp)
	if err != nil {
		t.Fatalf("Drain(interp): %v", err)
	}

	ns := asComplexSeq(t, nativeVals)
	is := asComplexSeq(t, interpVals)
	if len(ns) != 4 || len(is) != 4 {
		t.Fatalf("native %v, interp %v, want 4 values each", ns, is)
	}
	for i := range ns {
		if ns[i] != is[i] {
			t.Errorf("value %d: native %v, interp %v", i, ns[i], is[i])
		}
	}
	for _, h := range []bufrt.Handle{ha, hb} {
		if got := rt.RefCount(h); got != 1 {
			t.Errorf("handle %d count = %d, want 1", h, got)
		}
	}
}
