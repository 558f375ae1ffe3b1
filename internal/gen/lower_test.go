package gen

import (
	"strings"
	"testing"

	"weft/internal/cfg"
	"weft/internal/sample"
	"weft/internal/types"
)

func TestLowerCounterShape(t *testing.T) {
	in := types.NewInterner()
	f := sample.Counter(in)
	m, err := Lower(f, in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	d := m.Desc
	if d.NumYields != 1 {
		t.Fatalf("NumYields = %d, want 1", d.NumYields)
	}
	if d.DoneState() != 2 {
		t.Errorf("done state = %d, want 2", d.DoneState())
	}
	if m.Resume[0] != f.Entry {
		t.Errorf("state 0 resumes at bb%d, want entry bb%d", m.Resume[0], f.Entry)
	}
	// State 1 resumes at the yield's continuation block.
	var yieldBlock cfg.BlockID = cfg.NoBlockID
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == cfg.TermYield {
			yieldBlock = f.Blocks[i].ID
		}
	}
	if yieldBlock == cfg.NoBlockID {
		t.Fatal("counter has no yield block")
	}
	if m.Resume[1] != f.Blocks[yieldBlock].Term.Yield.Resume {
		t.Errorf("state 1 resumes at bb%d, want bb%d", m.Resume[1], f.Blocks[yieldBlock].Term.Yield.Resume)
	}
	if m.StateOf[yieldBlock] != 1 {
		t.Errorf("StateOf[yield block] = %d, want 1", m.StateOf[yieldBlock])
	}
	if m.YieldKind != types.KindInt {
		t.Errorf("yield kind = %v, want int", m.YieldKind)
	}
}

func TestLowerNestedStateCount(t *testing.T) {
	in := types.NewInterner()
	m, err := Lower(sample.Nested(in), in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	if m.Desc.NumYields != 2 {
		t.Errorf("NumYields = %d, want 2", m.Desc.NumYields)
	}
	if len(m.Resume) != 3 {
		t.Errorf("resume table has %d entries, want 3", len(m.Resume))
	}
}

func TestLowerBufferIterOwnership(t *testing.T) {
	in := types.NewInterner()
	m, err := Lower(sample.BufferIter(in), in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	p := m.Plan
	if len(p.ArgAcquire) != 1 || p.ArgAcquire[0] != 0 {
		t.Errorf("ArgAcquire = %v, want [0]", p.ArgAcquire)
	}
	if len(p.Teardown) != 1 || p.Teardown[0] != 0 {
		t.Errorf("Teardown = %v, want [0]", p.Teardown)
	}
	for bb, flags := range p.ManagedStore {
		for i, f := range flags {
			if f {
				t.Errorf("bb%d instr %d flagged as managed store; no assignment rebinds the buffer", bb, i)
			}
		}
	}
	if len(p.OwnedAt) != 2 {
		t.Fatalf("OwnedAt has %d states, want 2", len(p.OwnedAt))
	}
	if len(p.OwnedAt[1]) != 1 || p.OwnedAt[1][0] != 0 {
		t.Errorf("OwnedAt[1] = %v, want [0]", p.OwnedAt[1])
	}
}

func TestLowerManagedStoreRebind(t *testing.T) {
	in := types.NewInterner()
	f64 := in.Builtins().Float64
	bufT := in.Intern(types.MakeBuffer(f64))

	b := cfg.NewBuilder("rebind")
	a := b.Param("a", bufT)
	c := b.Param("b", bufT)
	cur := b.Local("cur", bufT)

	entry := b.Block()
	swap := b.Block()
	exit := b.Block()
	b.Assign(entry, cur, cfg.Var(a))
	b.Yield(entry, cfg.Index(cur, cfg.ConstInt(types.Width64, 0)), swap)
	b.Assign(swap, cur, cfg.Var(c))
	b.Yield(swap, cfg.Index(cur, cfg.ConstInt(types.Width64, 0)), exit)
	b.Return(exit)

	m, err := Lower(b.MustFinish(), in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	p := m.Plan
	if !p.ManagedStore[entry][0] || !p.ManagedStore[swap][0] {
		t.Errorf("stores into cur not flagged: %v", p.ManagedStore)
	}
	if len(p.Teardown) != 3 {
		t.Errorf("Teardown = %v, want all three buffer slots", p.Teardown)
	}
}

func TestDumpMachine(t *testing.T) {
	in := types.NewInterner()
	m, err := Lower(sample.BufferIter(in), in)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	var sb strings.Builder
	if err := DumpMachine(&sb, m, in); err != nil {
		t.Fatalf("DumpMachine: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		"generator buffer_iter:",
		"yield type: float64",
		"buffer[float64] managed",
		"states: 0..1, done=2",
		"yield v0[v1] -> S1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
