package trace

import (
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"", LevelOff},
		{"off", LevelOff},
		{"phase", LevelPhase},
		{"detail", LevelDetail},
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseLevel(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel accepted an invalid level")
	}
}

func TestLevelGating(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeHandle) {
		t.Error("phase level emitted handle-scope events")
	}
	if !LevelDetail.ShouldEmit(ScopeFunc) {
		t.Error("detail level dropped func-scope events")
	}
	if !LevelDebug.ShouldEmit(ScopeHandle) {
		t.Error("debug level dropped handle-scope events")
	}
	if LevelOff.ShouldEmit(ScopePipeline) {
		t.Error("off level emitted events")
	}
}

func TestStreamTracer(t *testing.T) {
	var sb strings.Builder
	tr := NewStreamTracer(&sb, LevelDetail)
	if !tr.Enabled() {
		t.Fatal("tracer at detail level reports disabled")
	}
	Point(tr, ScopeFunc, "lowered", "%s: %d states", "counter", 1)
	Point(tr, ScopeHandle, "retain", "handle=%d", 3)

	out := sb.String()
	if !strings.Contains(out, "lowered counter: 1 states") {
		t.Errorf("func-scope event missing from output:\n%s", out)
	}
	if strings.Contains(out, "retain") {
		t.Errorf("handle-scope event leaked at detail level:\n%s", out)
	}
}

func TestNopTracer(t *testing.T) {
	if Nop.Enabled() {
		t.Error("nop tracer reports enabled")
	}
	// Emitting through the nop tracer must be a no-op, not a panic.
	Point(Nop, ScopePipeline, "compile", "%d functions", 0)
}
