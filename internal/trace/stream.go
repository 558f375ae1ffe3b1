package trace

import (
	"fmt"
	"io"
	"sync"
)

// StreamTracer writes events immediately to an io.Writer, one line per
// event.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

func NewStreamTracer(w io.Writer, level Level) *StreamTracer {
	return &StreamTracer{w: w, level: level}
}

func (t *StreamTracer) Emit(ev Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.Seq = NextSeq()

	t.mu.Lock()
	defer t.mu.Unlock()
	// Best-effort write; trace failures never fail the caller.
	_, _ = fmt.Fprintf(t.w, "%s seq=%d %s %s %s %s\n",
		ev.Time.Format("15:04:05.000000"), ev.Seq, ev.Kind, ev.Scope, ev.Name, ev.Detail)
}

func (t *StreamTracer) Level() Level {
	return t.level
}

func (t *StreamTracer) Enabled() bool {
	return t.level > LevelOff
}
