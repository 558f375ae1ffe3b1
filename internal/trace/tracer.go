// Package trace provides a lightweight event tracer shared by the
// compile pipeline and the buffer runtime. Tracing is best-effort:
// emit errors never disturb compilation or generator execution.
package trace

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

var seq atomic.Uint64

// NextSeq returns the next global event sequence number.
func NextSeq() uint64 {
	return seq.Add(1)
}

// Point emits an instant event when the tracer level admits the scope.
func Point(t Tracer, scope Scope, name, format string, args ...any) {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{
		Time:   time.Now(),
		Kind:   KindPoint,
		Scope:  scope,
		Name:   name,
		Detail: fmt.Sprintf(format, args...),
	})
}
