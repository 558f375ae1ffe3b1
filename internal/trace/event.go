package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event. Lower numeric
// values represent coarser events.
type Scope uint8

const (
	// ScopePipeline covers whole compile-pipeline phases.
	ScopePipeline Scope = iota + 1
	// ScopeFunc covers per-function compilation and instance lifecycle.
	ScopeFunc
	// ScopeHandle covers individual buffer-handle refcount operations.
	ScopeHandle
)

func (s Scope) String() string {
	switch s {
	case ScopePipeline:
		return "pipeline"
	case ScopeFunc:
		return "func"
	case ScopeHandle:
		return "handle"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time   time.Time // wall-clock timestamp
	Seq    uint64    // global sequence number (monotonic)
	Kind   Kind      // event kind
	Scope  Scope     // granularity level
	Name   string    // e.g. "compile", "advance", "handle:3"
	Detail string    // optional detail message
}
