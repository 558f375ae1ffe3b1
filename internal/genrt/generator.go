package genrt

// Generator is the suspend/resume/terminate protocol every activation
// implements, whether natively lowered or interpreted. Call sites stay
// agnostic to which path produced the instance.
//
// A single driver owns an instance; Advance and Close must not be
// invoked concurrently on the same instance.
type Generator interface {
	// Advance runs one leg of the computation. It returns the produced
	// value with ok=true at a suspension point, or ok=false once the
	// computation is exhausted. Advancing an exhausted instance keeps
	// returning ok=false with no side effects. A non-nil error means
	// the body faulted; the instance has already unwound its ownership
	// and is terminal.
	Advance() (v Value, ok bool, err error)

	// Close terminates the instance without running any further body
	// code, releasing every buffer handle it still owns. Idempotent.
	Close() error

	// Done reports exhaustion without side effects.
	Done() bool
}

// Drain advances g until exhaustion and returns the produced sequence.
func Drain(g Generator) ([]Value, error) {
	var out []Value
	for {
		v, ok, err := g.Advance()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
