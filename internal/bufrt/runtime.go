// Package bufrt is the reference-counted buffer runtime shared by
// compiled generator instances and ordinary compiled code. It manages
// handle lifetimes only; buffer payloads are opaque to it.
package bufrt

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"weft/internal/trace"
)

// Handle refers to one reference-counted buffer. Handles are
// monotonically increasing and never reused within a runtime.
type Handle uint64

// NilHandle is the absent buffer. Retain and Release of NilHandle are
// no-ops, mirroring the null-tolerant decref of the reference runtime;
// generated release sequences rely on this for slots that were never
// bound on the executed path.
const NilHandle Handle = 0

var (
	ErrUnknownHandle = errors.New("bufrt: unknown handle")
	ErrDoubleRelease = errors.New("bufrt: release of finalized handle")
	ErrReleased      = errors.New("bufrt: use of finalized handle")
)

// Finalizer runs exactly once, synchronously, when a handle's count
// reaches zero.
type Finalizer func(data any)

type object struct {
	refs      atomic.Int64
	dead      atomic.Bool
	data      any
	finalizer Finalizer
}

// Runtime is the process-wide refcount facility. Counters are
// per-handle and atomic, so unrelated generator instances may be
// created and destroyed in any interleaving without shared locking
// beyond registry lookups.
type Runtime struct {
	mu     sync.RWMutex
	next   Handle
	objs   map[Handle]*object
	tracer trace.Tracer

	acquired  atomic.Uint64
	finalized atomic.Uint64
}

func New() *Runtime {
	return &Runtime{
		next:   1,
		objs:   make(map[Handle]*object, 16),
		tracer: trace.Nop,
	}
}

// SetTracer installs a tracer for refcount events. Pass nil to disable.
func (rt *Runtime) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	rt.tracer = t
}

// Acquire registers a buffer payload and returns a fresh handle with
// count 1. The caller owns that reference and must release it exactly
// once.
func (rt *Runtime) Acquire(data any, fin Finalizer) Handle {
	obj := &object{data: data, finalizer: fin}
	obj.refs.Store(1)

	rt.mu.Lock()
	h := rt.next
	rt.next++
	rt.objs[h] = obj
	rt.mu.Unlock()

	rt.acquired.Add(1)
	trace.Point(rt.tracer, trace.ScopeHandle, "acquire", "handle=%d refs=1", h)
	return h
}

func (rt *Runtime) lookup(h Handle) (*object, error) {
	rt.mu.RLock()
	obj := rt.objs[h]
	rt.mu.RUnlock()
	if obj == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return obj, nil
}

// Retain increments the count, recording a new owning alias.
func (rt *Runtime) Retain(h Handle) error {
	if h == NilHandle {
		return nil
	}
	obj, err := rt.lookup(h)
	if err != nil {
		return err
	}
	if obj.dead.Load() {
		return fmt.Errorf("%w: %d", ErrReleased, h)
	}
	refs := obj.refs.Add(1)
	trace.Point(rt.tracer, trace.ScopeHandle, "retain", "handle=%d refs=%d", h, refs)
	return nil
}

// Release decrements the count. When it reaches zero the finalizer runs
// exactly once, synchronously, before Release returns.
func (rt *Runtime) Release(h Handle) error {
	if h == NilHandle {
		return nil
	}
	obj, err := rt.lookup(h)
	if err != nil {
		return err
	}
	if obj.dead.Load() {
		return fmt.Errorf("%w: %d", ErrDoubleRelease, h)
	}
	refs := obj.refs.Add(-1)
	trace.Point(rt.tracer, trace.ScopeHandle, "release", "handle=%d refs=%d", h, refs)
	if refs > 0 {
		return nil
	}
	if refs < 0 {
		obj.dead.Store(true)
		return fmt.Errorf("%w: %d", ErrDoubleRelease, h)
	}
	// The dead flag flips before the finalizer runs so a reentrant
	// release of the same handle is reported, not double-finalized.
	obj.dead.Store(true)
	if obj.finalizer != nil {
		obj.finalizer(obj.data)
	}
	obj.data = nil
	rt.finalized.Add(1)
	trace.Point(rt.tracer, trace.ScopeHandle, "finalize", "handle=%d", h)
	return nil
}

// RefCount reports the current count for a handle; 0 for finalized or
// unknown handles. Test and tooling hook, not part of the execution
// contract.
func (rt *Runtime) RefCount(h Handle) int64 {
	obj, err := rt.lookup(h)
	if err != nil || obj.dead.Load() {
		return 0
	}
	return obj.refs.Load()
}

// Data returns the payload for a live handle.
func (rt *Runtime) Data(h Handle) (any, error) {
	if h == NilHandle {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	obj, err := rt.lookup(h)
	if err != nil {
		return nil, err
	}
	if obj.dead.Load() {
		return nil, fmt.Errorf("%w: %d", ErrReleased, h)
	}
	return obj.data, nil
}

// Stats is a snapshot of runtime-wide counters.
type Stats struct {
	Acquired  uint64 // handles ever acquired
	Finalized uint64 // handles finalized
	Live      uint64 // handles acquired and not yet finalized
}

func (rt *Runtime) Stats() Stats {
	acq := rt.acquired.Load()
	fin := rt.finalized.Load()
	return Stats{
		Acquired:  acq,
		Finalized: fin,
		Live:      acq - fin,
	}
}
