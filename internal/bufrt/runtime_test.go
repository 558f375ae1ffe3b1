package bufrt

import (
	"errors"
	"testing"
)

func TestAcquireRetainRelease(t *testing.T) {
	rt := New()
	finalized := 0
	h := rt.Acquire("payload", func(data any) {
		finalized++
		if data != "payload" {
			t.Errorf("finalizer got %v", data)
		}
	})
	if got := rt.RefCount(h); got != 1 {
		t.Fatalf("fresh handle count = %d, want 1", got)
	}
	if err := rt.Retain(h); err != nil {
		t.Fatalf("Retain: %v", err)
	}
	if got := rt.RefCount(h); got != 2 {
		t.Fatalf("count after retain = %d, want 2", got)
	}
	if err := rt.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if finalized != 0 {
		t.Fatal("finalizer ran while a reference remained")
	}
	if err := rt.Release(h); err != nil {
		t.Fatalf("final Release: %v", err)
	}
	if finalized != 1 {
		t.Fatalf("finalizer ran %d times, want exactly once", finalized)
	}
	if got := rt.RefCount(h); got != 0 {
		t.Errorf("finalized handle count = %d, want 0", got)
	}
}

func TestDoubleReleaseDetected(t *testing.T) {
	rt := New()
	h := rt.Acquire(nil, nil)
	if err := rt.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := rt.Release(h); !errors.Is(err, ErrDoubleRelease) {
		t.Fatalf("second Release = %v, want ErrDoubleRelease", err)
	}
}

func TestUseAfterFinalize(t *testing.T) {
	rt := New()
	h := rt.Acquire(42, nil)
	if err := rt.Release(h); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := rt.Retain(h); !errors.Is(err, ErrReleased) {
		t.Fatalf("Retain after finalize = %v, want ErrReleased", err)
	}
	if _, err := rt.Data(h); !errors.Is(err, ErrReleased) {
		t.Fatalf("Data after finalize = %v, want ErrReleased", err)
	}
}

func TestUnknownHandle(t *testing.T) {
	rt := New()
	if err := rt.Retain(Handle(99)); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Retain(unknown) = %v, want ErrUnknownHandle", err)
	}
	if err := rt.Release(Handle(99)); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Release(unknown) = %v, want ErrUnknownHandle", err)
	}
}

func TestNilHandleNoOps(t *testing.T) {
	rt := New()
	if err := rt.Retain(NilHandle); err != nil {
		t.Errorf("Retain(NilHandle) = %v", err)
	}
	if err := rt.Release(NilHandle); err != nil {
		t.Errorf("Release(NilHandle) = %v", err)
	}
	if got := rt.Stats(); got.Acquired != 0 || got.Finalized != 0 {
		t.Errorf("nil-handle traffic changed stats: %+v", got)
	}
}

func TestOutOfOrderDestruction(t *testing.T) {
	rt := New()
	var order []int
	h1 := rt.Acquire(1, func(any) { order = append(order, 1) })
	h2 := rt.Acquire(2, func(any) { order = append(order, 2) })
	h3 := rt.Acquire(3, func(any) { order = append(order, 3) })

	for _, h := range []Handle{h2, h3, h1} {
		if err := rt.Release(h); err != nil {
			t.Fatalf("Release(%d): %v", h, err)
		}
	}
	if len(order) != 3 || order[0] != 2 || order[1] != 3 || order[2] != 1 {
		t.Errorf("finalization order = %v, want [2 3 1]", order)
	}
}

func TestStats(t *testing.T) {
	rt := New()
	h1 := rt.Acquire(nil, nil)
	rt.Acquire(nil, nil)
	if err := rt.Release(h1); err != nil {
		t.Fatalf("Release: %v", err)
	}
	got := rt.Stats()
	if got.Acquired != 2 || got.Finalized != 1 || got.Live != 1 {
		t.Errorf("Stats = %+v, want 2 acquired, 1 finalized, 1 live", got)
	}
}

func TestHandlesNeverReused(t *testing.T) {
	rt := New()
	h1 := rt.Acquire(nil, nil)
	if err := rt.Release(h1); err != nil {
		t.Fatalf("Release: %v", err)
	}
	h2 := rt.Acquire(nil, nil)
	if h1 == h2 {
		t.Errorf("handle %d reused after finalization", h1)
	}
}
