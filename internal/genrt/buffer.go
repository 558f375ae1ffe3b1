package genrt

import (
	"fmt"

	"weft/internal/bufrt"
)

// bufferData is the payload this core stores behind a buffer handle:
// a flat vector of runtime values. The buffer runtime itself stays
// agnostic to it.
type bufferData struct {
	elems []Value
}

// NewBuffer allocates a managed buffer holding elems and returns its
// handle with one owned reference. The finalizer drops the element
// storage so a use after finalization cannot read stale data.
func NewBuffer(rt *bufrt.Runtime, elems []Value) bufrt.Handle {
	data := &bufferData{elems: elems}
	return rt.Acquire(data, func(any) {
		data.elems = nil
	})
}

// NewFloatBuffer is a convenience for buffers of float64 elements.
func NewFloatBuffer(rt *bufrt.Runtime, elems []float64) bufrt.Handle {
	vals := make([]Value, len(elems))
	for i, e := range elems {
		vals[i] = FloatValue(e)
	}
	return NewBuffer(rt, vals)
}

// BufferElems returns the element vector behind a live handle.
func BufferElems(rt *bufrt.Runtime, h bufrt.Handle) ([]Value, error) {
	data, err := rt.Data(h)
	if err != nil {
		return nil, err
	}
	bd, ok := data.(*bufferData)
	if !ok {
		return nil, fmt.Errorf("genrt: handle %d does not hold a value buffer", h)
	}
	return bd.elems, nil
}
