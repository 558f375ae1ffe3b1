// Package genrt holds the run-time side of the generator core: tagged
// runtime values, the generator protocol shared by the lowered and the
// interpreted paths, and the instance that executes lowered machines.
package genrt

import (
	"fmt"

	"weft/internal/bufrt"
	"weft/internal/types"
)

// Value is one runtime value. Scalars are stored at full width; widths
// matter statically, not here. The zero Value is "no value".
type Value struct {
	Kind    types.Kind
	Bool    bool
	Int     int64
	Uint    uint64
	Float   float64
	Complex complex128
	Buf     bufrt.Handle
}

func BoolValue(v bool) Value {
	return Value{Kind: types.KindBool, Bool: v}
}

func IntValue(v int64) Value {
	return Value{Kind: types.KindInt, Int: v}
}

func UintValue(v uint64) Value {
	return Value{Kind: types.KindUint, Uint: v}
}

func FloatValue(v float64) Value {
	return Value{Kind: types.KindFloat, Float: v}
}

func ComplexValue(v complex128) Value {
	return Value{Kind: types.KindComplex, Complex: v}
}

func BufferValue(h bufrt.Handle) Value {
	return Value{Kind: types.KindBuffer, Buf: h}
}

// IsBuffer reports whether the value holds a managed buffer handle.
func (v Value) IsBuffer() bool {
	return v.Kind == types.KindBuffer
}

// AsComplex widens any numeric value to complex128.
func (v Value) AsComplex() (complex128, bool) {
	switch v.Kind {
	case types.KindInt:
		return complex(float64(v.Int), 0), true
	case types.KindUint:
		return complex(float64(v.Uint), 0), true
	case types.KindFloat:
		return complex(v.Float, 0), true
	case types.KindComplex:
		return v.Complex, true
	default:
		return 0, false
	}
}

// AsFloat widens an integral or float value to float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case types.KindInt:
		return float64(v.Int), true
	case types.KindUint:
		return float64(v.Uint), true
	case types.KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// AsInt returns the integral value.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case types.KindInt:
		return v.Int, true
	case types.KindUint:
		return int64(v.Uint), true
	default:
		return 0, false
	}
}

// Convert coerces a numeric value to the given kind along the promotion
// lattice. Demotion is rejected: the unifier guarantees every yielded
// value converts losslessly.
func (v Value) Convert(kind types.Kind) (Value, error) {
	if v.Kind == kind {
		return v, nil
	}
	switch kind {
	case types.KindInt:
		if n, ok := v.AsInt(); ok {
			return IntValue(n), nil
		}
	case types.KindUint:
		if v.Kind == types.KindInt && v.Int >= 0 {
			return UintValue(uint64(v.Int)), nil
		}
	case types.KindFloat:
		if f, ok := v.AsFloat(); ok {
			return FloatValue(f), nil
		}
	case types.KindComplex:
		if c, ok := v.AsComplex(); ok {
			return ComplexValue(c), nil
		}
	}
	return Value{}, fmt.Errorf("genrt: cannot convert %s value to %s", v.Kind, kind)
}

func (v Value) String() string {
	switch v.Kind {
	case types.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case types.KindInt:
		return fmt.Sprintf("%d", v.Int)
	case types.KindUint:
		return fmt.Sprintf("%d", v.Uint)
	case types.KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case types.KindComplex:
		return fmt.Sprintf("%v", v.Complex)
	case types.KindBuffer:
		return fmt.Sprintf("buffer#%d", v.Buf)
	default:
		return "<none>"
	}
}
