package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindBuffer
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	case KindBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of numeric primitives in bits.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
	Width128 Width = 128
)

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind  Kind
	Elem  TypeID // for buffers: element type
	Width Width  // for numeric primitives
}

// IsNumeric reports whether the type participates in the promotion lattice.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case KindInt, KindUint, KindFloat, KindComplex:
		return true
	default:
		return false
	}
}

func MakeBool() Type {
	return Type{Kind: KindBool}
}

func MakeInt(w Width) Type {
	return Type{Kind: KindInt, Width: w}
}

func MakeUint(w Width) Type {
	return Type{Kind: KindUint, Width: w}
}

func MakeFloat(w Width) Type {
	return Type{Kind: KindFloat, Width: w}
}

func MakeComplex(w Width) Type {
	return Type{Kind: KindComplex, Width: w}
}

func MakeBuffer(elem TypeID) Type {
	return Type{Kind: KindBuffer, Elem: elem}
}
