package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Typing (generator rejection; callers may fall back to the interpreter)
	TypInfo          Code = 1000
	TypNoYieldValue  Code = 1001
	TypNoCommonYield Code = 1002
	TypBadOperand    Code = 1003
	TypBadArgument   Code = 1004

	// Lowering
	LowInfo         Code = 2000
	LowMalformedCFG Code = 2001
	LowTooManyYield Code = 2002
)

func (c Code) String() string {
	return fmt.Sprintf("W%04d", uint16(c))
}
