// Package cfg is the boundary with the compiler front end: a control-flow
// graph of structured statements with variable references resolved to
// stable identifiers and suspension points marked as block terminators.
// The generator core borrows graphs built here; it never parses source.
package cfg

import (
	"weft/internal/source"
	"weft/internal/types"
)

type VarID int32
type BlockID int32

const (
	NoVarID   VarID   = -1
	NoBlockID BlockID = -1
)

// Local describes one function-local variable (parameters included).
// Types are supplied by the front end's scalar/array inference.
type Local struct {
	Name string
	Type types.TypeID
	Span source.Span
}

// Func is one analyzable function body. The first NumParams locals are
// the parameters, in declaration order.
type Func struct {
	Name      string
	Span      source.Span
	Locals    []Local
	NumParams int
	Blocks    []Block
	Entry     BlockID
}

// Param returns the locals that are parameters.
func (f *Func) Params() []Local {
	return f.Locals[:f.NumParams]
}

// Block is a straight-line run of assignments ended by one terminator.
type Block struct {
	ID     BlockID
	Instrs []Assign
	Term   Terminator
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}

// Assign stores the value of Src into Dst. The only straight-line
// statement class; branches, loops, suspension points and returns are
// all expressed as terminators.
type Assign struct {
	Dst  VarID
	Src  Expr
	Span source.Span
}
