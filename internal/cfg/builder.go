package cfg

import (
	"fmt"

	"weft/internal/source"
	"weft/internal/types"
)

// Builder assembles a Func block by block. It exists for the front end,
// for tests and for the built-in sample programs; the generator core
// itself only reads finished graphs.
type Builder struct {
	fn        Func
	paramsEnd bool
}

func NewBuilder(name string) *Builder {
	return &Builder{fn: Func{Name: name, Entry: NoBlockID}}
}

// Param declares the next parameter. All parameters must be declared
// before the first non-parameter local.
func (b *Builder) Param(name string, t types.TypeID) VarID {
	if b.paramsEnd {
		panic(fmt.Sprintf("cfg: parameter %q declared after locals", name))
	}
	id := b.addLocal(name, t)
	b.fn.NumParams++
	return id
}

// Local declares a non-parameter local variable.
func (b *Builder) Local(name string, t types.TypeID) VarID {
	b.paramsEnd = true
	return b.addLocal(name, t)
}

func (b *Builder) addLocal(name string, t types.TypeID) VarID {
	id := VarID(len(b.fn.Locals))
	b.fn.Locals = append(b.fn.Locals, Local{Name: name, Type: t})
	return id
}

// Block allocates a new empty block and returns its id. The first block
// allocated becomes the entry unless SetEntry overrides it.
func (b *Builder) Block() BlockID {
	id := BlockID(len(b.fn.Blocks))
	b.fn.Blocks = append(b.fn.Blocks, Block{ID: id})
	if b.fn.Entry == NoBlockID {
		b.fn.Entry = id
	}
	return id
}

func (b *Builder) SetEntry(id BlockID) {
	b.fn.Entry = id
}

func (b *Builder) block(id BlockID) *Block {
	if id < 0 || int(id) >= len(b.fn.Blocks) {
		panic(fmt.Sprintf("cfg: unknown block %d", id))
	}
	return &b.fn.Blocks[id]
}

func (b *Builder) Assign(bb BlockID, dst VarID, src Expr) {
	blk := b.block(bb)
	if blk.Terminated() {
		panic(fmt.Sprintf("cfg: assignment after terminator in block %d", bb))
	}
	blk.Instrs = append(blk.Instrs, Assign{Dst: dst, Src: src})
}

func (b *Builder) setTerm(bb BlockID, t Terminator) {
	blk := b.block(bb)
	if blk.Terminated() {
		panic(fmt.Sprintf("cfg: block %d already terminated", bb))
	}
	blk.Term = t
}

func (b *Builder) Goto(bb, target BlockID) {
	b.setTerm(bb, Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
}

func (b *Builder) If(bb BlockID, cond Expr, then, els BlockID) {
	b.setTerm(bb, Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: then, Else: els}})
}

func (b *Builder) Yield(bb BlockID, value Expr, resume BlockID) {
	b.setTerm(bb, Terminator{Kind: TermYield, Yield: YieldTerm{Value: value, Resume: resume}})
}

func (b *Builder) Return(bb BlockID) {
	b.setTerm(bb, Terminator{Kind: TermReturn})
}

func (b *Builder) Unreachable(bb BlockID) {
	b.setTerm(bb, Terminator{Kind: TermUnreachable})
}

// Finish validates and returns the assembled function. The builder must
// not be reused afterwards.
func (b *Builder) Finish() (*Func, error) {
	if b.fn.Entry == NoBlockID {
		return nil, fmt.Errorf("cfg: function %q has no entry block", b.fn.Name)
	}
	for i := range b.fn.Blocks {
		blk := &b.fn.Blocks[i]
		if blk.Term.Kind == TermNone {
			return nil, fmt.Errorf("cfg: block %d of %q is unterminated", blk.ID, b.fn.Name)
		}
		for _, succ := range blk.Term.Succs(nil) {
			if succ < 0 || int(succ) >= len(b.fn.Blocks) {
				return nil, fmt.Errorf("cfg: block %d of %q targets unknown block %d", blk.ID, b.fn.Name, succ)
			}
		}
	}
	fn := b.fn
	return &fn, nil
}

// MustFinish is Finish for statically-known-good graphs (samples, tests).
func (b *Builder) MustFinish() *Func {
	fn, err := b.Finish()
	if err != nil {
		panic(err)
	}
	return fn
}

// WithSpan attaches a span to the function under construction.
func (b *Builder) WithSpan(s source.Span) *Builder {
	b.fn.Span = s
	return b
}
