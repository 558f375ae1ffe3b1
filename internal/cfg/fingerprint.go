package cfg

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"math"
)

// Fingerprint returns a structural digest of the function: locals,
// block shapes, expressions and terminators. Two functions with the
// same fingerprint lower to the same generator descriptor, which is
// what the compile cache keys on.
func Fingerprint(f *Func) [32]byte {
	h := sha256.New()
	writeString(h, f.Name)
	writeInt(h, int64(f.NumParams))
	for i := range f.Locals {
		writeString(h, f.Locals[i].Name)
		writeInt(h, int64(f.Locals[i].Type))
	}
	writeInt(h, int64(f.Entry))
	for i := range f.Blocks {
		blk := &f.Blocks[i]
		for j := range blk.Instrs {
			writeInt(h, int64(blk.Instrs[j].Dst))
			writeExpr(h, &blk.Instrs[j].Src)
		}
		writeTerm(h, &blk.Term)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	h.Write([]byte(s))
}

func writeInt(h hash.Hash, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}

func writeExpr(h hash.Hash, e *Expr) {
	if e == nil {
		writeInt(h, -1)
		return
	}
	writeInt(h, int64(e.Kind))
	switch e.Kind {
	case ExprConst:
		c := e.Const
		writeInt(h, int64(c.Kind))
		writeInt(h, int64(c.Width))
		if c.Bool {
			writeInt(h, 1)
		} else {
			writeInt(h, 0)
		}
		writeInt(h, c.Int)
		writeInt(h, int64(c.Uint))
		writeInt(h, int64(math.Float64bits(c.Float)))
		writeInt(h, int64(math.Float64bits(real(c.Complex))))
		writeInt(h, int64(math.Float64bits(imag(c.Complex))))
	case ExprVar:
		writeInt(h, int64(e.Var))
	case ExprNeg:
		writeExpr(h, e.Left)
	case ExprBinary:
		writeInt(h, int64(e.Op))
		writeExpr(h, e.Left)
		writeExpr(h, e.Right)
	case ExprIndex:
		writeInt(h, int64(e.Buf))
		writeExpr(h, e.Index)
	case ExprLen:
		writeInt(h, int64(e.Buf))
	}
}

func writeTerm(h hash.Hash, t *Terminator) {
	writeInt(h, int64(t.Kind))
	switch t.Kind {
	case TermGoto:
		writeInt(h, int64(t.Goto.Target))
	case TermIf:
		writeExpr(h, &t.If.Cond)
		writeInt(h, int64(t.If.Then))
		writeInt(h, int64(t.If.Else))
	case TermYield:
		writeExpr(h, &t.Yield.Value)
		writeInt(h, int64(t.Yield.Resume))
	}
}
