package cfg

// FoldedSuccs appends t's successors to dst, folding branch conditions
// that are boolean literals: the untaken arm of a statically-known
// branch is not a successor. Liveness and reachability both run over
// the folded graph so a suspension point guarded by a false condition
// never constrains typing or state layout.
func FoldedSuccs(t *Terminator, dst []BlockID) []BlockID {
	if t.Kind == TermIf {
		if v, ok := t.If.Cond.ConstBoolValue(); ok {
			if v {
				return append(dst, t.If.Then)
			}
			return append(dst, t.If.Else)
		}
	}
	return t.Succs(dst)
}

// Reachable computes which blocks can execute. Blocks following a
// return are unreachable by construction (a return has no successors).
func Reachable(f *Func) []bool {
	seen := make([]bool, len(f.Blocks))
	if f.Entry == NoBlockID {
		return seen
	}
	stack := []BlockID{f.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = FoldedSuccs(&f.Blocks[id].Term, stack)
	}
	return seen
}
