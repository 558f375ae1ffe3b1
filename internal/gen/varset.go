package gen

import (
	"slices"

	"weft/internal/cfg"
)

type varSet map[cfg.VarID]struct{}

func (s varSet) add(id cfg.VarID) {
	if id == cfg.NoVarID {
		return
	}
	s[id] = struct{}{}
}

func (s varSet) has(id cfg.VarID) bool {
	_, ok := s[id]
	return ok
}

func (s varSet) sorted() []cfg.VarID {
	out := make([]cfg.VarID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// cloneSet creates a copy of a varSet.
func cloneSet(s varSet) varSet {
	out := make(varSet, len(s))
	for id := range s {
		out.add(id)
	}
	return out
}

// unionSet merges src into dst and returns dst.
func unionSet(dst, src varSet) varSet {
	if dst == nil {
		dst = varSet{}
	}
	for id := range src {
		dst.add(id)
	}
	return dst
}

// subtractSet returns src minus sub.
func subtractSet(src, sub varSet) varSet {
	out := varSet{}
	for id := range src {
		if sub.has(id) {
			continue
		}
		out.add(id)
	}
	return out
}

// setEqual checks if two varSets contain the same elements.
func setEqual(a, b varSet) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b.has(id) {
			return false
		}
	}
	return true
}
