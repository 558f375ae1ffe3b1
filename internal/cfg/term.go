package cfg

type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermIf
	TermYield
	TermReturn
	TermUnreachable
)

type Terminator struct {
	Kind TermKind

	Goto   GotoTerm
	If     IfTerm
	Yield  YieldTerm
	Return ReturnTerm
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Cond Expr
	Then BlockID
	Else BlockID
}

// YieldTerm is a suspension point: control leaves the function carrying
// Value and later resumes at Resume.
type YieldTerm struct {
	Value  Expr
	Resume BlockID
}

// ReturnTerm ends the activation. Suspending functions return no value;
// a return only signals exhaustion.
type ReturnTerm struct{}

// Succs appends the terminator's successor blocks to dst and returns it.
func (t *Terminator) Succs(dst []BlockID) []BlockID {
	switch t.Kind {
	case TermGoto:
		dst = append(dst, t.Goto.Target)
	case TermIf:
		dst = append(dst, t.If.Then, t.If.Else)
	case TermYield:
		dst = append(dst, t.Yield.Resume)
	}
	return dst
}
