package types

// Numeric promotion lattice: integer -> floating-point -> complex.
// Fixed-width operands widen to the narrowest common width that holds
// both; a 64-bit integer meeting a float stays at float64 (the usual
// lossy corner of the lattice, accepted as in the reference semantics).

func normWidth(w Width) Width {
	if w == WidthAny {
		return Width64
	}
	return w
}

func maxWidth(a, b Width) Width {
	if a > b {
		return a
	}
	return b
}

// floatWidthFor returns the narrowest float width whose mantissa holds
// every value of an integer of the given width.
func floatWidthFor(intW Width) Width {
	if intW <= Width16 {
		return Width32
	}
	return Width64
}

// Promote returns the smallest common type both operands convert to under
// the promotion lattice, or false when no such type exists (booleans,
// buffers and mixed buffer/scalar pairs do not promote).
func (in *Interner) Promote(a, b TypeID) (TypeID, bool) {
	if a == b {
		return a, a != NoTypeID
	}
	ta, okA := in.Lookup(a)
	tb, okB := in.Lookup(b)
	if !okA || !okB || !ta.IsNumeric() || !tb.IsNumeric() {
		return NoTypeID, false
	}
	t, ok := promote(ta, tb)
	if !ok {
		return NoTypeID, false
	}
	return in.Intern(t), true
}

func promote(a, b Type) (Type, bool) {
	aw := normWidth(a.Width)
	bw := normWidth(b.Width)

	// Complex absorbs everything numeric.
	if a.Kind == KindComplex || b.Kind == KindComplex {
		w := Width(0)
		for _, t := range [2]Type{a, b} {
			tw := normWidth(t.Width)
			switch t.Kind {
			case KindComplex:
				w = maxWidth(w, tw)
			case KindFloat:
				w = maxWidth(w, 2*tw)
			case KindInt, KindUint:
				w = maxWidth(w, 2*floatWidthFor(tw))
			}
		}
		if w > Width128 {
			w = Width128
		}
		return MakeComplex(w), true
	}

	if a.Kind == KindFloat || b.Kind == KindFloat {
		w := Width(0)
		for _, t := range [2]Type{a, b} {
			tw := normWidth(t.Width)
			switch t.Kind {
			case KindFloat:
				w = maxWidth(w, tw)
			case KindInt, KindUint:
				w = maxWidth(w, floatWidthFor(tw))
			}
		}
		return MakeFloat(w), true
	}

	// Both integral.
	if a.Kind == b.Kind {
		return Type{Kind: a.Kind, Width: maxWidth(aw, bw)}, true
	}
	// Signed/unsigned mix widens to the narrowest signed width that holds
	// both; an unsigned operand at least as wide as the signed one needs
	// one extra doubling, capped at 64 bits.
	intW, uintW := aw, bw
	if a.Kind == KindUint {
		intW, uintW = bw, aw
	}
	w := intW
	if uintW >= intW {
		w = 2 * uintW
		if w > Width64 {
			w = Width64
		}
	}
	return MakeInt(w), true
}
