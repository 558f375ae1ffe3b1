package types

import "testing"

func TestPromoteLattice(t *testing.T) {
	in := NewInterner()

	cases := []struct {
		name string
		a, b Type
		want Type
	}{
		{"int_int_same", MakeInt(Width64), MakeInt(Width64), MakeInt(Width64)},
		{"int_widens", MakeInt(Width16), MakeInt(Width32), MakeInt(Width32)},
		{"uint_widens", MakeUint(Width8), MakeUint(Width32), MakeUint(Width32)},
		{"int_uint_narrow", MakeInt(Width64), MakeUint(Width32), MakeInt(Width64)},
		{"int_uint_doubles", MakeInt(Width32), MakeUint(Width32), MakeInt(Width64)},
		{"int_uint_caps", MakeInt(Width64), MakeUint(Width64), MakeInt(Width64)},
		{"int_float", MakeInt(Width64), MakeFloat(Width64), MakeFloat(Width64)},
		{"small_int_float32", MakeInt(Width16), MakeFloat(Width32), MakeFloat(Width32)},
		{"int32_float32", MakeInt(Width32), MakeFloat(Width32), MakeFloat(Width64)},
		{"float_complex", MakeFloat(Width64), MakeComplex(Width128), MakeComplex(Width128)},
		{"int_complex", MakeInt(Width64), MakeComplex(Width128), MakeComplex(Width128)},
		{"float_float", MakeFloat(Width32), MakeFloat(Width64), MakeFloat(Width64)},
		{"small_float_complex64", MakeFloat(Width32), MakeComplex(Width64), MakeComplex(Width64)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := in.Promote(in.Intern(tc.a), in.Intern(tc.b))
			if !ok {
				t.Fatalf("Promote(%v, %v) failed", tc.a, tc.b)
			}
			if want := in.Intern(tc.want); got != want {
				t.Errorf("Promote(%v, %v) = %s, want %s", tc.a, tc.b, in.String(got), in.String(want))
			}
			// Promotion is symmetric.
			rev, ok := in.Promote(in.Intern(tc.b), in.Intern(tc.a))
			if !ok || rev != in.Intern(tc.want) {
				t.Errorf("Promote is not symmetric for %v, %v", tc.a, tc.b)
			}
		})
	}
}

func TestPromoteRejectsNonNumeric(t *testing.T) {
	in := NewInterner()
	buf := in.Intern(MakeBuffer(in.Builtins().Float64))

	if _, ok := in.Promote(in.Builtins().Bool, in.Builtins().Int64); ok {
		t.Error("bool promoted with int")
	}
	if _, ok := in.Promote(buf, in.Builtins().Int64); ok {
		t.Error("buffer promoted with int")
	}
	if got, ok := in.Promote(buf, buf); !ok || got != buf {
		t.Errorf("equal buffer types must unify to themselves, got %v ok=%v", got, ok)
	}
}

func TestInternerStableIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeBuffer(in.Builtins().Float64))
	b := in.Intern(MakeBuffer(in.Builtins().Float64))
	if a != b {
		t.Errorf("interning the same descriptor twice gave %d and %d", a, b)
	}
	if in.String(a) != "buffer[float64]" {
		t.Errorf("String(%d) = %q", a, in.String(a))
	}
}
