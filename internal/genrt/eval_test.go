package genrt

import (
	"testing"

	"weft/internal/bufrt"
	"weft/internal/cfg"
	"weft/internal/types"
)

func TestEvalPromotion(t *testing.T) {
	rt := bufrt.New()
	cases := []struct {
		name string
		expr cfg.Expr
		want Value
	}{
		{"int_add", cfg.Bin(cfg.OpAdd, cfg.ConstInt(types.Width64, 2), cfg.ConstInt(types.Width64, 3)), IntValue(5)},
		{"int_float", cfg.Bin(cfg.OpAdd, cfg.ConstInt(types.Width64, 2), cfg.ConstFloat(types.Width64, 0.5)), FloatValue(2.5)},
		{"float_complex", cfg.Bin(cfg.OpMul, cfg.ConstFloat(types.Width64, 2), cfg.ConstComplex(types.Width128, 1i)), ComplexValue(2i)},
		{"compare", cfg.Bin(cfg.OpLt, cfg.ConstInt(types.Width64, 1), cfg.ConstFloat(types.Width64, 1.5)), BoolValue(true)},
		{"neg_int", cfg.Neg(cfg.ConstInt(types.Width64, 7)), IntValue(-7)},
		{"neg_float", cfg.Neg(cfg.ConstFloat(types.Width64, 1.5)), FloatValue(-1.5)},
		{"neg_complex", cfg.Neg(cfg.ConstComplex(types.Width128, 1+2i)), ComplexValue(-1 - 2i)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EvalExpr(rt, nil, &tc.expr)
			if err != nil {
				t.Fatalf("EvalExpr: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEvalFaults(t *testing.T) {
	rt := bufrt.New()

	div := cfg.Bin(cfg.OpDiv, cfg.ConstInt(types.Width64, 1), cfg.ConstInt(types.Width64, 0))
	if _, err := EvalExpr(rt, nil, &div); err == nil {
		t.Error("integer division by zero did not fault")
	}

	ord := cfg.Bin(cfg.OpLt, cfg.ConstComplex(types.Width128, 1i), cfg.ConstComplex(types.Width128, 2i))
	if _, err := EvalExpr(rt, nil, &ord); err == nil {
		t.Error("ordering complex values did not fault")
	}

	negBool := cfg.Neg(cfg.ConstBool(true))
	if _, err := EvalExpr(rt, nil, &negBool); err == nil {
		t.Error("negating a bool did not fault")
	}
}

func TestEvalBufferIndex(t *testing.T) {
	rt := bufrt.New()
	h := NewFloatBuffer(rt, []float64{1.5, 2.5})
	frame := []Value{BufferValue(h)}

	idx := cfg.Index(0, cfg.ConstInt(types.Width64, 1))
	got, err := EvalExpr(rt, frame, &idx)
	if err != nil {
		t.Fatalf("EvalExpr: %v", err)
	}
	if f, _ := got.AsFloat(); f != 2.5 {
		t.Errorf("index read %s, want 2.5", got)
	}

	length := cfg.Len(0)
	got, err = EvalExpr(rt, frame, &length)
	if err != nil {
		t.Fatalf("EvalExpr: %v", err)
	}
	if n, _ := got.AsInt(); n != 2 {
		t.Errorf("len = %s, want 2", got)
	}

	oob := cfg.Index(0, cfg.ConstInt(types.Width64, 5))
	if _, err := EvalExpr(rt, frame, &oob); err == nil {
		t.Error("out-of-range index did not fault")
	}
}
