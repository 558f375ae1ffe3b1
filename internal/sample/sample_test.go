package sample

import (
	"testing"

	"weft/internal/gen"
	"weft/internal/types"
)

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(registry) {
		t.Fatalf("Names() returned %d entries, registry has %d", len(names), len(registry))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}

func TestBuildUnknown(t *testing.T) {
	in := types.NewInterner()
	if _, err := Build("nope", in); err == nil {
		t.Fatal("unknown sample accepted")
	}
}

// Every sample except no_yield must lower natively.
func TestSamplesLower(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			in := types.NewInterner()
			f, err := Build(name, in)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			_, err = gen.Lower(f, in)
			if name == "no_yield" {
				if err == nil {
					t.Fatal("no_yield lowered natively")
				}
				return
			}
			if err != nil {
				t.Fatalf("Lower: %v", err)
			}
		})
	}
}
