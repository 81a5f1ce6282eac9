//go:build integration

// Smoke tests mirroring spec.md §8's concrete scenarios 1-3 and 6. These
// invoke a real C++ toolchain (g++ by default) via Runner.Run, so they
// are gated behind the "integration" build tag the way the teacher gates
// its process-spawning CLI tests (SPEC_FULL §13). Scenarios 4 and 5 are
// not exercised here.
package qit

import (
	"reflect"
	"testing"
)

func TestScenario1_RangeIterate(t *testing.T) {
	it, err := NewRange(mustValue(t, Int(), 10)).Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	r := NewRunner()
	r.BuildDir = t.TempDir()
	got, err := r.Run(it, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenario2_RangeBoundByFreeVariable(t *testing.T) {
	x := NewVariable(Int(), "x")
	it, err := NewRange(x).Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	r := NewRunner()
	r.BuildDir = t.TempDir()

	got, err := r.Run(it, map[string]any{"x": 10})
	if err != nil {
		t.Fatalf("Run(x=10): %v", err)
	}
	if len(got.([]any)) != 10 {
		t.Fatalf("got %d values, want 10", len(got.([]any)))
	}

	got, err = r.Run(it, map[string]any{"x": 3})
	if err != nil {
		t.Fatalf("Run(x=3): %v", err)
	}
	want := []any{0, 1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenario3_ProductTakeMapTake(t *testing.T) {
	prod, err := NewProduct(Field{Type: NewRange(mustValue(t, Int(), 4)), Name: "x"}, Field{Type: NewRange(mustValue(t, Int(), 4)), Name: "y"})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	it, err := prod.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	sumFn := NewFunction("addxy").Takes(prod, "p").Returns(Int())
	sumFn.Code("return p.x + p.y;", nil)

	taken := Take(it, mustValue(t, Int(), 6))
	mapped, err := NewMap(taken, sumFn)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	final := Take(mapped, mustValue(t, Int(), 4))

	r := NewRunner()
	r.BuildDir = t.TempDir()
	got, err := r.Run(final, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []any{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScenario6_ScalarArithmetic(t *testing.T) {
	r := NewRunner()
	r.BuildDir = t.TempDir()

	x := NewVariable(Int(), "x")
	y := NewVariable(Int(), "y")

	sum, err := Add(x, y)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := r.Run(sum, map[string]any{"x": 4, "y": 6})
	if err != nil {
		t.Fatalf("Run(x+y): %v", err)
	}
	if got.(int) != 10 {
		t.Fatalf("x+y = %v, want 10", got)
	}

	xPlus3, err := Add(x, 3)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err = r.Run(xPlus3, map[string]any{"x": 4})
	if err != nil {
		t.Fatalf("Run(x+3): %v", err)
	}
	if got.(int) != 7 {
		t.Fatalf("x+3 = %v, want 7", got)
	}
}
