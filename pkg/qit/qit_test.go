package qit

import (
	"testing"
)

func TestRunner_Declarations_NoFreeVariables(t *testing.T) {
	rng := NewRange(mustValue(t, Int(), 10))
	it, err := rng.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}

	r := NewRunner()
	r.BuildDir = t.TempDir()
	if _, err := r.Declarations(it, nil); err != nil {
		t.Fatalf("Declarations: %v", err)
	}
}

func TestRunner_Declarations_ReportsUnboundVariable(t *testing.T) {
	x := NewVariable(Int(), "x")
	rng := NewRange(x)
	it, err := rng.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}

	r := NewRunner()
	r.BuildDir = t.TempDir()
	_, err = r.Declarations(it, nil)
	if err == nil {
		t.Fatal("expected UnboundVariable error, got nil")
	}
}

func TestRunner_Declarations_ScalarExpr(t *testing.T) {
	x := NewVariable(Int(), "x")
	y := NewVariable(Int(), "y")
	sum, err := Add(x, y)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	r := NewRunner()
	r.BuildDir = t.TempDir()
	src, err := r.Declarations(sum, map[string]any{"x": 4, "y": 6})
	if err != nil {
		t.Fatalf("Declarations: %v", err)
	}
	if src == "" {
		t.Fatal("expected non-empty generated source")
	}
}

func mustValue(t *testing.T, typ Type, payload any) Expr {
	t.Helper()
	v, err := NewValue(typ, payload)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	return v
}
