package qast

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

func TestNewValues_RejectsEmptyList(t *testing.T) {
	_, err := NewValues(Int())
	if !qerrors.Is(err, qerrors.TypeMismatch) {
		t.Fatalf("got %# v, want a TypeMismatch error for an empty Values set", pretty.Formatter(err))
	}
}

func TestNewValues_RejectsWrongElementType(t *testing.T) {
	boolLit, err := NewValue(Bool(), true)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	_, err = NewValues(Int(), boolLit)
	if !qerrors.Is(err, qerrors.TypeMismatch) {
		t.Fatalf("got %# v, want a TypeMismatch error for a mistyped element", pretty.Formatter(err))
	}
}

func TestValuesType_FreeVarsUnionsAcrossElements(t *testing.T) {
	x := NewVariable(Int(), "x")
	y := NewVariable(Int(), "y")
	ten, err := NewValue(Int(), 10)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}

	vt, err := NewValues(Int(), x, y, ten)
	if err != nil {
		t.Fatalf("NewValues: %v", err)
	}

	fv := vt.FreeVars()
	if _, ok := fv[x]; !ok {
		t.Fatalf("expected x in FreeVars: %# v", pretty.Formatter(fv))
	}
	if _, ok := fv[y]; !ok {
		t.Fatalf("expected y in FreeVars: %# v", pretty.Formatter(fv))
	}
	if len(fv) != 2 {
		t.Fatalf("got %# v, want exactly 2 free variables (the literal contributes none)", pretty.Formatter(fv))
	}
}

func TestMappingType_Equal(t *testing.T) {
	a := NewMapping(Int(), Bool())
	b := NewMapping(Int(), Bool())
	if !a.Equal(b) {
		t.Fatalf("expected Mapping(Int,Bool) == Mapping(Int,Bool): %# v vs %# v", pretty.Formatter(a), pretty.Formatter(b))
	}
	if a.Equal(NewMapping(Bool(), Bool())) {
		t.Fatalf("expected Mapping(Int,Bool) != Mapping(Bool,Bool)")
	}
}
