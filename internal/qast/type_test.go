package qast

import (
	"testing"

	"github.com/kr/pretty"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

func TestNewValue_TypeMismatchRejectsBadPayload(t *testing.T) {
	_, err := NewValue(Int(), "not an int")
	if !qerrors.Is(err, qerrors.TypeMismatch) {
		t.Fatalf("got %# v, want a TypeMismatch error", pretty.Formatter(err))
	}
}

func TestNewValue_AcceptsMatchingPayload(t *testing.T) {
	v, err := NewValue(Bool(), true)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	if v.Payload != true {
		t.Fatalf("got %# v", pretty.Formatter(v))
	}
}

func TestNewProduct_DuplicateFieldRejected(t *testing.T) {
	_, err := NewProduct(Field{Type: Int(), Name: "x"}, Field{Type: Int(), Name: "x"})
	if !qerrors.Is(err, qerrors.DuplicateField) {
		t.Fatalf("got %# v, want a DuplicateField error", pretty.Formatter(err))
	}
}

func TestNewProduct_AutonamesBareFields(t *testing.T) {
	p, err := NewProduct(Field{Type: Int()}, Field{Type: Int()})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	want := []string{"v0", "v1"}
	for i, f := range p.Fields {
		if f.Name != want[i] {
			t.Fatalf("field %d: got %# v, want name %q", i, pretty.Formatter(f), want[i])
		}
	}
}

func TestProductType_Equal_StructuralByFieldNameAndType(t *testing.T) {
	a, err := NewProduct(Field{Type: Int(), Name: "x"}, Field{Type: Bool(), Name: "y"})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	b, err := NewProduct(Field{Type: Int(), Name: "x"}, Field{Type: Bool(), Name: "y"})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("expected structurally identical products to be Equal: %# v vs %# v", pretty.Formatter(a), pretty.Formatter(b))
	}

	c, err := NewProduct(Field{Type: Int(), Name: "x"}, Field{Type: Int(), Name: "y"})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	if a.Equal(c) {
		t.Fatalf("expected products with different field types not to be Equal: %# v vs %# v", pretty.Formatter(a), pretty.Formatter(c))
	}
}

func TestProductType_NotEqualToStructType(t *testing.T) {
	p, err := NewProduct(Field{Type: Int(), Name: "x"})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	s, err := NewStruct(Field{Type: Int(), Name: "x"})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	if p.Equal(s) || s.Equal(p) {
		t.Fatalf("Product and Struct with identical fields must not compare Equal (different DeclKey kind)")
	}
}

func TestKeyValueType_Equal(t *testing.T) {
	a := NewKeyValue(Int(), Bool())
	b := NewKeyValue(Int(), Bool())
	if !a.Equal(b) {
		t.Fatalf("expected two KeyValue(Int,Bool) to be Equal: %# v vs %# v", pretty.Formatter(a), pretty.Formatter(b))
	}
	c := NewKeyValue(Int(), Int())
	if a.Equal(c) {
		t.Fatalf("expected KeyValue(Int,Bool) != KeyValue(Int,Int)")
	}
}

func TestSequenceType_Equal(t *testing.T) {
	a := NewSequence(Int())
	b := NewSequence(Int())
	if !a.Equal(b) {
		t.Fatalf("expected Sequence(Int) == Sequence(Int)")
	}
	if a.Equal(NewSequence(Bool())) {
		t.Fatalf("expected Sequence(Int) != Sequence(Bool)")
	}
}

func TestVarSet_UnionDeduplicatesByPointerIdentity(t *testing.T) {
	x := NewVariable(Int(), "x")
	y := NewVariable(Int(), "y")

	s1 := NewVarSet(x, y)
	s2 := NewVarSet(x)
	union := Union(s1, s2)

	if len(union) != 2 {
		t.Fatalf("got %# v, want a 2-element union", pretty.Formatter(union))
	}
	if _, ok := union[x]; !ok {
		t.Fatal("expected x in union")
	}
	if _, ok := union[y]; !ok {
		t.Fatal("expected y in union")
	}
}

func TestVarSet_TwoDistinctVariablesNamedTheSameDoNotCollapse(t *testing.T) {
	x1 := NewVariable(Int(), "x")
	x2 := NewVariable(Int(), "x")

	union := Union(NewVarSet(x1), NewVarSet(x2))
	if len(union) != 2 {
		t.Fatalf("expected two distinct *Variable pointers to remain distinct in the set: %# v", pretty.Formatter(union))
	}
}

func TestVarSet_SortedOrdersByName(t *testing.T) {
	b := NewVariable(Int(), "b")
	a := NewVariable(Int(), "a")
	c := NewVariable(Int(), "c")

	sorted := NewVarSet(b, a, c).Sorted()
	var names []string
	for _, v := range sorted {
		names = append(names, v.Name)
	}
	want := []string{"a", "b", "c"}
	for i, n := range names {
		if n != want[i] {
			t.Fatalf("got order %# v, want %# v", pretty.Formatter(names), pretty.Formatter(want))
		}
	}
}

func TestFunctionCall_FreeVarsUnionsFunctionAndArgs(t *testing.T) {
	x := NewVariable(Int(), "x")
	fn := NewFunction("identity").Takes(Int(), "n").Returns(Int())
	fn.Code("return n;", nil).Reads(x)

	arg := NewVariable(Int(), "arg")
	call, err := NewCall(fn, arg)
	if err != nil {
		t.Fatalf("NewCall: %v", err)
	}

	fv := call.FreeVars()
	if _, ok := fv[x]; !ok {
		t.Fatalf("expected the function's captured variable in FreeVars: %# v", pretty.Formatter(fv))
	}
	if _, ok := fv[arg]; !ok {
		t.Fatalf("expected the call argument's variable in FreeVars: %# v", pretty.Formatter(fv))
	}
}

func TestNewCall_ArityMismatch(t *testing.T) {
	fn := NewFunction("f").Takes(Int(), "n").Returns(Int())
	fn.Code("return n;", nil)
	_, err := NewCall(fn)
	if !qerrors.Is(err, qerrors.TypeMismatch) {
		t.Fatalf("got %# v, want a TypeMismatch error for arity mismatch", pretty.Formatter(err))
	}
}

func TestNewCall_ArgumentTypeMismatch(t *testing.T) {
	fn := NewFunction("f").Takes(Int(), "n").Returns(Int())
	fn.Code("return n;", nil)
	badArg := NewVariable(Bool(), "b")
	_, err := NewCall(fn, badArg)
	if !qerrors.Is(err, qerrors.TypeMismatch) {
		t.Fatalf("got %# v, want a TypeMismatch error for argument type mismatch", pretty.Formatter(err))
	}
}
