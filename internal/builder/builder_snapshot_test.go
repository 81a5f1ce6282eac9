package builder

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-qit/internal/qast"
)

// These snapshot tests cover the declaration-key dedup / emission shape
// SPEC_FULL §13 asks for: the whole generated unit for a Range iterator,
// a Product odometer iterator, a Values iterator and a Take/Sort pipeline,
// plus a full end-to-end main() for a small expression, each compared against a
// stored golden file in __snapshots__ (the go-snaps convention the
// teacher's fixture_test.go already uses for its own generated
// artifacts).
func snapshotBuild(t *testing.T, name string, root any, args map[string]any) {
	t.Helper()
	b := New()
	src, err := b.Build(root, args)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	snaps.MatchSnapshot(t, name, src)
}

func TestSnapshot_RangeIterator(t *testing.T) {
	n, err := qast.NewValue(qast.Int(), 5)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	it, err := qast.NewRange(n).Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	snapshotBuild(t, "range_iterator", it, nil)
}

func TestSnapshot_ProductOdometerIterator(t *testing.T) {
	n, err := qast.NewValue(qast.Int(), 3)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	prod, err := qast.NewProduct(
		qast.Field{Type: qast.NewRange(n), Name: "x"},
		qast.Field{Type: qast.NewRange(n), Name: "y"},
	)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	it, err := prod.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	snapshotBuild(t, "product_odometer_iterator", it, nil)
}

func TestSnapshot_ValuesIterator(t *testing.T) {
	one, err := qast.NewValue(qast.Int(), 1)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	two, err := qast.NewValue(qast.Int(), 2)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	vt, err := qast.NewValues(qast.Int(), one, two)
	if err != nil {
		t.Fatalf("NewValues: %v", err)
	}
	it, err := vt.Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	snapshotBuild(t, "values_iterator", it, nil)
}

func TestSnapshot_TakeSortPipeline(t *testing.T) {
	n, err := qast.NewValue(qast.Int(), 10)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	it, err := qast.NewRange(n).Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	k, err := qast.NewValue(qast.Int(), 5)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	taken := qast.Take(it, k)
	sorted := qast.Sort(taken)
	snapshotBuild(t, "take_sort_pipeline", sorted, nil)
}

func TestSnapshot_ScalarExprMain(t *testing.T) {
	x := qast.NewVariable(qast.Int(), "x")
	y := qast.NewVariable(qast.Int(), "y")
	sum, err := qast.Add(x, y)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	snapshotBuild(t, "scalar_expr_main", sum, map[string]any{"x": 4, "y": 6})
}
