package qast

import (
	"io"

	"github.com/cwbudde/go-qit/internal/wire"
)

// RangeType denotes the integers [0,n) for some bound expression n,
// which may itself reference a free variable (spec.md §3 "Range(n)").
// Its native element representation is plain int, identical to IntType;
// n only affects how the *iterator*/*generator* for this range is
// constructed (see internal/builder), not the type's wire shape.
type RangeType struct {
	N    Expr
	name string
}

// NewRange builds Range(n).
func NewRange(n Expr) *RangeType {
	return &RangeType{N: n}
}

func (t *RangeType) DeclKey() string { return "Range" }
func (t *RangeType) Name() string    { return t.name }

func (t *RangeType) Equal(other Type) bool {
	_, ok := other.(*RangeType)
	return ok
}

func (t *RangeType) CheckValue(v any) error {
	return (&IntType{}).CheckValue(v)
}

func (t *RangeType) Read(r *wire.Reader) (any, error) {
	v, err := r.ReadInt()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return int(v), nil
}

// FreeVars returns the free variables read by this range's bound
// expression.
func (t *RangeType) FreeVars() VarSet {
	return t.N.FreeVars()
}

// Iterate returns the iterator `0,1,…,n-1` (spec.md §4.2).
func (t *RangeType) Iterate() (Iterator, error) {
	return &RangeIter{Range: t}, nil
}

// Generate returns a generator yielding a uniform random integer in
// [0,n) per call (spec.md §4.2).
func (t *RangeType) Generate() (Generator, error) {
	return &RangeGen{Range: t}, nil
}
