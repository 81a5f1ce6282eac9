package qast

import (
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// ValuesType is a finite enumerated set of values of Elem, built from
// arbitrary Expr nodes (which may themselves capture free variables;
// spec.md §3 "Values(T, [v1,…])").
type ValuesType struct {
	Elem   Type
	Values []Expr
	name   string
}

// NewValues builds a Values(Elem, values) type. An empty value list is
// rejected eagerly per spec.md §9 "Empty Values sets": the reference
// source aborts at runtime on an empty switch's default branch; this
// port rejects it at construction instead.
func NewValues(elem Type, values ...Expr) (*ValuesType, error) {
	if len(values) == 0 {
		return nil, qerrors.New(qerrors.TypeMismatch, "Values requires at least one value")
	}
	for i, v := range values {
		if !v.OutputType().Equal(elem) {
			return nil, qerrors.New(qerrors.TypeMismatch, "Values element %d has the wrong type", i)
		}
	}
	return &ValuesType{Elem: elem, Values: values}, nil
}

func (t *ValuesType) DeclKey() string { return t.Elem.DeclKey() }
func (t *ValuesType) Name() string    { return t.name }

func (t *ValuesType) Equal(other Type) bool {
	o, ok := other.(*ValuesType)
	return ok && t.Elem.Equal(o.Elem)
}

func (t *ValuesType) CheckValue(v any) error {
	return t.Elem.CheckValue(v)
}

func (t *ValuesType) Read(r *wire.Reader) (any, error) {
	v, err := t.Elem.Read(r)
	if err == io.EOF {
		return nil, io.EOF
	}
	return v, err
}

// FreeVars returns the union of free variables captured across every
// value expression in the set.
func (t *ValuesType) FreeVars() VarSet {
	sets := make([]VarSet, len(t.Values))
	for i, v := range t.Values {
		sets[i] = v.FreeVars()
	}
	return Union(sets...)
}
