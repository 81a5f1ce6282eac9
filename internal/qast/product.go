package qast

import (
	"fmt"
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// ProductType is a positional record with named fields, emitted as a
// native class with public fields, default and field-wise constructors,
// write(FILE*), lexicographic <, and field-wise == (spec.md §3).
type ProductType struct {
	Fields []Field
	name   string
}

// NewProduct builds a Product type from explicit fields. A field left
// with an empty Name is auto-named "v{index}", matching
// original_source/src/qit/base/struct.py's Struct constructor (bare
// types, e.g. Struct(Int(), Int()), auto-name their positions). Field
// names, once resolved, must be unique.
func NewProduct(fields ...Field) (*ProductType, error) {
	fields = autonameFields(fields)
	if err := validateFieldNames(fields); err != nil {
		return nil, err
	}
	return &ProductType{Fields: fields}, nil
}

func autonameFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			f.Name = fmt.Sprintf("v%d", i)
		}
		out[i] = f
	}
	return out
}

// NamedProduct is NewProduct with a user-supplied declaration name.
func NamedProduct(name string, fields ...Field) (*ProductType, error) {
	p, err := NewProduct(fields...)
	if err != nil {
		return nil, err
	}
	p.name = name
	return p, nil
}

func (t *ProductType) DeclKey() string { return "Product(" + fieldKeys(t.Fields) + ")" }
func (t *ProductType) Name() string    { return t.name }

func (t *ProductType) Equal(other Type) bool {
	o, ok := other.(*ProductType)
	if !ok || len(o.Fields) != len(t.Fields) {
		return false
	}
	for i, f := range t.Fields {
		if f.Name != o.Fields[i].Name || !f.Type.Equal(o.Fields[i].Type) {
			return false
		}
	}
	return true
}

func (t *ProductType) CheckValue(v any) error {
	tup, ok := v.([]any)
	if !ok || len(tup) != len(t.Fields) {
		return qerrors.New(qerrors.TypeMismatch, "Product expects a %d-tuple, got %T", len(t.Fields), v)
	}
	for i, f := range t.Fields {
		if err := f.Type.CheckValue(tup[i]); err != nil {
			return qerrors.Wrap(qerrors.TypeMismatch, err, "field %q", f.Name)
		}
	}
	return nil
}

func (t *ProductType) Read(r *wire.Reader) (any, error) {
	if len(t.Fields) == 0 {
		return []any{}, nil
	}
	out := make([]any, len(t.Fields))
	for i, f := range t.Fields {
		v, err := f.Type.Read(r)
		if err == io.EOF {
			if i == 0 {
				return nil, io.EOF
			}
			return nil, qerrors.New(qerrors.IncompleteRecord, "product field %q missing", f.Name)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

var _ fmt.Stringer = (*ProductType)(nil)

func (t *ProductType) String() string {
	return "Product(" + fieldKeys(t.Fields) + ")"
}
