package qast

import (
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// StructType has the same shape as ProductType but is used when the host
// wants a nominal record rather than a positional one (spec.md §3). The
// builder auto-names both kinds with the same "Record" prefix; two
// otherwise-identical field lists constructed through different
// constructors still collapse to the type they were declared as, because
// DeclKey embeds the constructor kind.
type StructType struct {
	Fields []Field
	name   string
}

// NewStruct builds a Struct type from explicit fields. A field left with
// an empty Name is auto-named "v{index}" (see NewProduct).
func NewStruct(fields ...Field) (*StructType, error) {
	fields = autonameFields(fields)
	if err := validateFieldNames(fields); err != nil {
		return nil, err
	}
	return &StructType{Fields: fields}, nil
}

// NamedStruct is NewStruct with a user-supplied declaration name.
func NamedStruct(name string, fields ...Field) (*StructType, error) {
	s, err := NewStruct(fields...)
	if err != nil {
		return nil, err
	}
	s.name = name
	return s, nil
}

func (t *StructType) DeclKey() string { return "Struct(" + fieldKeys(t.Fields) + ")" }
func (t *StructType) Name() string    { return t.name }

func (t *StructType) Equal(other Type) bool {
	o, ok := other.(*StructType)
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

func (t *StructType) CheckValue(v any) error {
	tup, ok := v.([]any)
	if !ok || len(tup) != len(t.Fields) {
		return qerrors.New(qerrors.TypeMismatch, "Struct expects a %d-tuple, got %T", len(t.Fields), v)
	}
	for i, f := range t.Fields {
		if err := f.Type.CheckValue(tup[i]); err != nil {
			return qerrors.Wrap(qerrors.TypeMismatch, err, "field %q", f.Name)
		}
	}
	return nil
}

func (t *StructType) Read(r *wire.Reader) (any, error) {
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
			return nil, qerrors.New(qerrors.IncompleteRecord, "struct field %q missing", f.Name)
		}
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// KeyValueType is the Struct specialization with exactly two fields, key
// and value, plus Key/Value/Min/Max helper function constructors
// (spec.md §3, grounded on original_source/src/qit/base/struct.py's
// KeyValue class).
type KeyValueType struct {
	*StructType
	KeyType   Type
	ValueType Type
}

// NewKeyValue builds a KeyValue(key, value) type.
func NewKeyValue(key, value Type) *KeyValueType {
	s, _ := NewStruct(Field{Type: key, Name: "key"}, Field{Type: value, Name: "value"})
	return &KeyValueType{StructType: s, KeyType: key, ValueType: value}
}

// Equal overrides the embedded StructType.Equal, which only matches other
// *StructType receivers: a *KeyValueType's concrete type never satisfies
// that assertion, even via embedding, so without this override two
// KeyValueTypes would never compare equal to each other.
func (t *KeyValueType) Equal(other Type) bool {
	o, ok := other.(*KeyValueType)
	if !ok {
		return false
	}
	return t.KeyType.Equal(o.KeyType) && t.ValueType.Equal(o.ValueType)
}

// KeyFn returns a function `key(kv) -> K` projecting the key field.
func (t *KeyValueType) KeyFn() *Function {
	f := NewFunction().Takes(t, "keyval").Returns(t.KeyType)
	f.Code("return keyval.key;", nil)
	return f
}

// ValueFn returns a function `value(kv) -> V` projecting the value field.
func (t *KeyValueType) ValueFn() *Function {
	f := NewFunction().Takes(t, "keyval").Returns(t.ValueType)
	f.Code("return keyval.value;", nil)
	return f
}

// MaxFn returns a function picking the KeyValue with the larger value.
func (t *KeyValueType) MaxFn() *Function {
	f := NewFunction().Takes(t, "keyval1").Takes(t, "keyval2").Returns(t.StructType)
	f.Code("return keyval1.value < keyval2.value ? keyval2 : keyval1;", nil)
	return f
}

// MinFn returns a function picking the KeyValue with the smaller value.
func (t *KeyValueType) MinFn() *Function {
	f := NewFunction().Takes(t, "keyval1").Takes(t, "keyval2").Returns(t.StructType)
	f.Code("return keyval1.value > keyval2.value ? keyval2 : keyval1;", nil)
	return f
}
