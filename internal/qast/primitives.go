package qast

import (
	"io"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// IntType is a signed 32-bit integer, little-endian on the wire.
type IntType struct{ name string }

// Int returns the Int type, optionally named.
func Int(name ...string) *IntType {
	t := &IntType{}
	if len(name) > 0 {
		t.name = name[0]
	}
	return t
}

func (t *IntType) DeclKey() string { return "Int" }
func (t *IntType) Name() string    { return t.name }

func (t *IntType) Equal(other Type) bool {
	_, ok := other.(*IntType)
	return ok
}

func (t *IntType) CheckValue(v any) error {
	switch v.(type) {
	case int, int32, int64:
		return nil
	default:
		return qerrors.New(qerrors.TypeMismatch, "Int expects a host integer, got %T", v)
	}
}

func (t *IntType) Read(r *wire.Reader) (any, error) {
	v, err := r.ReadInt()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return int(v), nil
}

// AsInt normalizes an Int-typed host payload to int.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}

// BoolType is a single-byte 0/1 boolean.
type BoolType struct{ name string }

// Bool returns the Bool type, optionally named.
func Bool(name ...string) *BoolType {
	t := &BoolType{}
	if len(name) > 0 {
		t.name = name[0]
	}
	return t
}

func (t *BoolType) DeclKey() string { return "Bool" }
func (t *BoolType) Name() string    { return t.name }

func (t *BoolType) Equal(other Type) bool {
	_, ok := other.(*BoolType)
	return ok
}

func (t *BoolType) CheckValue(v any) error {
	if _, ok := v.(bool); !ok {
		return qerrors.New(qerrors.TypeMismatch, "Bool expects a host boolean, got %T", v)
	}
	return nil
}

func (t *BoolType) Read(r *wire.Reader) (any, error) {
	v, err := r.ReadBool()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}
