// Package qast defines the qit type algebra and expression/iterator/
// generator DAG: the host-side representation described in spec.md §3-4.
// Nodes here carry no native-emission logic themselves (that lives in
// internal/builder, which type-switches over these node kinds); qast is
// the pure data model plus the host-observable behaviors that do not
// require a builder: structural equality, free-variable collection, and
// wire-format read/write-shape.
package qast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/wire"
)

// Type is a value-shape descriptor: a primitive, product, struct,
// sequence, mapping, or enumerated-values type. Every Type knows its own
// structural declaration key (for the emit-once invariant and auto-name
// memoization, spec.md §3 "Auto-naming is stable"), how to type-check a
// host payload, and how to read a host value back from the wire.
type Type interface {
	// DeclKey is the structural identity under which this type collapses
	// with other instances for declaration and auto-naming purposes.
	// Two types with the same DeclKey are declared at most once between
	// them, matching spec.md's "Type equality is structural" invariant.
	DeclKey() string
	// Name is the user-supplied name, or "" if this type should receive
	// an auto-name on first emission.
	Name() string
	// Equal reports structural equality (field names, field types,
	// recursively).
	Equal(other Type) bool
	// CheckValue validates a host payload against this type's shape,
	// returning a TypeMismatch QitError on mismatch.
	CheckValue(v any) error
	// Read deserializes one value from r. Returns io.EOF if zero bytes
	// were available at the start of this value (a clean element
	// boundary); any error after that point is IncompleteRecord.
	Read(r *wire.Reader) (any, error)
}

// Field is one named, typed slot of a Product or Struct.
type Field struct {
	Type Type
	Name string
}

func fieldKeys(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, f.Type.DeclKey())
	}
	return strings.Join(parts, ",")
}

func validateFieldNames(fields []Field) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return qerrors.New(qerrors.DuplicateField, "duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
