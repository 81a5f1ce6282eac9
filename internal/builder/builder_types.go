package builder

import (
	"fmt"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/writer"
)

// declareType emits the native class (if any) backing t, recursing into
// field/element types first so dependencies are always declared before
// their users (spec.md §4.4's "topologically ordered").
func (b *Builder) declareType(t qast.Type) error {
	switch n := t.(type) {
	case *qast.IntType, *qast.BoolType, *qast.RangeType:
		return b.declareAlias(t, "int")

	case *qast.MappingType:
		if b.checkDeclared(n.DeclKey()) {
			return nil
		}
		return b.declareType(n.KV)

	case *qast.KeyValueType:
		if b.checkDeclared(n.DeclKey()) {
			return nil
		}
		return b.declareRecordClass(n.StructType, n.DeclKey(), "key/value record")

	case *qast.StructType:
		if b.checkDeclared(n.DeclKey()) {
			return nil
		}
		return b.declareRecordClass(n, n.DeclKey(), "struct")

	case *qast.ProductType:
		if b.checkDeclared(n.DeclKey()) {
			return nil
		}
		return b.declareRecordClass(n, n.DeclKey(), "product")

	case *qast.SequenceType:
		if b.checkDeclared(n.DeclKey()) {
			return nil
		}
		if err := b.declareType(n.Elem); err != nil {
			return err
		}
		return b.declareAlias(t, "std::vector<"+b.elementType(n.Elem)+">")

	case *qast.ValuesType:
		// No class of its own; the class lives on the iterator/generator
		// node. Still ensure the element type is declared.
		return b.declareType(n.Elem)

	default:
		return qerrors.New(qerrors.CompileFailure, "builder: unhandled type %T", t)
	}
}

// declareAlias emits a typedef for a user-named primitive/sequence type.
// Unnamed types need no declaration of their own.
func (b *Builder) declareAlias(t qast.Type, native string) error {
	if t.Name() == "" {
		return nil
	}
	if b.checkDeclared("alias:" + t.Name()) {
		return nil
	}
	b.w.Line("typedef %s %s;", native, sanitizedName(t.Name()))
	return nil
}

func fieldsOf(t qast.Type) []qast.Field {
	switch n := t.(type) {
	case *qast.ProductType:
		return n.Fields
	case *qast.StructType:
		return n.Fields
	default:
		return nil
	}
}

// declareRecordClass emits the native class for a Product/Struct/KeyValue
// shape: public fields, a field-wise constructor, write(FILE*), field-wise
// ==, and lexicographic < (spec.md §3's record requirements, grounded on
// original_source/src/qit/build/builder.py's declare_product_class).
func (b *Builder) declareRecordClass(t qast.Type, declKey, kind string) error {
	fields := fieldsOf(t)
	for _, f := range fields {
		if err := b.declareType(f.Type); err != nil {
			return err
		}
	}
	name := t.Name()
	if name != "" {
		name = sanitizedName(name)
	} else {
		name = b.autoname(declKey, "Record")
	}
	b.recordClassNames[declKey] = name

	b.w.Emptyline()
	b.w.Line("// %s: %s", name, kind)
	b.w.ClassBegin(name)
	for _, f := range fields {
		b.w.Line("%s %s;", b.elementType(f.Type), b.ident(f.Name))
	}
	b.w.Emptyline()
	b.w.Line("%s() {}", name)
	if len(fields) > 0 {
		args := make([]string, len(fields))
		inits := make([]string, len(fields))
		for i, f := range fields {
			fn := b.ident(f.Name)
			args[i] = fmt.Sprintf("%s %s_", b.elementType(f.Type), fn)
			inits[i] = fmt.Sprintf("%s(%s_)", fn, fn)
		}
		b.w.Line("%s(%s) : %s {}", name, joinArgs(args), joinArgs(inits))
	}
	b.w.Emptyline()
	b.w.Line("void write(FILE *out) const")
	b.w.BlockBegin()
	for _, f := range fields {
		b.w.Line("qit::write(out, %s);", b.ident(f.Name))
	}
	b.w.BlockEnd()
	b.w.Emptyline()
	b.w.Line("bool operator==(const %s &other) const", name)
	b.w.BlockBegin()
	eqParts := make([]string, len(fields))
	for i, f := range fields {
		fn := b.ident(f.Name)
		eqParts[i] = fmt.Sprintf("%s == other.%s", fn, fn)
	}
	if len(eqParts) == 0 {
		b.w.Line("return true;")
	} else {
		b.w.Line("return %s;", joinLogicalAnd(eqParts))
	}
	b.w.BlockEnd()
	b.w.Emptyline()
	b.w.Line("bool operator<(const %s &other) const", name)
	b.w.BlockBegin()
	b.writeLexicographicLess(fields)
	b.w.BlockEnd()
	b.w.ClassEnd()
	return nil
}

func joinLogicalAnd(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " && "
		}
		out += p
	}
	return out
}

// writeLexicographicLess emits field-by-field "if (a < b) return true; if
// (b < a) return false;" chains, ending in `return false;`.
func (b *Builder) writeLexicographicLess(fields []qast.Field) {
	for _, f := range fields {
		fn := b.ident(f.Name)
		b.w.Line("if (%s < other.%s) return true;", fn, fn)
		b.w.Line("if (other.%s < %s) return false;", fn, fn)
	}
	b.w.Line("return false;")
}

// elementType returns the native C++ spelling used for local variables,
// fields, and template arguments of type t.
func (b *Builder) elementType(t qast.Type) string {
	switch n := t.(type) {
	case *qast.IntType:
		return withName(n.Name(), "int")
	case *qast.BoolType:
		return withName(n.Name(), "bool")
	case *qast.RangeType:
		return withName(n.Name(), "int")
	case *qast.MappingType:
		if n.Name() != "" {
			return sanitizedName(n.Name())
		}
		return b.elementType(n.SequenceType)
	case *qast.KeyValueType:
		if n.Name() != "" {
			return sanitizedName(n.Name())
		}
		if name, ok := b.recordClassNames[n.DeclKey()]; ok {
			return name
		}
		return b.autoname(n.DeclKey(), "Record")
	case *qast.StructType:
		if n.Name() != "" {
			return sanitizedName(n.Name())
		}
		if name, ok := b.recordClassNames[n.DeclKey()]; ok {
			return name
		}
		return b.autoname(n.DeclKey(), "Record")
	case *qast.ProductType:
		if n.Name() != "" {
			return sanitizedName(n.Name())
		}
		if name, ok := b.recordClassNames[n.DeclKey()]; ok {
			return name
		}
		return b.autoname(n.DeclKey(), "Record")
	case *qast.SequenceType:
		if n.Name() != "" {
			return sanitizedName(n.Name())
		}
		return "std::vector<" + b.elementType(n.Elem) + ">"
	case *qast.ValuesType:
		return b.elementType(n.Elem)
	default:
		return "/* unknown type */"
	}
}

func withName(userName, native string) string {
	if userName != "" {
		return sanitizedName(userName)
	}
	return native
}

// sanitizedName is the single chokepoint for turning a user-supplied
// Type.Name() into the identifier elementType actually emits.
func sanitizedName(userName string) string {
	return writer.SanitizeIdent(userName)
}
