package builder

import (
	"fmt"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
)

// exprCode renders e as an inline C++ expression. Unlike makeIterator/
// makeFunctor, this never emits a statement of its own: it is used
// wherever an Expr appears as a sub-expression (constructor argument,
// inline-template substitution, function-call argument).
func (b *Builder) exprCode(e qast.Expr) (string, error) {
	switch n := e.(type) {
	case *qast.Value:
		return b.valueLiteral(n.Type_, n.Payload)

	case *qast.Variable:
		return "qit_freevar_" + b.ident(n.Name), nil

	case *qast.FunctionCall:
		if err := b.declareFunction(n.Fn); err != nil {
			return "", err
		}
		ftype, err := b.functorType(n.Fn)
		if err != nil {
			return "", err
		}
		captureArgs, err := b.captureArgs(n.Fn)
		if err != nil {
			return "", err
		}
		callArgs := make([]string, len(n.Args))
		for i, a := range n.Args {
			code, err := b.exprCode(a)
			if err != nil {
				return "", err
			}
			callArgs[i] = code
		}
		return fmt.Sprintf("%s(%s)(%s)", ftype, joinArgs(captureArgs), joinArgs(callArgs)), nil

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled expression %T", e)
	}
}

// captureArgs renders the current-value expressions for a function's
// captured free variables, in declaration order, for use as constructor
// arguments to its functor.
func (b *Builder) captureArgs(f *qast.Function) ([]string, error) {
	vars := f.ReadVars()
	args := make([]string, len(vars))
	for i, v := range vars {
		args[i] = "qit_freevar_" + b.ident(v.Name)
	}
	return args, nil
}

// valueLiteral renders a host value of type t as an inline C++ expression
// literal (spec.md §3's "construct a literal Value"): scalars render
// directly; Products/Structs/Sequences render as aggregate-initializer or
// constructor-call expressions once their class is declared.
func (b *Builder) valueLiteral(t qast.Type, payload any) (string, error) {
	if err := t.CheckValue(payload); err != nil {
		return "", err
	}
	switch n := t.(type) {
	case *qast.IntType:
		return fmt.Sprintf("%d", qast.AsInt(payload)), nil

	case *qast.BoolType:
		if bv, ok := payload.(bool); ok && bv {
			return "true", nil
		}
		return "false", nil

	case *qast.RangeType:
		return fmt.Sprintf("%d", qast.AsInt(payload)), nil

	case *qast.ProductType, *qast.StructType, *qast.KeyValueType:
		if err := b.declareType(t); err != nil {
			return "", err
		}
		fields := fieldsOf(dereferenceStructLike(n))
		tup, ok := payload.([]any)
		if !ok || len(tup) != len(fields) {
			return "", qerrors.New(qerrors.TypeMismatch, "value literal payload shape mismatch for %s", t.DeclKey())
		}
		parts := make([]string, len(fields))
		for i, f := range fields {
			code, err := b.valueLiteral(f.Type, tup[i])
			if err != nil {
				return "", err
			}
			parts[i] = code
		}
		return fmt.Sprintf("%s(%s)", b.elementType(t), joinArgs(parts)), nil

	case *qast.SequenceType:
		if err := b.declareType(t); err != nil {
			return "", err
		}
		lst, ok := payload.([]any)
		if !ok {
			return "", qerrors.New(qerrors.TypeMismatch, "value literal payload is not a list for %s", t.DeclKey())
		}
		parts := make([]string, len(lst))
		for i, el := range lst {
			code, err := b.valueLiteral(n.Elem, el)
			if err != nil {
				return "", err
			}
			parts[i] = code
		}
		return fmt.Sprintf("%s{%s}", b.elementType(t), joinArgs(parts)), nil

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled value literal type %T", t)
	}
}

// dereferenceStructLike normalizes KeyValueType to its embedded StructType
// so fieldsOf can read its field list.
func dereferenceStructLike(t qast.Type) qast.Type {
	if kv, ok := t.(*qast.KeyValueType); ok {
		return kv.StructType
	}
	return t
}
