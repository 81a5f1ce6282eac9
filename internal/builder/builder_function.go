package builder

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
)

// functorType returns the native class name for fn's functor, declaring
// it (and everything it depends on) first.
func (b *Builder) functorType(fn *qast.Function) (string, error) {
	if err := b.declareFunction(fn); err != nil {
		return "", err
	}
	return b.autoname(fn, "Functor"), nil
}

// declareFunction emits fn's functor class exactly once: public members
// for each captured free variable, a constructor binding them, and an
// operator() implementing the body per its BodyKind (spec.md §4.3,
// grounded on original_source/src/qit/build/builder.py's declare_function
// and its write_function_* helpers).
func (b *Builder) declareFunction(fn *qast.Function) error {
	if b.inProgress[fn] {
		return qerrors.New(qerrors.DeclarationCycle, "function %s participates in a declaration cycle", fn.DisplayName())
	}
	if b.checkDeclared(fn) {
		return nil
	}
	b.inProgress[fn] = true
	defer delete(b.inProgress, fn)

	for _, used := range fn.UsedFunctions() {
		if err := b.declareFunction(used); err != nil {
			return err
		}
	}
	if err := b.declareType(fn.ReturnType); err != nil {
		return err
	}
	for _, p := range fn.Params {
		if err := b.declareType(p.Type); err != nil {
			return err
		}
	}
	for _, v := range fn.ReadVars() {
		if err := b.declareType(v.Type_); err != nil {
			return err
		}
	}

	name := b.autoname(fn, "Functor")
	returnType := b.elementType(fn.ReturnType)

	b.w.Emptyline()
	if fn.Name() != "" {
		b.w.Line("// %s", fn.Name())
	}
	b.w.Line("// functor %s", name)
	b.w.ClassBegin(name)

	reads := fn.ReadVars()
	for _, v := range reads {
		b.w.Line("const %s &qit_freevar_%s;", b.elementType(v.Type_), b.ident(v.Name))
	}
	if len(reads) > 0 {
		b.w.Emptyline()
		ctorArgs := make([]string, len(reads))
		inits := make([]string, len(reads))
		for i, v := range reads {
			vn := "qit_freevar_" + b.ident(v.Name)
			ctorArgs[i] = "const " + b.elementType(v.Type_) + " &" + vn + "_"
			inits[i] = vn + "(" + vn + "_)"
		}
		b.w.Line("%s(%s) : %s {}", name, joinArgs(ctorArgs), joinArgs(inits))
	}

	b.w.Emptyline()
	paramDecls := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		pn := b.ident(p.Name)
		if fn.Kind == qast.BodyFromIterator || fn.Kind == qast.BodyFromExpr {
			// these bodies render their parameter Variables as qit_freevar_<name>
			pn = "qit_freevar_" + pn
		}
		paramDecls[i] = b.elementType(p.Type) + " " + pn
	}
	b.w.Line("%s operator()(%s) const", returnType, joinArgs(paramDecls))
	b.w.BlockBegin()
	if err := b.writeFunctionBody(fn); err != nil {
		return err
	}
	b.w.BlockEnd()
	b.w.ClassEnd()
	return nil
}

// writeFunctionBody emits the statements inside a functor's operator(),
// dispatching on BodyKind.
func (b *Builder) writeFunctionBody(fn *qast.Function) error {
	switch fn.Kind {
	case qast.BodyInline:
		return b.writeInlineBody(fn)
	case qast.BodyFromIterator:
		return b.writeIteratorBody(fn)
	case qast.BodyFromExpr:
		return b.writeExprBody(fn)
	case qast.BodyExternal:
		return b.writeExternalBody(fn)
	default:
		return qerrors.New(qerrors.CompileFailure, "builder: function %s has no body", fn.DisplayName())
	}
}

// writeInlineBody resolves {{.name}} substitutions in the template against
// Functions (-> functor type names), Types (-> element type spellings),
// Exprs (-> inline code), and plain values (-> their Go %v spelling), then
// emits the resulting text verbatim (spec.md §4.3 mode 1).
func (b *Builder) writeInlineBody(fn *qast.Function) error {
	subs := map[string]string{}
	for key, v := range fn.InlineSubs {
		rendered, err := b.renderSub(v)
		if err != nil {
			return err
		}
		subs[key] = rendered
	}
	tmpl, err := template.New(fn.DisplayName()).Parse(fn.InlineTemplate)
	if err != nil {
		return qerrors.Wrap(qerrors.CompileFailure, err, "parsing inline template for function %s", fn.DisplayName())
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, subs); err != nil {
		return qerrors.Wrap(qerrors.CompileFailure, err, "rendering inline template for function %s", fn.DisplayName())
	}
	b.w.Text(sb.String())
	return nil
}

func (b *Builder) renderSub(v any) (string, error) {
	switch n := v.(type) {
	case *qast.Function:
		return b.functorType(n)
	case qast.Type:
		if err := b.declareType(n); err != nil {
			return "", err
		}
		return b.elementType(n), nil
	case qast.Expr:
		return b.exprCode(n)
	default:
		return fmt.Sprintf("%v", n), nil
	}
}

// writeIteratorBody materializes fn.IterSource into a vector (Sequence
// mode) or asserts-and-returns its single element (Single mode), per
// spec.md §4.3 mode 2, grounded on builder.py's
// make_sequence_from_iterator/make_element_from_iterator.
func (b *Builder) writeIteratorBody(fn *qast.Function) error {
	varName, err := b.makeIterator(asIteratorForFunction(fn.IterSource))
	if err != nil {
		return err
	}
	elemType := b.elementType(fn.IterSource.OutputType())
	if fn.IterSequence {
		result := b.newID("r")
		b.w.Line("std::vector<%s> %s;", elemType, result)
		b.w.Line("%s %s_elem;", elemType, result)
		b.w.Line("while (%s.next(%s_elem)) %s.push_back(%s_elem);", varName, result, result, result)
		b.w.Line("return %s;", result)
		return nil
	}
	elem := b.newID("r")
	b.w.Line("%s %s;", elemType, elem)
	b.w.Line("if (!%s.next(%s)) qit::fail(\"function %s: source iterator produced no element\");", varName, elem, fn.DisplayName())
	b.w.Line("return %s;", elem)
	return nil
}

// asIteratorForFunction adapts fn.IterSource to an Iterator the same way
// Take/Sort/Map/Filter do (a bare Generator source is allowed for
// from-iterator functions too, per spec.md §4.3's "materializes its
// source").
func asIteratorForFunction(c qast.Collection) qast.Iterator {
	if it, ok := c.(qast.Iterator); ok {
		return it
	}
	return &qast.GenIterAdapter{Gen: c.(qast.Generator)}
}

// writeExprBody emits `return <expr>;` for a BodyFromExpr function.
func (b *Builder) writeExprBody(fn *qast.Function) error {
	code, err := b.exprCode(fn.ExprBody)
	if err != nil {
		return err
	}
	b.w.Line("return %s;", code)
	return nil
}

// writeExternalBody #includes the host-managed file and forwards the
// call positionally to the external C++ function of the same name
// (spec.md §4.3 mode 3).
func (b *Builder) writeExternalBody(fn *qast.Function) error {
	b.includeFile(filepath.Join(b.ExternalDir, fn.ExternalName+".h"))
	args := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		args[i] = b.ident(p.Name)
	}
	b.w.Line("return %s(%s);", fn.ExternalName, joinArgs(args))
	return nil
}

// makeFunctor emits a named local instance of fn's functor, bound to the
// current values of its captured free variables, and returns that local's
// name (grounded on builder.py's make_functor: unlike a FunctionCall used
// inline, Map/Filter/System rule functors are constructed once and
// reused across every element, so they need a durable local rather than
// a throwaway expression).
func (b *Builder) makeFunctor(fn *qast.Function) (string, error) {
	ftype, err := b.functorType(fn)
	if err != nil {
		return "", err
	}
	args, err := b.captureArgs(fn)
	if err != nil {
		return "", err
	}
	return b.makeInstance(ftype, "f", args), nil
}
