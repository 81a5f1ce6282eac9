package builder

import (
	"sort"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
)

// Build runs the declaration pass and emission pass over root (an
// Iterator, a Generator, or a bare Expr — spec.md §8 scenario 6 allows a
// scalar root) and returns the complete C++ translation unit.
//
// args binds every free variable reachable from root to a host value;
// free variables are resolved at build time, not at native-program
// runtime (spec.md §4.5: "the driver binds them once in main()"), so
// re-running with different argument values means re-building and
// re-compiling. An unbound free variable is UnboundVariable; a key in
// args that names no free variable is SuperfluousArgument.
func (b *Builder) Build(root any, args map[string]any) (string, error) {
	free, err := rootFreeVars(root)
	if err != nil {
		return "", err
	}
	sorted := free.Sorted()
	if err := checkArgCoverage(sorted, args); err != nil {
		return "", err
	}

	b.w.Line("#include \"qit.h\"")
	b.w.Line("#include <cstdio>")
	b.w.Line("#include <cstdlib>")
	b.w.Line("#include <vector>")
	b.w.Line("#include <algorithm>")
	b.w.Emptyline()

	switch n := root.(type) {
	case qast.Iterator:
		if err := b.declareType(n.OutputType()); err != nil {
			return "", err
		}
		if _, err := b.iteratorType(n); err != nil {
			return "", err
		}
		b.emitMainOpen()
		if err := b.emitFreeVarBindings(sorted, args); err != nil {
			return "", err
		}
		varName, err := b.makeIterator(n)
		if err != nil {
			return "", err
		}
		elemType := b.elementType(n.OutputType())
		elem := b.newID("elem")
		b.w.Line("%s %s;", elemType, elem)
		b.w.Line("while (%s.next(%s))", varName, elem)
		b.w.BlockBegin()
		b.w.Line("qit::write(out, %s);", elem)
		b.w.BlockEnd()
		b.emitMainClose()

	case qast.Generator:
		adapter := &qast.GenIterAdapter{Gen: n}
		if err := b.declareType(n.OutputType()); err != nil {
			return "", err
		}
		if _, err := b.iteratorType(adapter); err != nil {
			return "", err
		}
		b.emitMainOpen()
		if err := b.emitFreeVarBindings(sorted, args); err != nil {
			return "", err
		}
		varName, err := b.makeIterator(adapter)
		if err != nil {
			return "", err
		}
		elemType := b.elementType(n.OutputType())
		elem := b.newID("elem")
		b.w.Line("%s %s;", elemType, elem)
		b.w.Line("while (%s.next(%s))", varName, elem)
		b.w.BlockBegin()
		b.w.Line("qit::write(out, %s);", elem)
		b.w.BlockEnd()
		b.emitMainClose()

	case qast.Expr:
		if err := b.declareType(n.OutputType()); err != nil {
			return "", err
		}
		code, err := b.exprCode(n)
		if err != nil {
			return "", err
		}
		b.emitMainOpen()
		if err := b.emitFreeVarBindings(sorted, args); err != nil {
			return "", err
		}
		b.w.Line("qit::write(out, %s);", code)
		b.emitMainClose()

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: root is neither a Collection nor an Expr (%T)", root)
	}

	return b.Source(), nil
}

func rootFreeVars(root any) (qast.VarSet, error) {
	switch n := root.(type) {
	case qast.Iterator:
		return n.FreeVars(), nil
	case qast.Generator:
		return n.FreeVars(), nil
	case qast.Expr:
		return n.FreeVars(), nil
	default:
		return nil, qerrors.New(qerrors.CompileFailure, "builder: root is neither a Collection nor an Expr (%T)", root)
	}
}

func checkArgCoverage(vars []*qast.Variable, args map[string]any) error {
	need := make(map[string]bool, len(vars))
	for _, v := range vars {
		need[v.Name] = true
		if _, ok := args[v.Name]; !ok {
			return qerrors.New(qerrors.UnboundVariable, "free variable %q has no bound value", v.Name)
		}
	}
	names := make([]string, 0, len(args))
	for k := range args {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if !need[k] {
			return qerrors.New(qerrors.SuperfluousArgument, "argument %q does not bind any free variable in this graph", k)
		}
	}
	return nil
}

func (b *Builder) emitMainOpen() {
	b.w.Line("int main(int argc, char **argv)")
	b.w.BlockBegin()
	b.w.Line("FILE *out = fopen(argv[1], \"wb\");")
	b.w.IfBegin("!out")
	b.w.Line("return 1;")
	b.w.BlockEnd()
}

func (b *Builder) emitMainClose() {
	b.w.Line("fclose(out);")
	b.w.Line("return 0;")
	b.w.BlockEnd()
}

// emitFreeVarBindings declares each free variable's storage in name
// order, initialized from its bound host value (spec.md §4.5).
func (b *Builder) emitFreeVarBindings(vars []*qast.Variable, args map[string]any) error {
	for _, v := range vars {
		literal, err := b.valueLiteral(v.Type_, args[v.Name])
		if err != nil {
			return qerrors.Wrap(qerrors.TypeMismatch, err, "binding free variable %q", v.Name)
		}
		b.w.Line("const %s qit_freevar_%s = %s;", b.elementType(v.Type_), b.ident(v.Name), literal)
	}
	return nil
}
