package builder

import (
	"fmt"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
)

// iteratorType returns the native C++ type spelling for it, declaring any
// bespoke class it needs along the way (spec.md §4.2/§4.6, grounded on
// original_source/src/qit/build/builder.py's get_iterator/get_*_iterator
// family).
func (b *Builder) iteratorType(it qast.Iterator) (string, error) {
	switch n := it.(type) {
	case *qast.RangeIter:
		return "qit::RangeIterator", nil

	case *qast.ProductIter:
		if err := b.declareType(n.Product); err != nil {
			return "", err
		}
		childTypes := make([]string, len(n.Children))
		for i, c := range n.Children {
			t, err := b.iteratorType(c)
			if err != nil {
				return "", err
			}
			childTypes[i] = t
		}
		name, err := b.declareProductIterator(n, childTypes)
		if err != nil {
			return "", err
		}
		return name, nil

	case *qast.ValuesIter:
		return b.declareValuesIterator(n)

	case *qast.TakeT:
		parentType, err := b.iteratorType(n.Parent)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qit::TakeIterator<%s>", parentType), nil

	case *qast.SortT:
		parentType, err := b.iteratorType(n.Parent)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qit::SortIterator<%s>", parentType), nil

	case *qast.MapT:
		parentType, err := b.iteratorType(n.Parent)
		if err != nil {
			return "", err
		}
		if err := b.declareFunction(n.Fn); err != nil {
			return "", err
		}
		ftype, err := b.functorType(n.Fn)
		if err != nil {
			return "", err
		}
		outType := b.elementType(n.Fn.ReturnType)
		return fmt.Sprintf("qit::MapIterator<%s, %s, %s>", parentType, outType, ftype), nil

	case *qast.FilterT:
		parentType, err := b.iteratorType(n.Parent)
		if err != nil {
			return "", err
		}
		if err := b.declareFunction(n.Fn); err != nil {
			return "", err
		}
		ftype, err := b.functorType(n.Fn)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qit::FilterIterator<%s, %s>", parentType, ftype), nil

	case *qast.GenIterAdapter:
		genType, err := b.generatorType(n.Gen)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qit::GeneratorIterator<%s>", genType), nil

	case *qast.SystemIter:
		return b.declareSystemIterator(n)

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled iterator %T", it)
	}
}

// generatorType mirrors iteratorType for the Generator side of the
// algebra.
func (b *Builder) generatorType(g qast.Generator) (string, error) {
	switch n := g.(type) {
	case *qast.RangeGen:
		return "qit::RangeGenerator", nil

	case *qast.ProductGen:
		if err := b.declareType(n.Product); err != nil {
			return "", err
		}
		childTypes := make([]string, len(n.Children))
		for i, c := range n.Children {
			t, err := b.generatorType(c)
			if err != nil {
				return "", err
			}
			childTypes[i] = t
		}
		return b.declareProductGenerator(n, childTypes)

	case *qast.ValuesGen:
		return b.declareValuesGenerator(n)

	case *qast.SequenceGen:
		elemType, err := b.generatorType(n.Elem)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("qit::SequenceGenerator<%s>", elemType), nil

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled generator %T", g)
	}
}

// makeIterator emits the statement(s) constructing a live instance of it
// and returns the local variable name holding it (grounded on
// original_source/src/qit/build/builder.py's make_iterator/
// make_basic_iterator).
func (b *Builder) makeIterator(it qast.Iterator) (string, error) {
	cppType, err := b.iteratorType(it)
	if err != nil {
		return "", err
	}
	switch n := it.(type) {
	case *qast.RangeIter:
		nCode, err := b.exprCode(n.Range.N)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{nCode}), nil

	case *qast.ProductIter:
		args := make([]string, len(n.Children))
		for i, c := range n.Children {
			v, err := b.makeIterator(c)
			if err != nil {
				return "", err
			}
			args[i] = v
		}
		return b.makeInstance(cppType, "i", args), nil

	case *qast.ValuesIter:
		return b.makeInstance(cppType, "i", nil), nil

	case *qast.TakeT:
		parent, err := b.makeIterator(n.Parent)
		if err != nil {
			return "", err
		}
		kCode, err := b.exprCode(n.K)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{parent, kCode}), nil

	case *qast.SortT:
		parent, err := b.makeIterator(n.Parent)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{parent}), nil

	case *qast.MapT:
		parent, err := b.makeIterator(n.Parent)
		if err != nil {
			return "", err
		}
		functor, err := b.makeFunctor(n.Fn)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{parent, functor}), nil

	case *qast.FilterT:
		parent, err := b.makeIterator(n.Parent)
		if err != nil {
			return "", err
		}
		functor, err := b.makeFunctor(n.Fn)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{parent, functor}), nil

	case *qast.GenIterAdapter:
		gen, err := b.makeGenerator(n.Gen)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "i", []string{gen}), nil

	case *qast.SystemIter:
		return b.makeSystemIterator(n, cppType)

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled iterator %T", it)
	}
}

// makeGenerator mirrors makeIterator for Generators.
func (b *Builder) makeGenerator(g qast.Generator) (string, error) {
	cppType, err := b.generatorType(g)
	if err != nil {
		return "", err
	}
	switch n := g.(type) {
	case *qast.RangeGen:
		nCode, err := b.exprCode(n.Range.N)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "g", []string{nCode}), nil

	case *qast.ProductGen:
		args := make([]string, len(n.Children))
		for i, c := range n.Children {
			v, err := b.makeGenerator(c)
			if err != nil {
				return "", err
			}
			args[i] = v
		}
		return b.makeInstance(cppType, "g", args), nil

	case *qast.ValuesGen:
		return b.makeInstance(cppType, "g", nil), nil

	case *qast.SequenceGen:
		elem, err := b.makeGenerator(n.Elem)
		if err != nil {
			return "", err
		}
		kCode, err := b.exprCode(n.K)
		if err != nil {
			return "", err
		}
		return b.makeInstance(cppType, "g", []string{elem, kCode}), nil

	default:
		return "", qerrors.New(qerrors.CompileFailure, "builder: unhandled generator %T", g)
	}
}

// declareProductIterator emits the odometer-order cartesian-product
// iterator class for a Product type (spec.md §4.6, grounded on
// declare_product_iterator): the rightmost field advances fastest, each
// more-significant field advances and resets its right neighbors when the
// current combination is exhausted.
func (b *Builder) declareProductIterator(it *qast.ProductIter, childTypes []string) (string, error) {
	name := b.autoname(it, "ProductIterator")
	if b.checkDeclared(it) {
		return name, nil
	}
	elemType := b.elementType(it.Product)

	b.w.Emptyline()
	b.w.Line("// %s: cartesian product iterator over %s", name, elemType)
	b.w.ClassBegin(name)
	for i, t := range childTypes {
		b.w.Line("%s child%d;", t, i)
	}
	b.w.Line("bool started;")
	b.w.Emptyline()
	b.w.Line("typedef %s value_type;", elemType)
	ctorArgs := make([]string, len(childTypes))
	inits := make([]string, len(childTypes)+1)
	for i, t := range childTypes {
		ctorArgs[i] = fmt.Sprintf("%s c%d", t, i)
		inits[i] = fmt.Sprintf("child%d(c%d)", i, i)
	}
	inits[len(childTypes)] = "started(false)"
	fieldNames := make([]string, len(it.Product.Fields))
	for i, f := range it.Product.Fields {
		fieldNames[i] = f.Name
	}

	b.w.Line("%s(%s) : %s {}", name, joinArgs(ctorArgs), joinArgs(inits))
	b.w.Emptyline()
	b.w.Line("// next() walks the odometer: the rightmost field advances")
	b.w.Line("// fastest; a field that rolls over resets every field to its")
	b.w.Line("// right and carries into its left neighbor.")
	b.w.Line("bool next(value_type &out)")
	b.w.BlockBegin()
	b.w.IfBegin("!started")
	b.w.Line("started = true;")
	for i, fname := range fieldNames {
		b.w.Line("if (!child%d.next(out.%s)) return false;", i, fname)
	}
	b.w.Line("return true;")
	b.w.ElseBegin()
	for i := len(fieldNames) - 1; i >= 0; i-- {
		fname := fieldNames[i]
		b.w.Line("if (child%d.next(out.%s)) return true;", i, fname)
		if i > 0 {
			b.w.Line("child%d.reset();", i)
			b.w.Line("if (!child%d.next(out.%s)) return false;", i, fname)
		} else {
			b.w.Line("return false;")
		}
	}
	b.w.BlockEnd()
	b.w.BlockEnd()
	b.w.Emptyline()
	b.w.Line("void reset()")
	b.w.BlockBegin()
	b.w.Line("started = false;")
	for i := range childTypes {
		b.w.Line("child%d.reset();", i)
	}
	b.w.BlockEnd()
	b.w.ClassEnd()
	return name, nil
}

// declareProductGenerator emits the field-wise-independent product
// generator class (spec.md §4.6).
func (b *Builder) declareProductGenerator(g *qast.ProductGen, childTypes []string) (string, error) {
	name := b.autoname(g, "ProductGenerator")
	if b.checkDeclared(g) {
		return name, nil
	}
	elemType := b.elementType(g.Product)

	b.w.Emptyline()
	b.w.Line("// %s: field-wise product generator over %s", name, elemType)
	b.w.ClassBegin(name)
	for i, t := range childTypes {
		b.w.Line("%s child%d;", t, i)
	}
	b.w.Emptyline()
	b.w.Line("typedef %s value_type;", elemType)
	ctorArgs := make([]string, len(childTypes))
	inits := make([]string, len(childTypes))
	for i, t := range childTypes {
		ctorArgs[i] = fmt.Sprintf("%s c%d", t, i)
		inits[i] = fmt.Sprintf("child%d(c%d)", i, i)
	}
	b.w.Line("%s(%s) : %s {}", name, joinArgs(ctorArgs), joinArgs(inits))
	b.w.Emptyline()
	b.w.Line("value_type generate()")
	b.w.BlockBegin()
	b.w.Line("value_type out;")
	for i, f := range g.Product.Fields {
		b.w.Line("out.%s = child%d.generate();", f.Name, i)
	}
	b.w.Line("return out;")
	b.w.BlockEnd()
	b.w.ClassEnd()
	return name, nil
}

// declareValuesIterator emits the fixed-list iterator class for
// Values(T,[...]) (spec.md §4.2).
func (b *Builder) declareValuesIterator(it *qast.ValuesIter) (string, error) {
	name := b.autoname(it, "ValuesIterator")
	if b.checkDeclared(it) {
		return name, nil
	}
	elemType := b.elementType(it.Values.Elem)

	literals := make([]string, len(it.Values.Values))
	for i, v := range it.Values.Values {
		code, err := b.exprCode(v)
		if err != nil {
			return "", err
		}
		literals[i] = code
	}

	b.w.Emptyline()
	b.w.Line("// %s: enumerated value list", name)
	b.w.ClassBegin(name)
	b.w.Line("size_t pos;")
	b.w.Emptyline()
	b.w.Line("typedef %s value_type;", elemType)
	b.w.Line("%s() : pos(0) {}", name)
	b.w.Emptyline()
	b.w.Line("static const %s *values()", elemType)
	b.w.BlockBegin()
	b.w.Line("static %s v[] = { %s };", elemType, joinArgs(literals))
	b.w.Line("return v;")
	b.w.BlockEnd()
	b.w.Line("bool next(value_type &out)")
	b.w.BlockBegin()
	b.w.Line("if (pos >= %d) return false;", len(literals))
	b.w.Line("out = values()[pos++];")
	b.w.Line("return true;")
	b.w.BlockEnd()
	b.w.Line("void reset() { pos = 0; }")
	b.w.ClassEnd()
	return name, nil
}

// declareValuesGenerator emits the uniform-random-pick generator class
// for Values(T,[...]).generate() (spec.md §4.2).
func (b *Builder) declareValuesGenerator(g *qast.ValuesGen) (string, error) {
	name := b.autoname(g, "ValuesGenerator")
	if b.checkDeclared(g) {
		return name, nil
	}
	elemType := b.elementType(g.Values.Elem)

	literals := make([]string, len(g.Values.Values))
	for i, v := range g.Values.Values {
		code, err := b.exprCode(v)
		if err != nil {
			return "", err
		}
		literals[i] = code
	}

	b.w.Emptyline()
	b.w.Line("// %s: uniform random pick from an enumerated value list", name)
	b.w.ClassBegin(name)
	b.w.Emptyline()
	b.w.Line("typedef %s value_type;", elemType)
	b.w.Line("value_type generate()")
	b.w.BlockBegin()
	b.w.Line("static %s v[] = { %s };", elemType, joinArgs(literals))
	b.w.Line("return v[rand() %% %d];", len(literals))
	b.w.BlockEnd()
	b.w.ClassEnd()
	return name, nil
}
