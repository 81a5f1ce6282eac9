package qast

import "github.com/cwbudde/go-qit/internal/qerrors"

// Collection is a node that denotes a set of values: an Iterator
// (finite, restartable) or a Generator (unbounded, random). spec.md §3/
// §4.2.
type Collection interface {
	OutputType() Type
	FreeVars() VarSet
}

// Iterator is a finite, restartable, ordered sequence of values of one
// type.
type Iterator interface {
	Collection
	isIterator()
}

// Generator is an unbounded random stream of values of one type.
type Generator interface {
	Collection
	isGenerator()
}

// Iterable is implemented by types that can enumerate their own value
// space (Range, Product, Values per spec.md §4.2's primitive
// constructors).
type Iterable interface {
	Iterate() (Iterator, error)
}

// Generatable is implemented by types that can produce a random stream
// of their own values (Range, Product, Values per spec.md §4.2).
type Generatable interface {
	Generate() (Generator, error)
}

// asIterator adapts any Collection to an Iterator, wrapping a Generator
// through GeneratorIterator (spec.md §9's "Action-system emission
// fan-out" note and the builder's get_generator_iterator multiple
// dispatch): every transformation (take/sort/map/filter) is defined over
// Iterators in the runtime header, so a Generator parent is always first
// adapted into an infinite, reset-less Iterator view.
func asIterator(c Collection) Iterator {
	if it, ok := c.(Iterator); ok {
		return it
	}
	if g, ok := c.(Generator); ok {
		return &GenIterAdapter{Gen: g}
	}
	panic("qast: Collection is neither Iterator nor Generator")
}

// GenIterAdapter adapts a Generator into an infinite Iterator: next
// always succeeds (by generating), reset is a no-op. Emitted natively as
// qit::GeneratorIterator<G> (spec.md §6 build boundary).
type GenIterAdapter struct {
	Gen Generator
}

func (a *GenIterAdapter) OutputType() Type { return a.Gen.OutputType() }
func (a *GenIterAdapter) FreeVars() VarSet { return a.Gen.FreeVars() }
func (*GenIterAdapter) isIterator()        {}

// RangeIter is Range(n).iterate(): the sequence 0,1,…,n-1.
type RangeIter struct {
	Range *RangeType
}

func (i *RangeIter) OutputType() Type { return i.Range }
func (i *RangeIter) FreeVars() VarSet { return i.Range.N.FreeVars() }
func (*RangeIter) isIterator()        {}

// RangeGen is Range(n).generate(): a uniform random integer in [0,n)
// per call.
type RangeGen struct {
	Range *RangeType
}

func (g *RangeGen) OutputType() Type { return g.Range }
func (g *RangeGen) FreeVars() VarSet { return g.Range.N.FreeVars() }
func (*RangeGen) isGenerator()       {}

// ProductIter is Product(...).iterate(): cartesian product in odometer
// order (spec.md §4.6).
type ProductIter struct {
	Product  *ProductType
	Children []Iterator
}

func (i *ProductIter) OutputType() Type { return i.Product }
func (i *ProductIter) FreeVars() VarSet {
	sets := make([]VarSet, len(i.Children))
	for k, c := range i.Children {
		sets[k] = c.FreeVars()
	}
	return Union(sets...)
}
func (*ProductIter) isIterator() {}

// ProductGen is Product(...).generate(): field-wise independent
// generation.
type ProductGen struct {
	Product  *ProductType
	Children []Generator
}

func (g *ProductGen) OutputType() Type { return g.Product }
func (g *ProductGen) FreeVars() VarSet {
	sets := make([]VarSet, len(g.Children))
	for k, c := range g.Children {
		sets[k] = c.FreeVars()
	}
	return Union(sets...)
}
func (*ProductGen) isGenerator() {}

// Iterate builds the per-field iterators recursively and returns the
// cartesian-product Iterator.
func (t *ProductType) Iterate() (Iterator, error) {
	children := make([]Iterator, len(t.Fields))
	for idx, f := range t.Fields {
		it, err := iterateField(f.Type)
		if err != nil {
			return nil, qerrors.Wrap(qerrors.TypeMismatch, err, "field %q is not iterable", f.Name)
		}
		children[idx] = it
	}
	return &ProductIter{Product: t, Children: children}, nil
}

// Generate builds the per-field generators recursively and returns the
// field-wise-independent Generator.
func (t *ProductType) Generate() (Generator, error) {
	children := make([]Generator, len(t.Fields))
	for idx, f := range t.Fields {
		g, err := generateField(f.Type)
		if err != nil {
			return nil, qerrors.Wrap(qerrors.TypeMismatch, err, "field %q is not generatable", f.Name)
		}
		children[idx] = g
	}
	return &ProductGen{Product: t, Children: children}, nil
}

func iterateField(t Type) (Iterator, error) {
	if it, ok := t.(Iterable); ok {
		return it.Iterate()
	}
	return nil, qerrors.New(qerrors.TypeMismatch, "type %s has no iterate()", t.DeclKey())
}

func generateField(t Type) (Generator, error) {
	if g, ok := t.(Generatable); ok {
		return g.Generate()
	}
	return nil, qerrors.New(qerrors.TypeMismatch, "type %s has no generate()", t.DeclKey())
}

// ValuesIter is Values(T,[v1,…]).iterate(): in index order, one
// emission per index, then end; resettable.
type ValuesIter struct {
	Values *ValuesType
}

func (i *ValuesIter) OutputType() Type { return i.Values.Elem }
func (i *ValuesIter) FreeVars() VarSet { return i.Values.FreeVars() }
func (*ValuesIter) isIterator()        {}

// ValuesGen is Values(T,[v1,…]).generate(): a uniform random element
// from the list.
type ValuesGen struct {
	Values *ValuesType
}

func (g *ValuesGen) OutputType() Type { return g.Values.Elem }
func (g *ValuesGen) FreeVars() VarSet { return g.Values.FreeVars() }
func (*ValuesGen) isGenerator()       {}

// Iterate returns the Values iterator.
func (t *ValuesType) Iterate() (Iterator, error) { return &ValuesIter{Values: t}, nil }

// Generate returns the Values generator.
func (t *ValuesType) Generate() (Generator, error) { return &ValuesGen{Values: t}, nil }

// SequenceGen is Sequence(T,k).generate(): a vector of length k whose
// elements are drawn from T's generator (spec.md §4.2). K must be set on
// the SequenceType via NewFixedSequence.
type SequenceGen struct {
	Seq  *SequenceType
	K    Expr
	Elem Generator
}

func (g *SequenceGen) OutputType() Type { return g.Seq }
func (g *SequenceGen) FreeVars() VarSet { return Union(g.K.FreeVars(), g.Elem.FreeVars()) }
func (*SequenceGen) isGenerator()       {}

// Generate returns the fixed-length Sequence generator. Requires the
// type to have been built with NewFixedSequence (so a generation count
// is available) and an element type implementing Generatable.
func (t *SequenceType) Generate() (Generator, error) {
	if t.k == nil {
		return nil, qerrors.New(qerrors.TypeMismatch, "Sequence has no generation count; build it with NewFixedSequence")
	}
	elemGen, err := generateField(t.Elem)
	if err != nil {
		return nil, err
	}
	return &SequenceGen{Seq: t, K: t.k, Elem: elemGen}, nil
}

// Take yields at most the first k elements of parent, then stops;
// reset() rewinds the parent and the counter (spec.md §4.2).
type TakeT struct {
	Parent Iterator
	K      Expr
}

func Take(parent Collection, k Expr) *TakeT {
	return &TakeT{Parent: asIterator(parent), K: k}
}

func (t *TakeT) OutputType() Type { return t.Parent.OutputType() }
func (t *TakeT) FreeVars() VarSet { return Union(t.Parent.FreeVars(), t.K.FreeVars()) }
func (*TakeT) isIterator()        {}

// Sort consumes the parent to exhaustion into a buffer, sorts using the
// element type's <, then replays (spec.md §4.2).
type SortT struct {
	Parent Iterator
}

func Sort(parent Collection) *SortT {
	return &SortT{Parent: asIterator(parent)}
}

func (t *SortT) OutputType() Type { return t.Parent.OutputType() }
func (t *SortT) FreeVars() VarSet { return t.Parent.FreeVars() }
func (*SortT) isIterator()        {}

// Map yields f(x) for each parent x (spec.md §4.2). f must be a
// 1-argument function whose parameter type matches the parent's element
// type.
type MapT struct {
	Parent Iterator
	Fn     *Function
}

func NewMap(parent Collection, fn *Function) (*MapT, error) {
	it := asIterator(parent)
	if len(fn.Params) != 1 {
		return nil, qerrors.New(qerrors.TypeMismatch, "map function must take exactly one argument")
	}
	if !fn.Params[0].Type.Equal(it.OutputType()) {
		return nil, qerrors.New(qerrors.TypeMismatch, "map function parameter type does not match the parent element type")
	}
	return &MapT{Parent: it, Fn: fn}, nil
}

func (t *MapT) OutputType() Type { return t.Fn.ReturnType }
func (t *MapT) FreeVars() VarSet { return Union(t.Parent.FreeVars(), t.Fn.FreeVars()) }
func (*MapT) isIterator()        {}

// Filter yields only x for which p(x) is true, preserving order and
// restartability (spec.md §4.2). p must return Bool.
type FilterT struct {
	Parent Iterator
	Fn     *Function
}

func NewFilter(parent Collection, fn *Function) (*FilterT, error) {
	it := asIterator(parent)
	if len(fn.Params) != 1 {
		return nil, qerrors.New(qerrors.TypeMismatch, "filter predicate must take exactly one argument")
	}
	if !fn.Params[0].Type.Equal(it.OutputType()) {
		return nil, qerrors.New(qerrors.TypeMismatch, "filter predicate parameter type does not match the parent element type")
	}
	if _, ok := fn.ReturnType.(*BoolType); !ok {
		return nil, qerrors.New(qerrors.TypeMismatch, "filter predicate must return Bool")
	}
	return &FilterT{Parent: it, Fn: fn}, nil
}

func (t *FilterT) OutputType() Type { return t.Parent.OutputType() }
func (t *FilterT) FreeVars() VarSet { return Union(t.Parent.FreeVars(), t.Fn.FreeVars()) }
func (*FilterT) isIterator()        {}
