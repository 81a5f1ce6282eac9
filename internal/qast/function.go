package qast

// BodyKind selects which of the three construction modes (spec.md §4.3)
// a Function's body uses.
type BodyKind int

const (
	// BodyInline is a template text referencing parameters and named
	// substitutions, resolved at emission time.
	BodyInline BodyKind = iota
	// BodyFromIterator materializes a Collection into a vector, or
	// (IterSequence false) asserts and returns its one element.
	BodyFromIterator
	// BodyFromExpr returns the value of a fixed Expr, closing over
	// whichever free variables/params it reads.
	BodyFromExpr
	// BodyExternal forwards to a host-provided C++ function of the same
	// name, included from a host-managed file.
	BodyExternal
)

// Function is a small closure: fixed parameters, an optional set of
// captured free variables, and a body (spec.md §3 "Functions", §4.3).
// Overloads are disallowed: Name, if non-empty, must be unique among
// emitted functions (spec.md §4.3); auto-named functions are assigned
// ids at declaration time by the builder, not here.
type Function struct {
	name       string
	Params     []Field
	ReturnType Type

	reads []*Variable
	uses  []*Function

	Kind BodyKind

	// BodyInline
	InlineTemplate string
	InlineSubs     map[string]any

	// BodyFromIterator
	IterSource   Collection
	IterSequence bool // true: materialize to vector; false: assert single element

	// BodyFromExpr
	ExprBody Expr

	// BodyExternal
	ExternalName string
}

// NewFunction starts building a Function, optionally giving it a stable
// user name (otherwise it receives an auto-name on first emission).
func NewFunction(name ...string) *Function {
	f := &Function{}
	if len(name) > 0 {
		f.name = name[0]
	}
	return f
}

// DisplayName returns the user name, or "<anonymous>" for diagnostics.
func (f *Function) DisplayName() string {
	if f.name != "" {
		return f.name
	}
	return "<anonymous>"
}

// Name returns the user-supplied name, or "" if auto-named.
func (f *Function) Name() string { return f.name }

// Takes appends a parameter.
func (f *Function) Takes(t Type, name string) *Function {
	f.Params = append(f.Params, Field{Type: t, Name: name})
	return f
}

// Returns sets the function's return type.
func (f *Function) Returns(t Type) *Function {
	f.ReturnType = t
	return f
}

// Reads declares free variables this function's body captures by
// reference (spec.md §4.3's capture); they become constructor-bound
// members of the emitted functor.
func (f *Function) Reads(vars ...*Variable) *Function {
	f.reads = append(f.reads, vars...)
	return f
}

// Uses declares sub-functions this function's inline code template
// substitutes in; they are emitted first (spec.md §4.3/§4.4/§9).
func (f *Function) Uses(fns ...*Function) *Function {
	f.uses = append(f.uses, fns...)
	return f
}

// Code sets this function's body to an inline C++ template. subs maps
// substitution names used in the template (as {{.name}}) to Functions,
// Types, Exprs, or plain values; any *Function values are automatically
// folded into Uses.
func (f *Function) Code(template string, subs map[string]any) *Function {
	f.Kind = BodyInline
	f.InlineTemplate = template
	f.InlineSubs = subs
	for _, v := range subs {
		if sub, ok := v.(*Function); ok {
			f.uses = append(f.uses, sub)
		}
	}
	return f
}

// External marks this function as externally defined: the generator
// emits an #include of the host-managed file <name>.h and a call that
// forwards the parameters to the C++ function name; it emits no forward
// declaration of its own (spec.md §4.3 mode 3).
func (f *Function) External(name string) *Function {
	f.Kind = BodyExternal
	f.ExternalName = name
	return f
}

// IsExternal reports whether this function's body lives in a
// host-provided file.
func (f *Function) IsExternal() bool { return f.Kind == BodyExternal }

// FunctionFromIterator builds a Function whose body materializes it
// source into a vector (sequence=true) or asserts-and-returns its single
// element (sequence=false). Free variables of source become parameters
// if named in params; the rest remain captures (spec.md §4.3 mode 2).
func FunctionFromIterator(source Collection, sequence bool, params ...*Variable) *Function {
	f := &Function{Kind: BodyFromIterator, IterSource: source, IterSequence: sequence}
	f.bindParamsAndCaptures(source.FreeVars(), params)
	if sequence {
		f.ReturnType = NewSequence(source.OutputType())
	} else {
		f.ReturnType = source.OutputType()
	}
	return f
}

// FunctionFromExpr builds a Function whose body returns a fixed Expr's
// value. Free variables of e become parameters if named in params; the
// rest remain captures (spec.md §4.3's "make-function" on a scalar
// expression).
func FunctionFromExpr(e Expr, params ...*Variable) *Function {
	f := &Function{Kind: BodyFromExpr, ExprBody: e, ReturnType: e.OutputType()}
	f.bindParamsAndCaptures(e.FreeVars(), params)
	return f
}

func (f *Function) bindParamsAndCaptures(free VarSet, params []*Variable) {
	named := make(map[*Variable]bool, len(params))
	for _, p := range params {
		named[p] = true
		f.Params = append(f.Params, Field{Type: p.Type_, Name: p.Name})
	}
	for _, v := range free.Sorted() {
		if !named[v] {
			f.reads = append(f.reads, v)
		}
	}
}

// ReadVars returns the free variables this function's body reads
// (captures), in the order they were declared.
func (f *Function) ReadVars() []*Variable { return f.reads }

// UsedFunctions returns the sub-functions this function's body references.
func (f *Function) UsedFunctions() []*Function { return f.uses }

// FreeVars returns the union of this function's own captures and the
// free variables of every used sub-function and, for BodyFromIterator/
// BodyFromExpr, its source (spec.md §9 "Free-variable capture across
// nested functors": propagate upward through every node).
func (f *Function) FreeVars() VarSet {
	// f.reads already holds exactly (source free vars − named params) for
	// BodyFromIterator/BodyFromExpr, per bindParamsAndCaptures; for
	// BodyInline/BodyExternal it holds whatever .Reads(...) declared.
	sets := []VarSet{NewVarSet(f.reads...)}
	for _, u := range f.uses {
		sets = append(sets, u.FreeVars())
	}
	return Union(sets...)
}

// Call builds a FunctionCall invoking f with args.
func (f *Function) Call(args ...Expr) (*FunctionCall, error) {
	return NewCall(f, args...)
}
