package qast

import "github.com/cwbudde/go-qit/internal/qerrors"

// Expr is a node that denotes a single value: a value literal, a free
// variable, or a function call.
type Expr interface {
	// OutputType is the type of value this expression denotes.
	OutputType() Type
	// FreeVars returns the set of free variables reachable from this
	// expression.
	FreeVars() VarSet
}

// VarSet is an immutable set of free variables, keyed by pointer identity
// (two Variable nodes are the same free variable only if they are the
// same Go value — matching spec.md's "Variables... are shared by
// reference across the graph").
type VarSet map[*Variable]struct{}

// NewVarSet builds a VarSet from the given variables.
func NewVarSet(vars ...*Variable) VarSet {
	s := make(VarSet, len(vars))
	for _, v := range vars {
		s[v] = struct{}{}
	}
	return s
}

// Union returns the union of all given sets as a new set.
func Union(sets ...VarSet) VarSet {
	out := VarSet{}
	for _, s := range sets {
		for v := range s {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sorted returns the set's members ordered by name, matching spec.md
// §4.5's "Free-variable initialization is emitted in name order".
func (s VarSet) Sorted() []*Variable {
	out := make([]*Variable, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Name > out[j].Name; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Value is a type + host payload singleton expression. Payload shape is
// checked eagerly against Type at construction (spec.md §3 invariant).
type Value struct {
	Type_   Type
	Payload any
}

// NewValue validates payload against typ and returns a Value expression,
// or a TypeMismatch error.
func NewValue(typ Type, payload any) (*Value, error) {
	if err := typ.CheckValue(payload); err != nil {
		return nil, err
	}
	return &Value{Type_: typ, Payload: payload}, nil
}

func (v *Value) OutputType() Type  { return v.Type_ }
func (v *Value) FreeVars() VarSet  { return VarSet{} }

// Variable is a named free variable of some type, shared by reference
// across the expression graph (spec.md §3 "Variables... are shared by
// reference").
type Variable struct {
	Type_ Type
	Name  string
}

// NewVariable builds a free variable. Callers are expected to reuse the
// same *Variable across every expression that reads it.
func NewVariable(typ Type, name string) *Variable {
	return &Variable{Type_: typ, Name: name}
}

func (v *Variable) OutputType() Type { return v.Type_ }
func (v *Variable) FreeVars() VarSet { return NewVarSet(v) }

// FunctionCall invokes a Function with argument expressions whose types
// must match the function's parameter types positionally.
type FunctionCall struct {
	Fn   *Function
	Args []Expr
}

// NewCall builds a FunctionCall, checking arity and argument types.
func NewCall(fn *Function, args ...Expr) (*FunctionCall, error) {
	if len(args) != len(fn.Params) {
		return nil, qerrors.New(qerrors.TypeMismatch,
			"function %s expects %d argument(s), got %d", fn.DisplayName(), len(fn.Params), len(args))
	}
	for i, a := range args {
		if !a.OutputType().Equal(fn.Params[i].Type) {
			return nil, qerrors.New(qerrors.TypeMismatch,
				"function %s argument %d: expected type %s", fn.DisplayName(), i, fn.Params[i].Type.DeclKey())
		}
	}
	return &FunctionCall{Fn: fn, Args: args}, nil
}

func (c *FunctionCall) OutputType() Type { return c.Fn.ReturnType }

func (c *FunctionCall) FreeVars() VarSet {
	sets := make([]VarSet, 0, len(c.Args)+1)
	sets = append(sets, c.Fn.FreeVars())
	for _, a := range c.Args {
		sets = append(sets, a.FreeVars())
	}
	return Union(sets...)
}
