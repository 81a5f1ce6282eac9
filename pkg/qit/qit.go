// Package qit is the public host-facing DSL surface: the type
// constructors, expression/iterator/generator algebra, and the Runner
// that compiles and runs a qit expression graph as a native program
// (spec.md §6 "Host API surface"). It is a thin facade over
// internal/qast (the node algebra) and internal/driver (compile/run
// orchestration) — grounded on the teacher's pkg/dwscript facade
// package, which likewise re-exports its internal AST/interpreter types
// under one importable surface for host programs.
package qit

import (
	"github.com/cwbudde/go-qit/internal/qast"
)

// Type aliases re-export the qast node algebra under the qit import
// path, so host programs never need to import internal/qast directly
// (spec.md §6: "the DSL exposes type constructors...").
type (
	Type         = qast.Type
	Field        = qast.Field
	Expr         = qast.Expr
	Collection   = qast.Collection
	Iterator     = qast.Iterator
	Generator    = qast.Generator
	Variable     = qast.Variable
	Value        = qast.Value
	FunctionCall = qast.FunctionCall
	Function     = qast.Function
	VarSet       = qast.VarSet

	IntType      = qast.IntType
	BoolType     = qast.BoolType
	RangeType    = qast.RangeType
	ProductType  = qast.ProductType
	StructType   = qast.StructType
	KeyValueType = qast.KeyValueType
	SequenceType = qast.SequenceType
	MappingType  = qast.MappingType
	ValuesType   = qast.ValuesType

	ActionSystem = qast.ActionSystem
	SystemIter   = qast.SystemIter
	Rule         = qast.Rule
)

const (
	OneToOne  = qast.OneToOne
	OneToMany = qast.OneToMany
)

// Type constructors (spec.md §6 "type constructors").
var (
	Int          = qast.Int
	Bool         = qast.Bool
	NewRange     = qast.NewRange
	NewProduct   = qast.NewProduct
	NamedProduct = qast.NamedProduct
	NewStruct    = qast.NewStruct
	NamedStruct  = qast.NamedStruct
	NewKeyValue  = qast.NewKeyValue
	NewSequence  = qast.NewSequence
	NewMapping   = qast.NewMapping
	NewValues    = qast.NewValues
)

// NewFixedSequence builds Sequence(elem, k), the generatable variant
// (spec.md §4.2 "Sequence(T,k).generate()").
var NewFixedSequence = qast.NewFixedSequence

// Expression constructors (spec.md §6 "expression constructors").
var (
	NewValue    = qast.NewValue
	NewVariable = qast.NewVariable
)

// Transformations (spec.md §6 ".take(k), .sort(), .map(f), .filter(p)").
var (
	Take      = qast.Take
	Sort      = qast.Sort
	NewMap    = qast.NewMap
	NewFilter = qast.NewFilter
)

// Function() builder (spec.md §6 "Function() builder").
var NewFunction = qast.NewFunction

// FunctionFromIterator/FunctionFromExpr are the from-iterator function
// construction mode (spec.md §4.3 mode 2) and its single-expression
// counterpart.
var (
	FunctionFromIterator = qast.FunctionFromIterator
	FunctionFromExpr     = qast.FunctionFromExpr
)

// NewActionSystem builds the action-system state space (spec.md §4.7).
var NewActionSystem = qast.NewActionSystem

// Arithmetic helpers ported from the original Python's operator
// overloading (SPEC_FULL §12 "Arithmetic operator overloading on
// expressions"): Go has none, so host code calls these explicitly in
// place of `x + y` / `x ** y`.
var (
	Add             = qast.Add
	Power           = qast.Power
	MultiplicationN = qast.MultiplicationN
)
