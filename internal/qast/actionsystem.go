package qast

import "github.com/cwbudde/go-qit/internal/qerrors"

// RuleType classifies an action-system rule by its result arity: a
// one-to-one rule maps a state to exactly one successor state; a
// one-to-many rule maps a state to a vector of successor states
// (spec.md §4.7).
type RuleType int

const (
	OneToOne RuleType = iota
	OneToMany
)

// Rule is one action-system transition rule.
type Rule struct {
	Fn   *Function
	Kind RuleType
}

// ActionSystem is (initial_states_iterator, rules) per spec.md §4.7.
type ActionSystem struct {
	InitialStates Iterator
	Rules         []Rule
	StateType     Type
}

// NewActionSystem validates that every rule is a 1-argument function
// over the initial-states element type, classifying each as one-to-one
// (returns StateType) or one-to-many (returns Sequence(StateType)).
func NewActionSystem(initial Iterator, rules ...*Function) (*ActionSystem, error) {
	stateType := initial.OutputType()
	built := make([]Rule, len(rules))
	for i, fn := range rules {
		if len(fn.Params) != 1 || !fn.Params[0].Type.Equal(stateType) {
			return nil, qerrors.New(qerrors.TypeMismatch, "rule %d must take exactly one argument of the state type", i)
		}
		switch {
		case fn.ReturnType.Equal(stateType):
			built[i] = Rule{Fn: fn, Kind: OneToOne}
		case isSequenceOf(fn.ReturnType, stateType):
			built[i] = Rule{Fn: fn, Kind: OneToMany}
		default:
			return nil, qerrors.New(qerrors.TypeMismatch,
				"rule %d must return either the state type (one-to-one) or Sequence(state type) (one-to-many)", i)
		}
	}
	return &ActionSystem{InitialStates: initial, Rules: built, StateType: stateType}, nil
}

func isSequenceOf(t Type, elem Type) bool {
	seq, ok := t.(*SequenceType)
	return ok && seq.Elem.Equal(elem)
}

// States returns the iterator over the set of distinct states reachable
// within at most depth rule-applications from any initial state
// (spec.md §4.7).
func (as *ActionSystem) States(depth Expr) *SystemIter {
	return &SystemIter{System: as, Depth: depth}
}

// SystemIter is the BFS state-space iterator derived from an
// ActionSystem (spec.md §4.7, §9 "Action-system emission fan-out").
type SystemIter struct {
	System *ActionSystem
	Depth  Expr
}

func (s *SystemIter) OutputType() Type { return s.System.StateType }

func (s *SystemIter) FreeVars() VarSet {
	sets := []VarSet{s.System.InitialStates.FreeVars(), s.Depth.FreeVars()}
	for _, r := range s.System.Rules {
		sets = append(sets, r.Fn.FreeVars())
	}
	return Union(sets...)
}

func (*SystemIter) isIterator() {}
