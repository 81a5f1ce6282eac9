package cmd

import (
	"sort"

	"github.com/cwbudde/go-qit/pkg/qit"
)

// scenario is a small, self-contained expression graph the CLI can
// declare/compile/run by name. A host program would normally build its
// own graph in Go (spec.md §6); the CLI has no textual source language
// to parse, so it ships a handful of named graphs mirroring spec.md
// §8's worked scenarios, grounded on the teacher's "run -e <inline
// code>" affordance (cmd/dwscript/cmd/run.go) generalized from an
// inline-code string to an inline-name selector.
type scenario struct {
	short string
	// build returns the expression graph root and the default free
	// variable bindings a bare invocation (no --arg overrides) should
	// use.
	build func() (root any, defaults map[string]any, err error)
}

var scenarios = map[string]scenario{
	"range": {
		short: "Range(x).iterate() for a free variable x (spec.md §8 scenario 2)",
		build: func() (any, map[string]any, error) {
			x := qit.NewVariable(qit.Int(), "x")
			it, err := qit.NewRange(x).Iterate()
			if err != nil {
				return nil, nil, err
			}
			return it, map[string]any{"x": 10}, nil
		},
	},
	"producttakemap": {
		short: "Product(x,y).iterate().take(6).map(addxy).take(4) (spec.md §8 scenario 3)",
		build: func() (any, map[string]any, error) {
			n, err := qit.NewValue(qit.Int(), 4)
			if err != nil {
				return nil, nil, err
			}
			prod, err := qit.NewProduct(
				qit.Field{Type: qit.NewRange(n), Name: "x"},
				qit.Field{Type: qit.NewRange(n), Name: "y"},
			)
			if err != nil {
				return nil, nil, err
			}
			it, err := prod.Iterate()
			if err != nil {
				return nil, nil, err
			}
			sumFn := qit.NewFunction("addxy").Takes(prod, "p").Returns(qit.Int())
			sumFn.Code("return p.x + p.y;", nil)

			six, err := qit.NewValue(qit.Int(), 6)
			if err != nil {
				return nil, nil, err
			}
			taken := qit.Take(it, six)
			mapped, err := qit.NewMap(taken, sumFn)
			if err != nil {
				return nil, nil, err
			}
			four, err := qit.NewValue(qit.Int(), 4)
			if err != nil {
				return nil, nil, err
			}
			return qit.Take(mapped, four), nil, nil
		},
	},
	"sum": {
		short: "x + y for free variables x, y (spec.md §8 scenario 6)",
		build: func() (any, map[string]any, error) {
			x := qit.NewVariable(qit.Int(), "x")
			y := qit.NewVariable(qit.Int(), "y")
			sum, err := qit.Add(x, y)
			if err != nil {
				return nil, nil, err
			}
			return sum, map[string]any{"x": 4, "y": 6}, nil
		},
	},
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
