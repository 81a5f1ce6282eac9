// Command qit is the CLI front end for the qit combinatorial-search DSL:
// it selects one of a handful of built-in demo scenarios and drives it
// through declarations/compile/run, the same three operations
// pkg/qit.Runner exposes to host programs (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-qit/cmd/qit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
