package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runArgs []string

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Build, compile, run, and print a scenario's results",
	Long: `run drives a scenario through build, compile, spawn, and
stream-read (spec.md §6 ".run(expr, args=...)"), printing the
collected values: one per line for an Iterator/Generator scenario, or
a single value for a scalar Expr scenario.

Examples:
  qit run range
  qit run range --arg x=3
  qit run sum --arg x=4 --arg y=6`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringArrayVar(&runArgs, "arg", nil, "free variable binding name=value (repeatable)")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := lookupScenario(args[0])
	if err != nil {
		return err
	}
	root, defaults, err := s.build()
	if err != nil {
		return fmt.Errorf("building scenario %q: %w", args[0], err)
	}
	overrides, err := parseArgAssignments(runArgs)
	if err != nil {
		return err
	}

	r, err := newRunner(cmd)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	result, err := r.Run(root, mergeArgs(defaults, overrides))
	if err != nil {
		return fmt.Errorf("running scenario %q: %w", args[0], err)
	}

	if values, ok := result.([]any); ok {
		for _, v := range values {
			fmt.Println(v)
		}
		return nil
	}
	fmt.Println(result)
	return nil
}
