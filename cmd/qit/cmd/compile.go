package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var compileArgs []string

var compileCmd = &cobra.Command{
	Use:   "compile <scenario>",
	Short: "Build and compile a scenario into a native executable",
	Long: `compile writes a scenario's generated C++ source (and the embedded
qit.h runtime header) into --build-dir and compiles it with the
selected native compiler, without running the result.

Examples:
  qit compile range
  qit compile range --compiler clang++ --debug`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringArrayVar(&compileArgs, "arg", nil, "free variable binding name=value (repeatable)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	s, err := lookupScenario(args[0])
	if err != nil {
		return err
	}
	root, defaults, err := s.build()
	if err != nil {
		return fmt.Errorf("building scenario %q: %w", args[0], err)
	}
	overrides, err := parseArgAssignments(compileArgs)
	if err != nil {
		return err
	}

	r, err := newRunner(cmd)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	execPath, err := r.Compile(root, mergeArgs(defaults, overrides))
	if err != nil {
		return fmt.Errorf("compiling scenario %q: %w", args[0], err)
	}
	fmt.Fprintf(os.Stdout, "Compiled %s -> %s\n", args[0], execPath)
	return nil
}
