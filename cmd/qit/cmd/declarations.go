package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/go-qit/internal/builder"
)

var (
	declarationsArgs []string
	showDeclarations bool
)

var declarationsCmd = &cobra.Command{
	Use:   "declarations <scenario>",
	Short: "Print the generated C++ source for a scenario without compiling it",
	Long: `declarations builds a scenario's expression graph, binds its free
variables, and prints the generated C++ translation unit to stdout
(spec.md §6 ".declarations(expr)").

Examples:
  qit declarations range
  qit declarations range --arg x=3`,
	Args: cobra.ExactArgs(1),
	RunE: runDeclarations,
}

func init() {
	rootCmd.AddCommand(declarationsCmd)
	declarationsCmd.Flags().StringArrayVar(&declarationsArgs, "arg", nil, "free variable binding name=value (repeatable)")
	declarationsCmd.Flags().BoolVar(&showDeclarations, "show-declarations", false, "print the naturally-sorted declaration-key dump to stderr alongside the source")
}

func runDeclarations(cmd *cobra.Command, args []string) error {
	s, err := lookupScenario(args[0])
	if err != nil {
		return err
	}
	root, defaults, err := s.build()
	if err != nil {
		return fmt.Errorf("building scenario %q: %w", args[0], err)
	}
	overrides, err := parseArgAssignments(declarationsArgs)
	if err != nil {
		return err
	}

	r, err := newRunner(cmd)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	src, err := r.Declarations(root, mergeArgs(defaults, overrides))
	if err != nil {
		return fmt.Errorf("generating declarations: %w", err)
	}
	fmt.Println(src)

	if showDeclarations {
		b := builder.New()
		if _, err := b.Build(root, mergeArgs(defaults, overrides)); err != nil {
			return fmt.Errorf("collecting declaration keys: %w", err)
		}
		fmt.Fprintln(os.Stderr, "declared keys (natural order):")
		for _, k := range b.DeclaredKeys() {
			fmt.Fprintf(os.Stderr, "  %s\n", k)
		}
	}
	return nil
}
