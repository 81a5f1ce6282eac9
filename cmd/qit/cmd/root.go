package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    int
	sourceDir  string
	buildDir   string
	configPath string
	compiler   string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "qit",
	Short: "qit combinatorial-search DSL compiler/runner",
	Long: `qit compiles a host-built expression graph (types, iterators,
generators, transformations, functions, action systems) into a
standalone native C++ program that enumerates a structured value set
and streams the results back over a small binary wire format.

This CLI drives the built-in demo scenarios through the same three
operations a host program gets from pkg/qit.Runner: declarations
(dump generated source), compile (build a native executable), and run
(build, compile, execute, and collect results).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "verbosity level (0-2)")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "source-dir", ".", "host-managed external function source directory")
	rootCmd.PersistentFlags().StringVar(&buildDir, "build-dir", "./qit-build", "generated source/build output directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "qit.yaml", "optional host-configuration file, applied before the flags above")
	rootCmd.PersistentFlags().StringVar(&compiler, "compiler", "g++", "native compiler: g++ or clang++")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "compile with debug flags instead of optimization")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
