package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-qit/pkg/qit"
)

// runnerAPI is the subset of pkg/qit.Runner the CLI drives. It exists so
// command tests can inject a fake without invoking a real C++ toolchain
// (SPEC_FULL §13: "cmd/qit: ... without invoking a real compiler
// (dependency-injected compiler strategy)").
type runnerAPI interface {
	Run(root any, args map[string]any) (any, error)
	Declarations(root any, args map[string]any) (string, error)
	WriteFiles(root any, args map[string]any) error
	Compile(root any, args map[string]any) (string, error)
}

// newRunner builds the runnerAPI for production use from cmd's flag
// values, overlaid on any qit.yaml configuration file loaded first.
// Tests replace this var with a fake-returning factory.
var newRunner = func(cmd *cobra.Command) (runnerAPI, error) {
	cfg, err := qit.LoadConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	r := qit.NewRunner()
	cfg.Apply(r)

	flags := cmd.Flags()
	if flags.Changed("source-dir") {
		r.SourceDir = sourceDir
	}
	if flags.Changed("build-dir") {
		r.BuildDir = buildDir
	}
	if flags.Changed("verbose") {
		r.Verbose = verbose
	}
	if flags.Changed("debug") {
		r.Debug = debug
	}
	if flags.Changed("compiler") {
		switch compiler {
		case "clang++":
			r.Compiler = qit.Clang
		case "g++":
			r.Compiler = qit.GCC
		}
	}
	return r, nil
}
