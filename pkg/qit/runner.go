package qit

import (
	"github.com/cwbudde/go-qit/internal/compilerexec"
	"github.com/cwbudde/go-qit/internal/driver"
)

// Compiler selects the native C++ toolchain a Runner invokes.
type Compiler = compilerexec.Compiler

// GCC and Clang are the built-in compiler selections (SPEC_FULL §10).
var (
	GCC   = compilerexec.GCC
	Clang = compilerexec.Clang
)

// Runner is the host configuration object spec.md §6 calls "a runner
// object": source_dir, build_dir, verbose, create_files, debug, plus the
// compiler selection this port adds beyond the Python original.
type Runner struct {
	SourceDir   string
	BuildDir    string
	Verbose     int
	CreateFiles bool
	Debug       bool
	Compiler    Compiler
}

// NewRunner returns a Runner with the original's defaults
// (source_dir=".", build_dir="./qit-build"), matching
// original_source/src/qit/base/qit.py's Qit.__init__ signature.
func NewRunner() *Runner {
	return &Runner{
		SourceDir: ".",
		BuildDir:  "./qit-build",
		Compiler:  GCC,
	}
}

func (r *Runner) toDriver() *driver.Driver {
	return driver.New(driver.Config{
		SourceDir:   r.SourceDir,
		BuildDir:    r.BuildDir,
		Verbose:     r.Verbose,
		CreateFiles: r.CreateFiles,
		Debug:       r.Debug,
		Compiler:    r.Compiler,
	})
}

// Run builds, compiles, and executes root, binding its free variables
// from args, and returns every value the generated program writes: a
// []any for an Iterator/Generator root, or a single scalar value for a
// bare Expr root (spec.md §8 scenario 6; spec.md §6 ".run(expr,
// args=...)").
func (r *Runner) Run(root any, args map[string]any) (any, error) {
	return r.toDriver().Run(root, args)
}

// Declarations returns the generated C++ translation unit for root
// without compiling or running it (spec.md §6 ".declarations(expr)").
func (r *Runner) Declarations(root any, args map[string]any) (string, error) {
	return r.toDriver().Source(root, args)
}

// WriteFiles writes the generated source and runtime header into
// BuildDir without compiling (spec.md §6 ".create_files(expr)"). Named
// WriteFiles rather than CreateFiles to avoid colliding with the
// CreateFiles configuration field.
func (r *Runner) WriteFiles(root any, args map[string]any) error {
	return r.toDriver().CreateFiles(root, args)
}

// Compile writes and compiles root into a native executable in BuildDir
// without running it, returning the executable's path.
func (r *Runner) Compile(root any, args map[string]any) (string, error) {
	return r.toDriver().Compile(root, args)
}
