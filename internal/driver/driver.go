// Package driver orchestrates one qit run end to end: build the C++
// source, write it (and the runtime header) into the build directory,
// invoke the native compiler, spawn the resulting executable, and stream
// its output back through internal/wire. Grounded on the teacher's
// internal/interp driver/eval loop (lex -> parse -> semantic -> bytecode
// -> run, each stage's error wrapped and propagated), generalized here
// from an in-process pipeline to one that crosses a process boundary
// (spec.md §1's Non-goals explicitly forbid in-process evaluation).
package driver

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cwbudde/go-qit/internal/builder"
	"github.com/cwbudde/go-qit/internal/compilerexec"
	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
	"github.com/cwbudde/go-qit/internal/runtime"
	"github.com/cwbudde/go-qit/internal/wire"
)

// CompilerStrategy is the seam internal/driver tests fake out to exercise
// CompileFailure/RunFailure without invoking a real toolchain (SPEC_FULL
// §13).
type CompilerStrategy interface {
	Compile(sourcePath, outputPath string, debug bool) error
	Run(executablePath, outputFilePath string) error
}

// execStrategy adapts compilerexec's package-level functions to
// CompilerStrategy.
type execStrategy struct {
	compiler compilerexec.Compiler
}

func (s execStrategy) Compile(sourcePath, outputPath string, debug bool) error {
	return s.compiler.Compile(sourcePath, outputPath, debug)
}

func (s execStrategy) Run(executablePath, outputFilePath string) error {
	return compilerexec.Run(executablePath, outputFilePath)
}

// Config mirrors spec.md §6 "Host configuration": source_dir, build_dir,
// verbose, create_files, debug, plus the compiler selection qit adds
// beyond the Python original (internal/compilerexec.GCC/Clang).
type Config struct {
	SourceDir   string
	BuildDir    string
	Verbose     int
	CreateFiles bool
	Debug       bool
	Compiler    compilerexec.Compiler
}

// Driver runs one build+compile+spawn+collect cycle per call to Run.
// Concurrent Run calls on the same Driver are not supported (spec.md §5:
// "concurrent run calls from the same host are not supported").
type Driver struct {
	cfg      Config
	strategy CompilerStrategy
}

// New builds a Driver from cfg, defaulting an unset Compiler to
// compilerexec.GCC.
func New(cfg Config) *Driver {
	if cfg.Compiler.Command == "" {
		cfg.Compiler = compilerexec.GCC
	}
	return &Driver{cfg: cfg, strategy: execStrategy{compiler: cfg.Compiler}}
}

// withStrategy overrides the compiler strategy (tests only).
func withStrategy(cfg Config, s CompilerStrategy) *Driver {
	return &Driver{cfg: cfg, strategy: s}
}

func (d *Driver) logf(level int, format string, args ...any) {
	if d.cfg.Verbose >= level {
		log.Printf(format, args...)
	}
}

// Source returns the generated C++ translation unit for root, bound to
// args, without writing or compiling anything (the basis for
// Declarations/CreateFiles on pkg/qit.Runner).
func (d *Driver) Source(root any, args map[string]any) (string, error) {
	b := builder.New()
	b.ExternalDir = d.cfg.SourceDir
	return b.Build(root, args)
}

// writeBuildDir materializes source and the embedded runtime header into
// cfg.BuildDir, returning their paths.
func (d *Driver) writeBuildDir(source string) (sourcePath, headerPath string, err error) {
	if err := os.MkdirAll(d.cfg.BuildDir, 0o755); err != nil {
		return "", "", qerrors.Wrap(qerrors.CompileFailure, err, "creating build directory %s", d.cfg.BuildDir)
	}
	sourcePath = filepath.Join(d.cfg.BuildDir, "qit_main.cpp")
	headerPath = filepath.Join(d.cfg.BuildDir, "qit.h")
	if err := os.WriteFile(sourcePath, []byte(source), 0o644); err != nil {
		return "", "", qerrors.Wrap(qerrors.CompileFailure, err, "writing %s", sourcePath)
	}
	if err := os.WriteFile(headerPath, runtime.Header, 0o644); err != nil {
		return "", "", qerrors.Wrap(qerrors.CompileFailure, err, "writing %s", headerPath)
	}
	return sourcePath, headerPath, nil
}

// CreateFiles writes the generated source and runtime header into
// BuildDir without compiling (spec.md §6 "create_files").
func (d *Driver) CreateFiles(root any, args map[string]any) error {
	source, err := d.Source(root, args)
	if err != nil {
		return err
	}
	_, _, err = d.writeBuildDir(source)
	return err
}

// Compile builds, writes, and compiles root into a native executable in
// BuildDir without running it, returning the executable's path (the
// basis for cmd/qit's "compile" subcommand).
func (d *Driver) Compile(root any, args map[string]any) (string, error) {
	source, err := d.Source(root, args)
	if err != nil {
		return "", err
	}
	sourcePath, _, err := d.writeBuildDir(source)
	if err != nil {
		return "", err
	}
	execPath := filepath.Join(d.cfg.BuildDir, "qit_run")
	d.logf(1, "qit: compiling %s", sourcePath)
	if err := d.strategy.Compile(sourcePath, execPath, d.cfg.Debug); err != nil {
		return "", err
	}
	return execPath, nil
}

// Run builds, compiles, spawns, and collects every value root denotes:
// a slice of host values for an Iterator/Generator root (spec.md §8
// scenarios 1-5), or a single value for a bare Expr root (scenario 6).
func (d *Driver) Run(root any, args map[string]any) (any, error) {
	outputType, err := outputTypeOf(root)
	if err != nil {
		return nil, err
	}

	d.logf(1, "qit: building source")
	source, err := d.Source(root, args)
	if err != nil {
		return nil, err
	}

	sourcePath, _, err := d.writeBuildDir(source)
	if err != nil {
		return nil, err
	}
	if d.cfg.CreateFiles {
		d.logf(1, "qit: source written to %s", sourcePath)
	}

	execPath := filepath.Join(d.cfg.BuildDir, "qit_run")
	d.logf(1, "qit: compiling %s", sourcePath)
	if err := d.strategy.Compile(sourcePath, execPath, d.cfg.Debug); err != nil {
		return nil, err
	}
	if !d.cfg.CreateFiles {
		os.Remove(sourcePath)
	}

	outPath := filepath.Join(d.cfg.BuildDir, "qit_out.bin")
	d.logf(1, "qit: running %s", execPath)
	if err := d.strategy.Run(execPath, outPath); err != nil {
		return nil, err
	}

	f, err := os.Open(outPath)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.RunFailure, err, "opening output file %s", outPath)
	}
	defer f.Close()
	r := wire.NewReader(f)

	if _, ok := root.(qast.Expr); ok {
		v, err := outputType.Read(r)
		if err != nil {
			return nil, qerrors.Wrap(qerrors.IncompleteRecord, err, "reading scalar result")
		}
		return v, nil
	}

	var values []any
	for {
		v, err := outputType.Read(r)
		if err == nil {
			values = append(values, v)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		return nil, qerrors.Wrap(qerrors.IncompleteRecord, err, "reading collection result")
	}
	return values, nil
}

func outputTypeOf(root any) (qast.Type, error) {
	switch n := root.(type) {
	case qast.Iterator:
		return n.OutputType(), nil
	case qast.Generator:
		return n.OutputType(), nil
	case qast.Expr:
		return n.OutputType(), nil
	default:
		return nil, qerrors.New(qerrors.CompileFailure, "driver: root is neither a Collection nor an Expr (%T)", root)
	}
}
