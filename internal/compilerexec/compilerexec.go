// Package compilerexec invokes the native C++ toolchain that turns a
// generated translation unit into a runnable executable: the external
// collaborator spec.md §1 pins at the host/generated-program boundary.
// Grounded on the teacher's internal/interp process-boundary idiom
// (spawning a pipeline stage as a child call and capturing its error),
// generalized here to an actual out-of-process exec.Command spawn, since
// qit's Non-goals forbid in-process evaluation of the generated program.
package compilerexec

import (
	"bytes"
	"os/exec"

	"github.com/cwbudde/go-qit/internal/qerrors"
)

// Compiler names a C++ toolchain and the flags it is invoked with.
type Compiler struct {
	// Command is the executable name or path, e.g. "g++" or "clang++".
	Command string
	// Std is the -std flag value, e.g. "c++17".
	Std string
}

// GCC is the default compiler: g++ -std=c++17.
var GCC = Compiler{Command: "g++", Std: "c++17"}

// Clang is clang++ -std=c++17.
var Clang = Compiler{Command: "clang++", Std: "c++17"}

// Compile builds sourcePath into an executable at outputPath. debug skips
// optimization (-O0 -g instead of -O2), matching the Qit(debug=...) knob
// (spec.md §6 "Host configuration"). On a non-zero exit, the compiler's
// captured stderr is wrapped into a CompileFailure QitError.
func (c Compiler) Compile(sourcePath, outputPath string, debug bool) error {
	args := []string{"-std=" + c.Std}
	if debug {
		args = append(args, "-O0", "-g")
	} else {
		args = append(args, "-O2")
	}
	args = append(args, "-o", outputPath, sourcePath)

	cmd := exec.Command(c.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return qerrors.Wrap(qerrors.CompileFailure, err, "compiling %s: %s", sourcePath, stderr.String())
	}
	return nil
}

// Run spawns the compiled executable with outputFilePath as argv[1] (the
// sole argument a generated main() reads, spec.md §4.5) and waits for it
// to finish. A non-zero exit or spawn failure becomes a RunFailure,
// carrying the child's stderr as context.
func Run(executablePath, outputFilePath string) error {
	cmd := exec.Command(executablePath, outputFilePath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return qerrors.Wrap(qerrors.RunFailure, err, "running %s: %s", executablePath, stderr.String())
	}
	return nil
}
