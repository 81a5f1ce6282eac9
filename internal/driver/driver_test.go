package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/go-qit/internal/qast"
	"github.com/cwbudde/go-qit/internal/qerrors"
)

// fakeStrategy lets tests exercise CompileFailure/RunFailure without a
// real toolchain (SPEC_FULL §13).
type fakeStrategy struct {
	compileErr error
	runErr     error
	// writeOutput, if set, is written to outputFilePath by Run.
	writeOutput []byte
}

func (f fakeStrategy) Compile(sourcePath, outputPath string, debug bool) error {
	return f.compileErr
}

func (f fakeStrategy) Run(executablePath, outputFilePath string) error {
	if f.runErr != nil {
		return f.runErr
	}
	if f.writeOutput != nil {
		return os.WriteFile(outputFilePath, f.writeOutput, 0o644)
	}
	return os.WriteFile(outputFilePath, nil, 0o644)
}

func newRangeIterRoot(t *testing.T) qast.Iterator {
	t.Helper()
	n, err := qast.NewValue(qast.Int(), 3)
	if err != nil {
		t.Fatalf("NewValue: %v", err)
	}
	it, err := qast.NewRange(n).Iterate()
	if err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	return it
}

func TestDriver_Run_CompileFailure(t *testing.T) {
	dir := t.TempDir()
	d := withStrategy(Config{BuildDir: dir}, fakeStrategy{compileErr: qerrors.New(qerrors.CompileFailure, "boom")})

	_, err := d.Run(newRangeIterRoot(t), nil)
	if !qerrors.Is(err, qerrors.CompileFailure) {
		t.Fatalf("want CompileFailure, got %v", err)
	}
}

func TestDriver_Run_RunFailure(t *testing.T) {
	dir := t.TempDir()
	d := withStrategy(Config{BuildDir: dir}, fakeStrategy{runErr: qerrors.New(qerrors.RunFailure, "crashed")})

	_, err := d.Run(newRangeIterRoot(t), nil)
	if !qerrors.Is(err, qerrors.RunFailure) {
		t.Fatalf("want RunFailure, got %v", err)
	}
}

func TestDriver_Run_CollectsValues(t *testing.T) {
	dir := t.TempDir()
	// 4-byte LE ints: 0, 1, 2
	payload := []byte{0, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0}
	d := withStrategy(Config{BuildDir: dir}, fakeStrategy{writeOutput: payload})

	got, err := d.Run(newRangeIterRoot(t), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	values, ok := got.([]any)
	if !ok || len(values) != 3 {
		t.Fatalf("want 3 values, got %#v", got)
	}
	for i, v := range values {
		if v.(int) != i {
			t.Errorf("value[%d] = %v, want %d", i, v, i)
		}
	}
}

func TestDriver_CreateFiles_WritesSourceAndHeader(t *testing.T) {
	dir := t.TempDir()
	d := withStrategy(Config{BuildDir: dir}, fakeStrategy{})

	if err := d.CreateFiles(newRangeIterRoot(t), nil); err != nil {
		t.Fatalf("CreateFiles: %v", err)
	}
	for _, name := range []string{"qit_main.cpp", "qit.h"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
}
