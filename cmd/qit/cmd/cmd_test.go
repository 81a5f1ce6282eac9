package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// fakeRunnerAPI is the dependency-injected runnerAPI stand-in SPEC_FULL
// §13 asks for ("cmd/qit: ... without invoking a real compiler"): it
// never touches a real toolchain.
type fakeRunnerAPI struct {
	runResult    any
	runErr       error
	declarations string
	declErr      error
	compilePath  string
	compileErr   error
}

func (f *fakeRunnerAPI) Run(root any, args map[string]any) (any, error) {
	return f.runResult, f.runErr
}

func (f *fakeRunnerAPI) Declarations(root any, args map[string]any) (string, error) {
	return f.declarations, f.declErr
}

func (f *fakeRunnerAPI) WriteFiles(root any, args map[string]any) error {
	return nil
}

func (f *fakeRunnerAPI) Compile(root any, args map[string]any) (string, error) {
	return f.compilePath, f.compileErr
}

func withFakeRunner(t *testing.T, fake *fakeRunnerAPI) {
	t.Helper()
	old := newRunner
	newRunner = func(cmd *cobra.Command) (runnerAPI, error) { return fake, nil }
	t.Cleanup(func() { newRunner = old })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestRunCmd_PrintsCollectedValues(t *testing.T) {
	withFakeRunner(t, &fakeRunnerAPI{runResult: []any{0, 1, 2}})

	out := captureStdout(t, func() {
		if err := runRun(runCmd, []string{"range"}); err != nil {
			t.Fatalf("runRun: %v", err)
		}
	})
	want := "0\n1\n2\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRunCmd_PrintsScalarResult(t *testing.T) {
	withFakeRunner(t, &fakeRunnerAPI{runResult: 10})

	out := captureStdout(t, func() {
		if err := runRun(runCmd, []string{"sum"}); err != nil {
			t.Fatalf("runRun: %v", err)
		}
	})
	if out != "10\n" {
		t.Fatalf("got %q, want %q", out, "10\n")
	}
}

func TestRunCmd_UnknownScenario(t *testing.T) {
	withFakeRunner(t, &fakeRunnerAPI{})

	err := runRun(runCmd, []string{"nope"})
	if err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestDeclarationsCmd_PrintsSource(t *testing.T) {
	withFakeRunner(t, &fakeRunnerAPI{declarations: "int main() {}"})

	out := captureStdout(t, func() {
		if err := runDeclarations(declarationsCmd, []string{"range"}); err != nil {
			t.Fatalf("runDeclarations: %v", err)
		}
	})
	if out != "int main() {}\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCompileCmd_ReportsCompileFailure(t *testing.T) {
	withFakeRunner(t, &fakeRunnerAPI{compileErr: errCompileFailed})

	if err := runCompile(compileCmd, []string{"range"}); err == nil {
		t.Fatal("expected compile error to propagate")
	}
}

var errCompileFailed = &testError{"simulated compile failure"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
