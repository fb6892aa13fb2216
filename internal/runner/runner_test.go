package runner_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"brewin/internal/runner"
	"brewin/pkg/color"
	"brewin/pkg/interpreter"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.brewin")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestRunProgram(t *testing.T) {
	color.EnableColor(false)
	var out bytes.Buffer

	r := runner.Runner{
		SourceFile: writeSource(t, "func main void\r\n  var string name\r\n  funccall input \"who?\"\r\n  funccall print \"hello \" results\r\nendfunc\r\n"),
		Stdout:     &out,
		Stdin:      strings.NewReader("ada\n"),
	}

	if err := r.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "who?\nhello ada\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunReportsError(t *testing.T) {
	color.EnableColor(false)
	var out, errOut bytes.Buffer

	r := runner.Runner{
		SourceFile: writeSource(t, "func main void\n  funccall print \"ok\"\n  var int x\n  assign x \"no\"\nendfunc\n"),
		Stdout:     &out,
		Stderr:     &errOut,
		Stdin:      strings.NewReader(""),
	}

	err := r.Run()
	if interpreter.KindOf(err) != interpreter.TypeError {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if !strings.Contains(errOut.String(), `TypeError on line 3`) || !strings.Contains(errOut.String(), `assign x "no"`) {
		t.Errorf("error report missing details: %q", errOut.String())
	}
	if out.String() != "ok\n" {
		t.Errorf("program output mixed with diagnostics: %q", out.String())
	}
}

func TestRunMissingFile(t *testing.T) {
	r := runner.Runner{SourceFile: filepath.Join(t.TempDir(), "absent.brewin")}
	if err := r.Run(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestVerboseListing(t *testing.T) {
	color.EnableColor(false)
	var out bytes.Buffer

	r := runner.Runner{
		Verbose:    true,
		SourceFile: writeSource(t, "func swap a:refint b:int void\nendfunc\nfunc main void\n  while False\n  endwhile\nendfunc\n"),
		Stdout:     &out,
		Stdin:      strings.NewReader(""),
	}

	if err := r.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listing := out.String()
	for _, want := range []string{"3: while False -> endwhile 4", "4: endwhile -> while 3", "0 swap(a: ref int, b: int) void", "=== Program Output ==="} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q:\n%s", want, listing)
		}
	}
}

func TestSplitLines(t *testing.T) {
	if got := runner.SplitLines(""); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
	if got := runner.SplitLines("a\r\nb\n"); len(got) != 2 || got[1] != "b" {
		t.Errorf("unexpected split %q", got)
	}
}
