package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stratadi/strata/internal/utils"
)

func writeDoc(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner(verbose bool) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	diagnostics := utils.NewVerboseDiagnostics()
	if !verbose {
		diagnostics = utils.NewQuietDiagnostics()
	}
	diagnostics.SetOutput(&buf)
	runner := NewRunner(verbose, diagnostics)
	runner.reporter.SetOutput(&buf)
	return runner, &buf
}

func TestRunReportsCompileFailure(t *testing.T) {
	path := writeDoc(t, `
services:
  - id: web
    class: app.Web
    args: ["@missing"]
`)
	runner, buf := newTestRunner(false)

	if err := runner.Run(path); err == nil {
		t.Fatal("a dangling reference must fail the run")
	}
	if !strings.Contains(buf.String(), "UnknownTargetError") {
		t.Errorf("diagnostic report not written:\n%s", buf.String())
	}
}

func TestRunFailsOnMissingFile(t *testing.T) {
	runner, _ := newTestRunner(false)
	if err := runner.Run(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("a missing definition file must fail the run")
	}
}

func TestRunSummarizesValidDocument(t *testing.T) {
	path := writeDoc(t, `
services:
  - id: db
    class: app.DB
  - id: web
    class: app.Web
    args: ["@db"]
`)
	runner, buf := newTestRunner(true)

	if err := runner.Run(path); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	output := buf.String()
	for _, want := range []string{
		"Container compiled",
		"services: 2",
		"Validated edges",
		"web -> db",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunCheckOnlySkipsTheSummary(t *testing.T) {
	path := writeDoc(t, `
services:
  - id: db
    class: app.DB
`)
	runner, buf := newTestRunner(false)
	diagnostics := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	diagnostics.SetOutput(buf)
	runner.diagnostics = diagnostics
	runner.CheckOnly()

	if err := runner.Run(path); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if strings.Contains(buf.String(), "Compilation result") {
		t.Errorf("check mode must not print the summary:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "is valid") {
		t.Errorf("check mode must confirm validity:\n%s", buf.String())
	}
}
