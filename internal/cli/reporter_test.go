package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stratadi/strata/internal/errors"
)

func TestReportExpandsDiagnosticsIntoNumberedBlocks(t *testing.T) {
	diags := errors.NewDiagnostics()
	diags.Add(errors.NewUnknownTarget("web", "missing"))
	diags.Add(errors.NewDuplicateID("db"))

	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)
	reporter.Report(diags)
	output := buf.String()

	if !strings.Contains(output, "ERROR: Compilation Failed") {
		t.Errorf("missing failure header in output:\n%s", output)
	}
	if !strings.Contains(output, "2 problem(s) found") {
		t.Errorf("missing problem count in output:\n%s", output)
	}
	for _, want := range []string{
		"1. ", "UnknownTargetError", "[web, missing]",
		"2. ", "DuplicateIDError", "[db]",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestReportShowsHintsAndVerboseCause(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	wrapped := errors.Wrap(errors.ConfigCode, "parsing YAML", cause)
	diags := errors.NewDiagnostics()
	diags.Add(wrapped.WithSuggestion("check the document indentation"))

	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)
	reporter.Report(diags)

	if !strings.Contains(buf.String(), "hint: check the document indentation") {
		t.Errorf("hint not rendered:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "cause:") {
		t.Errorf("cause must only show in verbose mode:\n%s", buf.String())
	}

	buf.Reset()
	verbose := NewDiagnosticReporter(true)
	verbose.SetOutput(&buf)
	verbose.Report(diags)

	if !strings.Contains(buf.String(), "cause: yaml: line 3") {
		t.Errorf("verbose report must include the cause:\n%s", buf.String())
	}
}

func TestReportHandlesPlainErrors(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewDiagnosticReporter(false)
	reporter.SetOutput(&buf)
	reporter.Report(fmt.Errorf("disk on fire"))

	if !strings.Contains(buf.String(), "disk on fire") {
		t.Errorf("plain error text not rendered:\n%s", buf.String())
	}
}

func TestStrippedMessageDropsTheCodePrefix(t *testing.T) {
	err := errors.NewUnknownTarget("web", "missing")
	stripped := strippedMessage(err)

	if strings.Contains(stripped, "UnknownTargetError") {
		t.Errorf("code prefix not stripped: %q", stripped)
	}
	if !strings.Contains(err.Error(), stripped) {
		t.Errorf("stripped text %q must be a suffix of %q", stripped, err.Error())
	}
}
