package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/stratadi/strata/internal/errors"
)

// DiagnosticReporter renders compile diagnostics in a user-friendly form
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: os.Stderr}
}

// SetOutput redirects the reporter, mainly for tests
func (r *DiagnosticReporter) SetOutput(w io.Writer) {
	r.out = w
}

// Report renders an error. A *Diagnostics collection is expanded into one
// block per collected error; anything else is reported as-is.
func (r *DiagnosticReporter) Report(err error) {
	fmt.Fprintf(r.out, "\nERROR: Compilation Failed\n")
	fmt.Fprintf(r.out, "=========================\n")

	if diags, ok := err.(*errors.Diagnostics); ok {
		fmt.Fprintf(r.out, "%d problem(s) found\n", diags.Count())
		for i, derr := range diags.Errors {
			r.reportOne(i+1, derr)
		}
	} else if serr, ok := err.(errors.StrataError); ok {
		r.reportOne(1, serr)
	} else {
		fmt.Fprintf(r.out, "\n%s\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportOne(index int, err errors.StrataError) {
	red := color.New(color.FgRed, color.Bold)

	fmt.Fprintf(r.out, "\n%d. ", index)
	red.Fprint(r.out, err.ErrorCode().String())
	if ids := err.ServiceIDs(); len(ids) > 0 {
		fmt.Fprintf(r.out, " [%s]", strings.Join(ids, ", "))
	}
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "   %s\n", strippedMessage(err))

	if r.verbose && err.Unwrap() != nil {
		fmt.Fprintf(r.out, "   cause: %s\n", err.Unwrap().Error())
	}

	if hints := err.Suggestions(); len(hints) > 0 {
		cyan := color.New(color.FgCyan)
		for _, hint := range hints {
			cyan.Fprint(r.out, "   hint: ")
			fmt.Fprintf(r.out, "%s\n", hint)
		}
	}
}

// strippedMessage returns the error text without the code/id prefix that
// BaseError.Error prepends, since the header line already shows both
func strippedMessage(err errors.StrataError) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
