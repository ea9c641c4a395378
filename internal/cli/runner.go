package cli

import (
	"fmt"

	"github.com/stratadi/strata/internal/compiler"
	"github.com/stratadi/strata/internal/layers"
	"github.com/stratadi/strata/internal/loader"
	"github.com/stratadi/strata/internal/models"
	"github.com/stratadi/strata/internal/utils"
)

// Runner drives one compile run for the command line
type Runner struct {
	verbose     bool
	checkOnly   bool
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
}

// NewRunner creates a runner with the given diagnostic system
func NewRunner(verbose bool, diagnostics *utils.DiagnosticSystem) *Runner {
	return &Runner{
		verbose:     verbose,
		diagnostics: diagnostics,
		reporter:    NewDiagnosticReporter(verbose),
	}
}

// CheckOnly switches the runner to validation mode: diagnostics are still
// reported in full, but the success summary is reduced to a single line.
func (r *Runner) CheckOnly() *Runner {
	r.checkOnly = true
	return r
}

// Run loads the definition file at path, compiles it, and reports the
// outcome. The returned error is non-nil when compilation failed.
func (r *Runner) Run(path string) error {
	r.diagnostics.Info("Loading %s", path)

	res, err := loader.LoadFile(path)
	if err != nil {
		r.reporter.Report(err)
		return err
	}

	r.diagnostics.Verbose("Loaded %d definition(s), %d alias(es), %d rule(s)",
		res.Registry.Size(), len(res.Registry.AliasIDs()), len(res.Rules))

	engine := layers.NewEngine(res.Rules...)
	compiled, err := compiler.New(res.Registry, engine).Compile()
	if err != nil {
		r.reporter.Report(err)
		return err
	}

	if r.checkOnly {
		r.diagnostics.Success("%s is valid", path)
		return nil
	}

	r.summarize(compiled)
	return nil
}

func (r *Runner) summarize(compiled *models.CompiledContainer) {
	publicCount := 0
	syntheticCount := 0
	for _, id := range compiled.ServiceIDs() {
		svc, _ := compiled.Service(id)
		if svc.Public {
			publicCount++
		}
		if svc.Synthetic {
			syntheticCount++
		}
	}

	r.diagnostics.Success("Container compiled")
	r.diagnostics.Summary("Compilation result", []string{
		fmt.Sprintf("services: %d (%d public, %d synthetic)",
			len(compiled.ServiceIDs()), publicCount, syntheticCount),
		fmt.Sprintf("aliases: %d", len(compiled.AliasIDs())),
		fmt.Sprintf("validated edges: %d", len(compiled.Edges())),
	})

	if r.verbose && len(compiled.Edges()) > 0 {
		r.diagnostics.Subsection("Validated edges")
		for _, edge := range compiled.Edges() {
			r.diagnostics.List("%s", edge)
		}
	}
}
