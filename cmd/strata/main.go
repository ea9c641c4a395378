package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stratadi/strata/internal/cli"
	"github.com/stratadi/strata/internal/utils"
)

func main() {
	var (
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors")
		checkFlag   = flag.Bool("check", false, "Validate only; skip the compilation summary")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <definitions.yaml...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Strata Container Compiler\n")
		fmt.Fprintf(os.Stderr, "Compiles service definition files into a validated container description,\n")
		fmt.Fprintf(os.Stderr, "enforcing decoration, alias and architectural layer rules.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s services.yaml                # Compile one definition file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose services.yaml      # Show the validated edges too\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --quiet services.yaml        # Diagnostics only, exit code says the rest\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --check services.yaml        # Validate without the summary\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: at least one definition file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	if *quietFlag {
		diagnostics = utils.NewQuietDiagnostics()
	} else if *verboseFlag {
		diagnostics = utils.NewVerboseDiagnostics()
	} else {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.Section("Strata Container Compiler")

	runner := cli.NewRunner(*verboseFlag, diagnostics)
	if *checkFlag {
		runner.CheckOnly()
	}
	failed := false
	for _, path := range args {
		if err := runner.Run(path); err != nil {
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
