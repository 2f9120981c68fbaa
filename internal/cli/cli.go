package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/principia/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments on top of environment defaults. It
// returns a validated app config, a boolean indicating the program should
// exit cleanly (help, or no seed path given), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	defaults, err := app.FromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("principia", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
principia - manuscript parameter pipeline.

Seeds a parameter registry from HCL constants files, executes the compiled-in
simulation chain, checks predictions against the gate ledger, and writes the
registry snapshot.

Usage:
  principia [options] [SEED_PATH]

Arguments:
  SEED_PATH
    Path to a single .hcl seed file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	seedFlag := flagSet.String("seed", "", "Path to the seed file or directory.")
	sFlag := flagSet.String("s", "", "Path to the seed file or directory (shorthand).")
	outDirFlag := flagSet.String("out", defaults.OutputDir, "Directory for the registry snapshot and gate ledger.")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	skipGatesFlag := flagSet.Bool("skip-gates", defaults.SkipGates, "Run without evaluating the gate ledger.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := defaults.SeedPath
	if *seedFlag != "" {
		path = *seedFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		SeedPath:  path,
		OutputDir: *outDirFlag,
		LogFormat: strings.ToLower(*logFormatFlag),
		LogLevel:  strings.ToLower(*logLevelFlag),
		SkipGates: *skipGatesFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
