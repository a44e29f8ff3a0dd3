package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/enermodel/h2khpxml/internal/app"
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

// Parse processes command-line arguments. It returns a populated app
// Config, a boolean indicating if the program should exit cleanly, or an
// ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("h2khpxml", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
h2khpxml - converts H2K building-energy models to HPXML.

Usage:
  h2khpxml [options] INPUT_PATH

Arguments:
  INPUT_PATH
    Path to a single .h2k file or a directory containing .h2k files.

Options:
`)
		flagSet.PrintDefaults()
	}

	outFlag := flagSet.String("o", "", "Output file path (single-file conversion only).")
	outDirFlag := flagSet.String("out-dir", "", "Root directory for derived output paths.")
	settingsFlag := flagSet.String("settings", "", "Path to an HCL settings file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Worker count for batch conversion. 0 sizes to available parallelism minus one.")
	strictFlag := flagSet.Bool("strict", false, "Treat validation findings as fatal.")
	simulateFlag := flagSet.Bool("simulate", false, "Run the external simulation engine on converted documents.")
	validateOnlyFlag := flagSet.Bool("validate-only", false, "Convert and validate without writing output documents.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: "expected exactly one INPUT_PATH argument"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		InputPath:    flagSet.Arg(0),
		OutputPath:   *outFlag,
		OutputDir:    *outDirFlag,
		SettingsPath: *settingsFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		Workers:      *workersFlag,
		Strict:       *strictFlag,
		Simulate:     *simulateFlag,
		ValidateOnly: *validateOnlyFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
