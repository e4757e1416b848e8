package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridvm/internal/app"
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

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Numeric flags left at their zero value do not override the job file.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridvm", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridvm - evaluates a field VM program over a square grid and renders the
inside (< 0) region as a two-level image.

Usage:
  gridvm [options] [PROGRAM]

Arguments:
  PROGRAM
    Path to the program text, one instruction per line. Overrides
    render.program from the job file.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an .hcl job file or a directory of them.")
	sizeFlag := flagSet.Int("size", 0, "Grid size N of the N×N image (default 1024).")
	outputFlag := flagSet.String("output", "", "Write the image to this file (default out.pgm when the job has no outputs).")
	oFlag := flagSet.String("o", "", "Output file (shorthand).")
	formatFlag := flagSet.String("format", "", "Image format for -output: 'pgm', 'pgm-ascii' or 'png' (default pgm). With -config it requires -output.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers per instruction (default: number of CPUs).")
	chunkFlag := flagSet.Int("chunk-size", 0, "Samples handed to a worker at a time (default 4096).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one program path, got %d", flagSet.NArg())}
	}
	program := flagSet.Arg(0)

	if program == "" && *configFlag == "" {
		slog.Debug("No program or config provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
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

	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:  *configFlag,
		ProgramPath: program,
		Size:        *sizeFlag,
		Workers:     *workersFlag,
		ChunkSize:   *chunkFlag,
		OutputPath:  outputPath,
		Format:      strings.ToLower(*formatFlag),
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
