package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/gridplan/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridplan", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridplan - Greedy planner for tasks on a one-dimensional axis.

Usage:
  gridplan [options] [PROBLEM_PATH]

Arguments:
  PROBLEM_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	problemFlag := flagSet.String("problem", "", "Path to the problem file or directory.")
	pFlag := flagSet.String("p", "", "Path to the problem file or directory (shorthand).")
	outputFlag := flagSet.String("output", "text", "Report format. Options: 'text', 'json' or 'msgpack'.")
	colorFlag := flagSet.Bool("color", false, "Colorize the text report.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	thresholdFlag := flagSet.Float64("endangered-threshold", 0, "Flexibility below which a placement is reported as endangered. 0 uses the problem file or 2.")
	workersFlag := flagSet.Int("workers", 0, "Goroutines evaluating candidates per step. 0 uses the problem file or evaluates sequentially.")
	publishURLFlag := flagSet.String("publish-url", "", "socket.io server to stream placements to. Empty disables publishing.")
	publishNamespaceFlag := flagSet.String("publish-namespace", "/", "socket.io namespace for published placements.")
	publishEventFlag := flagSet.String("publish-event", "placement", "Event name for published placements.")
	historyFlag := flagSet.String("history", "", "SQLite database to record the run in. Empty disables recording.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *problemFlag != "" {
		path = *problemFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Problem path determined.", "path", path)

	if path == "" {
		slog.Debug("No problem path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProblemPath:         path,
		LogFormat:           logFormat,
		LogLevel:            logLevel,
		Output:              strings.ToLower(*outputFlag),
		Color:               *colorFlag,
		PublishURL:          *publishURLFlag,
		PublishNamespace:    *publishNamespaceFlag,
		PublishEvent:        *publishEventFlag,
		HistoryPath:         *historyFlag,
		EndangeredThreshold: *thresholdFlag,
		Workers:             *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
