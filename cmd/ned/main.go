// Package main is the entry point for the ned editor.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/ned/internal/app"
	"github.com/dshills/ned/internal/config"
	"github.com/dshills/ned/internal/renderer/backend"
)

// version is shown in the welcome banner (set via ldflags during build).
var version = "0.1"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the root command and maps the outcome to an exit status.
// Signal-driven exits never reach here; the terminal backend exits with
// 128 plus the signal number.
func run(args []string, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		var pe *app.RecoveredPanicError
		if errors.As(err, &pe) {
			fmt.Fprintf(stderr, "Error: %s\n", pe.Summary())
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// Flag names, also used to detect which flags were set explicitly.
const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"
	flagMaxRows  = "max-rows"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ned [file]",
		Short: "ned - a small terminal text editor",
		Long: `ned is a small full-screen terminal editor.

Run without arguments to start with an empty buffer, or pass a file to view it.
Use the arrow keys, Home, End, Page Up and Page Down to move. Press Ctrl+Q to quit.

Configuration is read from ` + "`$XDG_CONFIG_HOME/ned/config.toml`" + ` (or the file given
with --config), then NED_* environment variables, then flags.

Examples:
  ned                           # Start with an empty buffer
  ned notes.txt                 # Open a file
  ned --max-rows 1000 big.log   # Load at most 1000 lines
  ned --log-level debug         # Verbose logging to ned.log`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd, args)
			if err != nil {
				return err
			}
			return runEditor(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP(flagConfig, "c", "", "path to a TOML or YAML configuration file")
	flags.String(flagLogLevel, "", "log level (debug, info, warn, error)")
	flags.String(flagLogFile, "", "log file path; empty string disables logging")
	flags.Int(flagMaxRows, 0, "maximum number of lines to load (0 = unlimited)")

	return cmd
}

// buildOptions turns parsed flags and arguments into application options.
// Only flags set on the command line override lower configuration layers.
func buildOptions(cmd *cobra.Command, args []string) (app.Options, error) {
	flags := cmd.Flags()
	opts := app.Options{
		Version:   version,
		Overrides: make(map[string]any),
	}

	var err error
	if opts.ConfigPath, err = flags.GetString(flagConfig); err != nil {
		return opts, err
	}
	if len(args) > 0 {
		opts.File = args[0]
	}

	if flags.Changed(flagLogLevel) {
		v, err := flags.GetString(flagLogLevel)
		if err != nil {
			return opts, err
		}
		opts.Overrides[config.PathLogLevel] = v
	}
	if flags.Changed(flagLogFile) {
		v, err := flags.GetString(flagLogFile)
		if err != nil {
			return opts, err
		}
		opts.Overrides[config.PathLogFile] = v
	}
	if flags.Changed(flagMaxRows) {
		v, err := flags.GetInt(flagMaxRows)
		if err != nil {
			return opts, err
		}
		opts.Overrides[config.PathMaxRows] = v
	}

	return opts, nil
}

// runEditor runs one editing session. Configuration and document errors
// are reported before the terminal is touched; every later error is
// returned after the terminal has been restored.
func runEditor(opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal(os.Stdin, os.Stdout)
	if err != nil {
		return errors.Join(err, application.Shutdown())
	}
	return runSession(application, term)
}

// runSession attaches b, runs the event loop and shuts the application
// down. A shutdown failure is joined into the returned error.
func runSession(application *app.Application, b backend.Backend) (err error) {
	defer func() {
		err = errors.Join(err, application.Shutdown())
	}()

	application.SetBackend(b)
	return application.Run()
}
