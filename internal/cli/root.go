// Package cli implements the aura command line: the web server plus offline
// commands that read a device's stored check-ins straight from the database.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	EnvFile string
	DBPath  string // overrides DB_PATH when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the web server.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "aura",
		Short:         "Aura - monthly self check-in tracker",
		Long:          "A self-hosted wellness tracker with a guided monthly check-in, a timeline and a knowledge library.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "optional .env file with settings")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the SQLite database (defaults to DB_PATH)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewCalendarCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewDevicesCommand(opts))
	cmd.AddCommand(NewSecretCommand(opts))

	return cmd
}

// Execute runs the command line and returns the process exit code. A failure is
// reported through the output formatter, so --format json prints an error envelope.
func Execute(args []string, out io.Writer, errOut io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	code := GetExitCode(err)
	formatter := newFormatter(opts, out, errOut)
	if !formatter.JSON() {
		formatter.Writer = errOut
	}
	_ = formatter.Error(errorCodeName(code), err.Error())
	return code
}

func errorCodeName(code int) string {
	if code == ExitCommandError {
		return "command_error"
	}
	return "failure"
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
