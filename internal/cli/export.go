package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/aura/internal/services"
)

// NewExportCommand writes a device's data as JSON, or as a check-in or
// quick-log CSV.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var deviceID string
	var asCSV bool
	var quickLogs bool
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a device's check-ins and quick logs",
		Long: `Export everything a device has stored. JSON carries check-ins, quick logs
and the last check-in time. CSV carries one row per check-in, or one row per
quick log with --quick-logs.

Examples:
  aura export --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5 -o aura.json
  aura export --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5 --csv
  aura export --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5 --csv --quick-logs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quickLogs && !asCSV {
				return NewExitError(ExitCommandError, "--quick-logs requires --csv")
			}
			return runExport(cmd, rootOpts, deviceID, asCSV, quickLogs, outputPath)
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "device id (see `aura devices`)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write check-ins as CSV instead of JSON")
	cmd.Flags().BoolVar(&quickLogs, "quick-logs", false, "with --csv, write quick logs instead of check-ins")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write to this file instead of stdout")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}

func runExport(cmd *cobra.Command, rootOpts *RootOptions, deviceID string, asCSV bool, quickLogs bool, outputPath string) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	env, err := openOfflineEnv(rootOpts)
	if err != nil {
		return err
	}
	defer env.close()

	if err := requireKnownDevice(env, deviceID); err != nil {
		return err
	}
	accessor, err := env.device(deviceID)
	if err != nil {
		return WrapExitError(ExitCommandError, "open device", err)
	}

	output := cmd.OutOrStdout()
	if path := strings.TrimSpace(outputPath); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "create output file", err)
		}
		defer file.Close()
		output = file
		formatter.VerboseLog("Writing export to %s", path)
	}

	exporter := services.NewExportService(env.location)
	if asCSV && quickLogs {
		if err := exporter.WriteQuickLogCSV(output, accessor.QuickLogs()); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	}
	if asCSV {
		if err := exporter.WriteCheckinCSV(output, accessor.CheckinHistory()); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		return nil
	}
	return writeExportJSON(output, exporter.BuildPayload(accessor, nowFunc()))
}

func writeExportJSON(output io.Writer, payload services.ExportPayload) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}
