package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type deviceSummary struct {
	ID       string `json:"id"`
	Checkins int    `json:"checkins"`
	Quick    int    `json:"quick_logs"`
	Last     string `json:"last_monthly_checkin,omitempty"`
}

// NewDevicesCommand lists every device namespace with stored data, or erases
// one device with --delete.
func NewDevicesCommand(rootOpts *RootOptions) *cobra.Command {
	var deleteID string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List devices that have stored data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("delete") {
				return runDeleteDevice(cmd, rootOpts, deleteID)
			}
			return runDevices(cmd, rootOpts)
		},
	}

	cmd.Flags().StringVar(&deleteID, "delete", "", "erase every stored key of this device")
	return cmd
}

func runDevices(cmd *cobra.Command, rootOpts *RootOptions) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	env, err := openOfflineEnv(rootOpts)
	if err != nil {
		return err
	}
	defer env.close()

	namespaces, err := env.repositories.Storage.ListNamespaces()
	if err != nil {
		return WrapExitError(ExitFailure, "list devices", err)
	}

	devices := make([]deviceSummary, 0, len(namespaces))
	for _, namespace := range namespaces {
		accessor, err := env.device(namespace)
		if err != nil {
			continue
		}
		summary := deviceSummary{
			ID:       namespace,
			Checkins: len(accessor.CheckinHistory()),
			Quick:    len(accessor.QuickLogs()),
		}
		if last, ok := accessor.LastMonthlyCheckin(); ok {
			summary.Last = last.In(env.location).Format("2006-01-02 15:04")
		}
		devices = append(devices, summary)
	}

	return formatter.Success(devices, func(w io.Writer) error {
		if len(devices) == 0 {
			_, err := fmt.Fprintln(w, "No devices yet.")
			return err
		}
		for _, device := range devices {
			last := device.Last
			if last == "" {
				last = "never"
			}
			fmt.Fprintf(w, "%s  check-ins: %d  quick logs: %d  last: %s\n", device.ID, device.Checkins, device.Quick, last)
		}
		return nil
	})
}

func runDeleteDevice(cmd *cobra.Command, rootOpts *RootOptions, deviceID string) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return WrapExitError(ExitCommandError, "invalid arguments", errDeviceRequired)
	}

	env, err := openOfflineEnv(rootOpts)
	if err != nil {
		return err
	}
	defer env.close()

	if err := requireKnownDevice(env, deviceID); err != nil {
		return err
	}
	if err := env.repositories.Storage.DeleteNamespace(deviceID); err != nil {
		return WrapExitError(ExitFailure, "delete device", err)
	}
	formatter.VerboseLog("deleted namespace %s", deviceID)

	return formatter.Success(map[string]string{"deleted": deviceID}, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Deleted device %s\n", deviceID)
		return err
	})
}
