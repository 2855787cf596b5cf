package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/services"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nowFunc = time.Now

type historyEntry struct {
	CompletedAt string   `json:"completed_at"`
	Result      string   `json:"result"`
	Color       string   `json:"color"`
	Symptoms    []string `json:"symptoms"`
	Notes       string   `json:"notes,omitempty"`
}

type historyReport struct {
	Device        string                  `json:"device"`
	LastCheckin   string                  `json:"last_monthly_checkin,omitempty"`
	NextDue       string                  `json:"next_due,omitempty"`
	DaysRemaining int                     `json:"days_remaining"`
	DueNow        bool                    `json:"due_now"`
	Checkins      []historyEntry          `json:"checkins"`
	QuickLogs     []models.QuickLogRecord `json:"quick_logs,omitempty"`
}

// NewHistoryCommand lists a device's check-ins in stored order.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	var deviceID string
	var withQuickLogs bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored check-ins for a device",
		Long: `Print every check-in a device has saved, oldest first, together with
the device's due status.

Examples:
  aura history --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5
  aura history --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5 --quick-logs --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, rootOpts, deviceID, withQuickLogs)
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "device id (see `aura devices`)")
	cmd.Flags().BoolVar(&withQuickLogs, "quick-logs", false, "include quick logs")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}

func runHistory(cmd *cobra.Command, rootOpts *RootOptions, deviceID string, withQuickLogs bool) error {
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
	formatter.VerboseLog("Reading device %s from %s", deviceID, env.cfg.DBPath)

	last, hasLast := accessor.LastMonthlyCheckin()
	report := buildHistoryReport(deviceID, accessor.CheckinHistory(), last, hasLast, nowFunc(), env.location)
	if withQuickLogs {
		report.QuickLogs = accessor.QuickLogs()
		for index := range report.QuickLogs {
			report.QuickLogs[index].At = report.QuickLogs[index].At.In(env.location)
		}
	}

	return formatter.Success(report, func(w io.Writer) error {
		return renderHistory(w, report)
	})
}

func requireKnownDevice(env *offlineEnv, deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return WrapExitError(ExitCommandError, "invalid arguments", errDeviceRequired)
	}
	known, err := env.hasDevice(deviceID)
	if err != nil {
		return WrapExitError(ExitFailure, "device lookup failed", err)
	}
	if !known {
		return NewExitError(ExitCommandError, fmt.Sprintf("device %s has no stored data", deviceID))
	}
	return nil
}

func buildHistoryReport(deviceID string, history []models.CheckinRecord, last time.Time, hasLast bool, now time.Time, location *time.Location) historyReport {
	due := services.ComputeDueStatus(last, hasLast, now, location)
	report := historyReport{
		Device:        deviceID,
		DaysRemaining: due.DaysRemaining,
		DueNow:        due.DueNow(),
		Checkins:      make([]historyEntry, 0, len(history)),
	}
	if due.HasCheckin {
		report.LastCheckin = last.In(location).Format(time.RFC3339)
		report.NextDue = services.DayKey(due.NextDue, location)
	}

	for _, record := range history {
		report.Checkins = append(report.Checkins, historyEntry{
			CompletedAt: record.CompletedAt.In(location).Format("2006-01-02 15:04"),
			Result:      record.Result,
			Color:       string(services.ClassifyEntry(record)),
			Symptoms:    record.SelectedSymptoms(),
			Notes:       strings.TrimSpace(record.Notes),
		})
	}
	return report
}

func renderHistory(w io.Writer, report historyReport) error {
	fmt.Fprintf(w, "Device %s\n", report.Device)
	switch {
	case report.LastCheckin == "":
		fmt.Fprintln(w, "No check-in yet. Due now.")
	case report.DueNow:
		fmt.Fprintf(w, "Next check-in: %s (due now)\n", report.NextDue)
	default:
		fmt.Fprintf(w, "Next check-in: %s (in %s)\n", report.NextDue, pluralDays(report.DaysRemaining))
	}

	fmt.Fprintf(w, "\nCheck-ins (%d)\n", len(report.Checkins))
	for _, entry := range report.Checkins {
		fmt.Fprintf(w, "  %s  %-7s  %s\n", entry.CompletedAt, entry.Result, humanList(entry.Symptoms))
		if entry.Notes != "" {
			fmt.Fprintf(w, "      %q\n", entry.Notes)
		}
	}

	if len(report.QuickLogs) > 0 {
		fmt.Fprintf(w, "\nQuick logs (%d)\n", len(report.QuickLogs))
		for _, quickLog := range report.QuickLogs {
			fmt.Fprintf(w, "  %s  %s\n", quickLog.At.Format("2006-01-02 15:04"), humanLabel(quickLog.Type))
		}
	}
	return nil
}

func pluralDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// humanLabel turns a stored key like "feeling_good" into "Feeling Good".
func humanLabel(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

func humanList(keys []string) string {
	if len(keys) == 0 {
		return "None"
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		labels = append(labels, humanLabel(key))
	}
	return strings.Join(labels, ", ")
}
