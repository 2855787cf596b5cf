package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/aura/internal/services"
)

const calendarMonthLayout = "2006-01"

var dayColorMarkers = map[services.DayColor]string{
	services.DayColorRed:    "r",
	services.DayColorYellow: "y",
	services.DayColorGreen:  "g",
}

type calendarDay struct {
	Date     string `json:"date"`
	Color    string `json:"color"`
	Checkins int    `json:"checkins"`
}

type calendarReport struct {
	Device string        `json:"device"`
	Month  string        `json:"month"`
	Days   []calendarDay `json:"days"`
}

// NewCalendarCommand prints a device's month as a coloured text calendar.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	var deviceID string
	var monthRaw string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month of check-ins as a calendar",
		Long: `Render the timeline month for a device. Each day with check-ins is
marked r (concern), y (symptoms noted) or g (clear); the worst entry wins.

Examples:
  aura calendar --device 6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5 --month 2024-02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, rootOpts, deviceID, monthRaw)
		},
	}

	cmd.Flags().StringVar(&deviceID, "device", "", "device id (see `aura devices`)")
	cmd.Flags().StringVar(&monthRaw, "month", "", "month as YYYY-MM (defaults to the current month)")
	_ = cmd.MarkFlagRequired("device")

	return cmd
}

func runCalendar(cmd *cobra.Command, rootOpts *RootOptions, deviceID string, monthRaw string) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	env, err := openOfflineEnv(rootOpts)
	if err != nil {
		return err
	}
	defer env.close()

	now := nowFunc().In(env.location)
	monthStart, err := parseCalendarMonth(monthRaw, now, env.location)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}
	if err := requireKnownDevice(env, deviceID); err != nil {
		return err
	}
	accessor, err := env.device(deviceID)
	if err != nil {
		return WrapExitError(ExitCommandError, "open device", err)
	}

	timeline := services.NewTimelineService(env.location, env.cfg.WeekStartDay())
	month := timeline.Month(accessor, monthStart, now)

	report := calendarReport{
		Device: deviceID,
		Month:  month.MonthStart.Format(calendarMonthLayout),
		Days:   calendarDays(month),
	}
	return formatter.Success(report, func(w io.Writer) error {
		return RenderCalendar(w, month)
	})
}

func parseCalendarMonth(raw string, now time.Time, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation(calendarMonthLayout, raw, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("--month must be YYYY-MM, got %q", raw)
	}
	return parsed, nil
}

func calendarDays(month services.CalendarMonth) []calendarDay {
	days := make([]calendarDay, 0)
	for _, week := range month.Weeks {
		for _, cell := range week {
			if cell.Blank || cell.EntryCount == 0 {
				continue
			}
			days = append(days, calendarDay{Date: cell.DateString, Color: string(cell.Color), Checkins: cell.EntryCount})
		}
	}
	return days
}

// RenderCalendar writes the month grid followed by one line per day that
// has check-ins. Trailing spaces are trimmed from every line.
func RenderCalendar(w io.Writer, month services.CalendarMonth) error {
	var builder strings.Builder

	builder.WriteString(month.MonthStart.Format("January 2006"))
	builder.WriteString("\n")

	headers := make([]string, 0, len(month.Weekdays))
	for _, weekday := range month.Weekdays {
		headers = append(headers, weekday.String()[:2]+" ")
	}
	writeCalendarLine(&builder, headers)

	for _, week := range month.Weeks {
		cells := make([]string, 0, len(week))
		for _, cell := range week {
			if cell.Blank {
				cells = append(cells, "   ")
				continue
			}
			marker, ok := dayColorMarkers[cell.Color]
			if !ok {
				marker = " "
			}
			cells = append(cells, fmt.Sprintf("%2d%s", cell.Day, marker))
		}
		writeCalendarLine(&builder, cells)
	}

	days := calendarDays(month)
	builder.WriteString("\n")
	if len(days) == 0 {
		builder.WriteString("No check-ins this month.\n")
	}
	for _, day := range days {
		noun := "check-ins"
		if day.Checkins == 1 {
			noun = "check-in"
		}
		fmt.Fprintf(&builder, "%s  %-6s  %d %s\n", day.Date, day.Color, day.Checkins, noun)
	}
	builder.WriteString("\nr = concern, y = symptoms noted, g = clear\n")

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeCalendarLine(builder *strings.Builder, cells []string) {
	builder.WriteString(strings.TrimRight(strings.Join(cells, " "), " "))
	builder.WriteString("\n")
}
