package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/security"
	"github.com/terraincognita07/aura/internal/services"
	"github.com/terraincognita07/aura/internal/storage"
)

type jsonEnvelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
}

func decodeEnvelope[T any](t *testing.T, raw string) T {
	t.Helper()

	var envelope jsonEnvelope[T]
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope), raw)
	require.Equal(t, "ok", envelope.Status)
	return envelope.Data
}

func TestHistoryText(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "history", "--device", testDeviceID, "--db", dbPath, "--quick-logs")
	require.NoError(t, err)

	assert.Contains(t, output, "Device "+testDeviceID)
	assert.Contains(t, output, "Next check-in: 2024-03-21 (in 25 days)")
	assert.Contains(t, output, "Check-ins (5)")
	assert.Contains(t, output, "  2024-02-03 09:15  concern  Tenderness, Pain\n")
	assert.Contains(t, output, "      \"left side sore\"\n")
	assert.Contains(t, output, "  2024-02-21 07:45  clear    Itching\n")
	assert.Contains(t, output, "Quick logs (1)")
	assert.Contains(t, output, "  2024-02-20 10:00  Feeling Good\n")
}

func TestHistoryJSON(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "history", "--device", testDeviceID, "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	report := decodeEnvelope[historyReport](t, output)
	assert.Equal(t, testDeviceID, report.Device)
	assert.Equal(t, "2024-03-21", report.NextDue)
	assert.Equal(t, 25, report.DaysRemaining)
	assert.False(t, report.DueNow)
	require.Len(t, report.Checkins, 5)
	assert.Equal(t, "red", report.Checkins[1].Color)
	assert.Equal(t, []string{"tenderness", "pain"}, report.Checkins[1].Symptoms)
	assert.Equal(t, "yellow", report.Checkins[4].Color)
	assert.Empty(t, report.QuickLogs)
}

func TestHistoryUnknownDevice(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	_, err := executeCommand(t, "history", "--device", "missing-device", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "missing-device")
}

func TestExecuteReportsJSONErrorEnvelope(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	var out, errOut bytes.Buffer
	code := Execute([]string{"history", "--device", "missing-device", "--db", dbPath, "--format", "json", "--env-file="}, &out, &errOut)
	assert.Equal(t, ExitCommandError, code)

	var response CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &response))
	assert.Equal(t, "error", response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, "command_error", response.Error.Code)
	assert.Contains(t, response.Error.Message, "missing-device")
	assert.Empty(t, errOut.String())
}

func TestExecuteReportsTextErrorOnStderr(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	var out, errOut bytes.Buffer
	code := Execute([]string{"history", "--device", "missing-device", "--db", dbPath, "--env-file="}, &out, &errOut)
	assert.Equal(t, ExitCommandError, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [command_error]:")
}

func TestHistoryWithoutCheckinIsDueNow(t *testing.T) {
	report := buildHistoryReport(testDeviceID, nil, time.Time{}, false, testNow, time.UTC)
	assert.True(t, report.DueNow)
	assert.Empty(t, report.NextDue)

	var out bytes.Buffer
	require.NoError(t, renderHistory(&out, report))
	assert.Contains(t, out.String(), "No check-in yet. Due now.")
	assert.Contains(t, out.String(), "Check-ins (0)")
}

func TestCalendarGolden(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "calendar", "--device", testDeviceID, "--month", "2024-02", "--db", dbPath)
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "calendar_february_2024", []byte(output))
}

func TestCalendarJSON(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "calendar", "--device", testDeviceID, "--month", "2024-02", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	report := decodeEnvelope[calendarReport](t, output)
	assert.Equal(t, "2024-02", report.Month)
	assert.Equal(t, []calendarDay{
		{Date: "2024-02-03", Color: "red", Checkins: 2},
		{Date: "2024-02-10", Color: "green", Checkins: 1},
		{Date: "2024-02-21", Color: "yellow", Checkins: 1},
	}, report.Days)
}

func TestCalendarDefaultsToCurrentMonth(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "calendar", "--device", testDeviceID, "--db", dbPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "February 2024\n"))
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	_, err := executeCommand(t, "calendar", "--device", testDeviceID, "--month", "2024/02", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "YYYY-MM")
}

func TestRenderCalendarMondayStart(t *testing.T) {
	accessor := storage.NewAccessor(storage.NewMemory())
	require.True(t, accessor.AppendCheckin(models.CheckinRecord{
		CompletedAt: time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC),
		Symptoms:    map[string]bool{models.SymptomNormal: true},
		Result:      models.ResultClear,
	}))

	timeline := services.NewTimelineService(time.UTC, time.Monday)
	month := timeline.Month(accessor, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), testNow)

	var out bytes.Buffer
	require.NoError(t, RenderCalendar(&out, month))
	lines := strings.Split(out.String(), "\n")

	assert.Equal(t, "March 2024", lines[0])
	assert.Equal(t, "Mo  Tu  We  Th  Fr  Sa  Su", lines[1])
	assert.Equal(t, "                 1   2   3", lines[2])
	assert.Equal(t, " 4g  5   6   7   8   9  10", lines[3])
	assert.Contains(t, out.String(), "2024-03-04  green   1 check-in\n")
}

func TestRenderCalendarEmptyMonth(t *testing.T) {
	timeline := services.NewTimelineService(time.UTC, time.Sunday)
	month := timeline.BuildMonth(nil, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), testNow)

	var out bytes.Buffer
	require.NoError(t, RenderCalendar(&out, month))
	assert.Contains(t, out.String(), "No check-ins this month.")
}

func TestExportJSONToFile(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)
	target := filepath.Join(t.TempDir(), "export.json")

	_, err := executeCommand(t, "export", "--device", testDeviceID, "--db", dbPath, "-o", target)
	require.NoError(t, err)

	raw, err := os.ReadFile(target)
	require.NoError(t, err)

	var payload services.ExportPayload
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "2024-02-25T12:00:00Z", payload.ExportedAt)
	assert.Len(t, payload.CheckinHistory, 5)
	assert.Len(t, payload.QuickLogs, 1)
	require.NotNil(t, payload.LastMonthlyCheckin)
	assert.True(t, payload.LastMonthlyCheckin.Equal(time.Date(2024, time.February, 21, 7, 45, 0, 0, time.UTC)))
}

func TestExportCSV(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "export", "--device", testDeviceID, "--db", dbPath, "--csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Date,Time,Result,Tenderness,Swelling,Pain,Normal,Notes", lines[0])
	assert.Equal(t, "2024-02-03,09:15,concern,yes,no,yes,no,left side sore", lines[2])
}

func TestExportQuickLogCSV(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "export", "--device", testDeviceID, "--db", dbPath, "--csv", "--quick-logs")
	require.NoError(t, err)
	assert.Equal(t, "Date,Time,Type,ID\n2024-02-20,10:00,feeling_good,q-1\n", output)

	_, err = executeCommand(t, "export", "--device", testDeviceID, "--db", dbPath, "--quick-logs")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDevicesList(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "devices", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, testDeviceID+"  check-ins: 5  quick logs: 1  last: 2024-02-21 07:45\n", output)

	output, err = executeCommand(t, "devices", "--db", dbPath, "--format", "json")
	require.NoError(t, err)
	devices := decodeEnvelope[[]deviceSummary](t, output)
	require.Len(t, devices, 1)
	assert.Equal(t, 5, devices[0].Checkins)
}

func TestDevicesEmptyDatabase(t *testing.T) {
	useTestEnvironment(t)

	output, err := executeCommand(t, "devices", "--db", filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	assert.Equal(t, "No devices yet.\n", output)
}

func TestDevicesDelete(t *testing.T) {
	useTestEnvironment(t)
	dbPath := seedDatabase(t)

	output, err := executeCommand(t, "devices", "--db", dbPath, "--delete", testDeviceID)
	require.NoError(t, err)
	assert.Equal(t, "Deleted device "+testDeviceID+"\n", output)

	output, err = executeCommand(t, "devices", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No devices yet.\n", output)

	_, err = executeCommand(t, "devices", "--db", dbPath, "--delete", testDeviceID)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSecretCommand(t *testing.T) {
	output, err := executeCommand(t, "secret")
	require.NoError(t, err)

	secret := strings.TrimSpace(output)
	assert.Len(t, secret, defaultSecretKeyLength)
	for _, char := range secret {
		assert.True(t, strings.ContainsRune(security.SecretKeyAlphabet, char), "unexpected char %q", char)
	}

	output, err = executeCommand(t, "secret", "--length", "8", "--format", "json")
	require.NoError(t, err)
	data := decodeEnvelope[map[string]string](t, output)
	assert.Len(t, data["secret_key"], security.MinSecretKeyLength)
}
