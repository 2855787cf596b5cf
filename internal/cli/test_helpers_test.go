package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/storage"
)

const testDeviceID = "6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5"

var testNow = time.Date(2024, time.February, 25, 12, 0, 0, 0, time.UTC)

// useTestEnvironment pins the clock and the settings the offline commands read.
func useTestEnvironment(t *testing.T) {
	t.Helper()
	t.Setenv("TZ", "UTC")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("DB_PATH", "")

	previous := nowFunc
	nowFunc = func() time.Time { return testNow }
	t.Cleanup(func() { nowFunc = previous })
}

// seedDatabase writes a February of check-ins for testDeviceID and returns the
// database path.
func seedDatabase(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "aura-cli.db")
	database, err := db.OpenSQLite(dbPath)
	require.NoError(t, err)
	sqlDB, err := database.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	accessor := storage.NewAccessor(db.NewRepositories(database).Storage.Scoped(testDeviceID))
	records := []models.CheckinRecord{
		{
			CompletedAt: time.Date(2024, time.January, 28, 9, 0, 0, 0, time.UTC),
			Symptoms:    map[string]bool{models.SymptomNormal: true},
			Result:      models.ResultClear,
		},
		{
			CompletedAt: time.Date(2024, time.February, 3, 9, 15, 0, 0, time.UTC),
			Symptoms:    map[string]bool{models.SymptomTenderness: true, models.SymptomPain: true},
			Notes:       "left side sore",
			Result:      models.ResultConcern,
		},
		{
			CompletedAt: time.Date(2024, time.February, 3, 18, 0, 0, 0, time.UTC),
			Symptoms:    map[string]bool{models.SymptomNormal: true},
			Result:      models.ResultClear,
		},
		{
			CompletedAt: time.Date(2024, time.February, 10, 8, 30, 0, 0, time.UTC),
			Symptoms:    map[string]bool{models.SymptomNormal: true},
			Result:      models.ResultClear,
		},
		{
			CompletedAt: time.Date(2024, time.February, 21, 7, 45, 0, 0, time.UTC),
			Symptoms:    map[string]bool{"itching": true},
			Result:      models.ResultClear,
		},
	}
	for _, record := range records {
		require.True(t, accessor.AppendCheckin(record))
	}
	require.True(t, accessor.SetLastMonthlyCheckin(records[len(records)-1].CompletedAt))
	require.True(t, accessor.AppendQuickLog(models.QuickLogRecord{
		ID:   "q-1",
		Type: models.QuickLogFeelingGood,
		At:   time.Date(2024, time.February, 20, 10, 0, 0, 0, time.UTC),
	}))

	return dbPath
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file="))
	err := cmd.Execute()
	return out.String(), err
}
