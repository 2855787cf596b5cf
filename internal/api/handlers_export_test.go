package api

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/services"
)

func TestExportCSVWritesOneRowPerCheckin(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	seedTimelineHistory(seedDevice(t, client, handler, testDeviceID))

	response := client.get("/api/export/csv")
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}
	if got := response.Header.Get("Content-Type"); !strings.Contains(got, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", got)
	}
	if got := response.Header.Get("Content-Disposition"); got != "attachment; filename=aura-export-2024-02-10.csv" {
		t.Fatalf("unexpected content disposition %q", got)
	}

	records, err := csv.NewReader(strings.NewReader(response.Body)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(services.ExportCSVHeaders, ",") {
		t.Fatalf("unexpected header %v", records[0])
	}
	if records[3][0] != "2024-02-05" || records[3][2] != models.ResultConcern || records[3][7] != "left side" {
		t.Fatalf("unexpected last row %v", records[3])
	}
}

func TestExportJSONIncludesAllKeys(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	store := seedDevice(t, client, handler, testDeviceID)
	seedTimelineHistory(store)
	store.SetLastMonthlyCheckin(time.Date(2024, time.February, 5, 18, 45, 0, 0, time.UTC))
	client.postForm("/quick-log/feeling_good", nil)

	response := client.get("/api/export/json")
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}

	payload := decodeJSON[services.ExportPayload](t, response.Body)
	if len(payload.CheckinHistory) != 3 || len(payload.QuickLogs) != 1 {
		t.Fatalf("unexpected export sizes %d/%d", len(payload.CheckinHistory), len(payload.QuickLogs))
	}
	if payload.LastMonthlyCheckin == nil {
		t.Fatal("expected last monthly check-in in export")
	}

	summary := decodeJSON[map[string]any](t, client.get("/api/export/summary").Body)
	if summary["total_checkins"] != float64(3) || summary["date_from"] != "2024-02-03" || summary["date_to"] != "2024-02-05" {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestExportQuickLogCSV(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	seedDevice(t, client, handler, testDeviceID)
	client.postForm("/quick-log/fatigue", nil)

	response := client.get("/api/export/quick-logs/csv")
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}
	if got := response.Header.Get("Content-Disposition"); got != "attachment; filename=aura-quick-logs-2024-02-10.csv" {
		t.Fatalf("unexpected content disposition %q", got)
	}

	records, err := csv.NewReader(strings.NewReader(response.Body)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(records))
	}
	if strings.Join(records[1], ",") != "2024-02-10,12:00,fatigue,id-1" {
		t.Fatalf("unexpected row %v", records[1])
	}
}
