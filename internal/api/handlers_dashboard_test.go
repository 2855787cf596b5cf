package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

const testDeviceID = "6f1c2d3e-4a5b-4c6d-8e7f-8091a2b3c4d5"

func TestDashboardMintsDeviceAndShowsDueNow(t *testing.T) {
	t.Parallel()

	client, _ := newTestApp(t)
	response := client.get("/")

	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}
	if responseCookie(response.Cookies, deviceCookieName) == nil {
		t.Fatal("expected device cookie on first visit")
	}
	for _, fragment := range []string{"Today Hub", "Due now", "No check-in yet", "Track patterns"} {
		if !strings.Contains(response.Body, fragment) {
			t.Fatalf("expected dashboard to contain %q", fragment)
		}
	}
}

func TestDashboardKeepsExistingDevice(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	seedDevice(t, client, handler, testDeviceID)

	response := client.get("/")
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}
	if responseCookie(response.Cookies, deviceCookieName) != nil {
		t.Fatal("did not expect a new device cookie for a known device")
	}
}

func TestDashboardAPIReportsDueCountdown(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	store := seedDevice(t, client, handler, testDeviceID)
	store.SetLastMonthlyCheckin(time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC))

	response := client.get("/api/dashboard", "Accept", "application/json")
	if response.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.Status)
	}

	payload := decodeJSON[map[string]any](t, response.Body)
	if payload["has_checkin"] != true {
		t.Fatalf("expected has_checkin=true, got %v", payload["has_checkin"])
	}
	if payload["days_remaining"] != float64(5) {
		t.Fatalf("expected 5 days remaining, got %v", payload["days_remaining"])
	}
	if payload["due_label"] != "Due in 5 days" {
		t.Fatalf("unexpected due label %v", payload["due_label"])
	}
	if payload["completed_this_month"] != false {
		t.Fatalf("expected january check-in not to count for february, got %v", payload["completed_this_month"])
	}
	if payload["next_due"] != "2024-02-15T00:00:00.000Z" {
		t.Fatalf("unexpected next due %v", payload["next_due"])
	}
}

func TestQuickLogAppendsRecordAndSetsToast(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	store := seedDevice(t, client, handler, testDeviceID)

	response := client.postForm("/quick-log/fatigue", nil)
	if response.Status != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.Status)
	}
	if location := response.Header.Get("Location"); location != "/" {
		t.Fatalf("expected redirect to /, got %q", location)
	}
	if responseCookie(response.Cookies, flashCookieName) == nil {
		t.Fatal("expected flash cookie after quick log")
	}

	logs := store.QuickLogs()
	if len(logs) != 1 {
		t.Fatalf("expected one quick log, got %d", len(logs))
	}
	if logs[0].Type != models.QuickLogFatigue || logs[0].ID != "id-1" || !logs[0].At.Equal(testNow) {
		t.Fatalf("unexpected quick log %#v", logs[0])
	}

	page := client.get("/")
	if !strings.Contains(page.Body, "Logged to Body Journal") {
		t.Fatal("expected toast on the next page render")
	}
	if !strings.Contains(page.Body, `data-log-id="id-1"`) {
		t.Fatal("expected quick log in recent logs")
	}
}

func TestQuickLogAPIAcceptsJSONBody(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	seedDevice(t, client, handler, testDeviceID)

	response := client.do(http.MethodPost, "/api/quick-logs", nil)
	if response.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400 without a type, got %d", response.Status)
	}

	form := map[string][]string{"type": {models.QuickLogNote}}
	response = client.postForm("/api/quick-logs", form, "Accept", "application/json")
	if response.Status != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", response.Status, response.Body)
	}
	record := decodeJSON[models.QuickLogRecord](t, response.Body)
	if record.Type != models.QuickLogNote {
		t.Fatalf("expected note record, got %#v", record)
	}

	listed := decodeJSON[[]models.QuickLogRecord](t, client.get("/api/quick-logs").Body)
	if len(listed) != 1 || listed[0].ID != record.ID {
		t.Fatalf("expected the created record in the list, got %#v", listed)
	}
}

func TestQuickLogRejectsUnknownType(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	store := seedDevice(t, client, handler, testDeviceID)

	response := client.postForm("/quick-log/headache", nil, "Accept", "application/json")
	if response.Status != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.Status)
	}
	if got := readAPIError(t, response.Body); got != "invalid quick log type" {
		t.Fatalf("unexpected error %q", got)
	}
	if len(store.QuickLogs()) != 0 {
		t.Fatal("expected no quick logs to be stored")
	}
}

func TestDevicesDoNotShareStorage(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	first := seedDevice(t, client, handler, testDeviceID)
	client.postForm("/quick-log/feeling_good", nil)

	second := seedDevice(t, client, handler, "0a9b8c7d-6e5f-4a3b-9c1d-0e2f3a4b5c6d")
	if len(first.QuickLogs()) != 1 {
		t.Fatalf("expected first device to keep its log, got %d", len(first.QuickLogs()))
	}
	if len(second.QuickLogs()) != 0 {
		t.Fatalf("expected second device to start empty, got %d", len(second.QuickLogs()))
	}
}

func TestDashboardDisablesStartOnceCompletedThisMonth(t *testing.T) {
	t.Parallel()

	client, handler := newTestApp(t)
	store := seedDevice(t, client, handler, testDeviceID)

	pending := client.get("/")
	if !strings.Contains(pending.Body, `action="/checkin/start"`) {
		t.Fatal("expected start form before this month's check-in")
	}

	store.SetLastMonthlyCheckin(time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC))
	done := client.get("/")
	if done.Status != http.StatusOK {
		t.Fatalf("expected status 200, got %d", done.Status)
	}
	if strings.Contains(done.Body, `action="/checkin/start"`) {
		t.Fatal("did not expect start form after this month's check-in")
	}
	if !strings.Contains(done.Body, "Check-in Completed") {
		t.Fatal("expected disabled completed button")
	}
}
