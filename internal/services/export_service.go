package services

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

var ExportCSVHeaders = []string{
	"Date",
	"Time",
	"Result",
	"Tenderness",
	"Swelling",
	"Pain",
	"Normal",
	"Notes",
}

var ExportQuickLogCSVHeaders = []string{
	"Date",
	"Time",
	"Type",
	"ID",
}

type ExportStore interface {
	CheckinHistory() []models.CheckinRecord
	QuickLogs() []models.QuickLogRecord
	LastMonthlyCheckin() (time.Time, bool)
}

type ExportPayload struct {
	ExportedAt         string                  `json:"exported_at"`
	LastMonthlyCheckin *time.Time              `json:"last_monthly_checkin,omitempty"`
	CheckinHistory     []models.CheckinRecord  `json:"checkin_history"`
	QuickLogs          []models.QuickLogRecord `json:"quick_logs"`
}

type ExportSummary struct {
	TotalCheckins  int
	TotalQuickLogs int
	HasData        bool
	DateFrom       string
	DateTo         string
}

type ExportService struct {
	location *time.Location
}

func NewExportService(location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{location: location}
}

func (service *ExportService) BuildPayload(store ExportStore, now time.Time) ExportPayload {
	payload := ExportPayload{
		ExportedAt:     now.In(service.location).Format(time.RFC3339),
		CheckinHistory: store.CheckinHistory(),
		QuickLogs:      store.QuickLogs(),
	}
	if last, found := store.LastMonthlyCheckin(); found {
		payload.LastMonthlyCheckin = &last
	}
	return payload
}

func (service *ExportService) Summary(store ExportStore) ExportSummary {
	history := store.CheckinHistory()
	summary := ExportSummary{
		TotalCheckins:  len(history),
		TotalQuickLogs: len(store.QuickLogs()),
	}
	summary.HasData = summary.TotalCheckins > 0 || summary.TotalQuickLogs > 0
	if len(history) == 0 {
		return summary
	}

	earliest := history[0].CompletedAt
	latest := history[0].CompletedAt
	for _, record := range history[1:] {
		if record.CompletedAt.Before(earliest) {
			earliest = record.CompletedAt
		}
		if record.CompletedAt.After(latest) {
			latest = record.CompletedAt
		}
	}
	summary.DateFrom = DayKey(earliest, service.location)
	summary.DateTo = DayKey(latest, service.location)
	return summary
}

// WriteCheckinCSV writes one row per check-in in stored order.
func (service *ExportService) WriteCheckinCSV(output io.Writer, history []models.CheckinRecord) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return err
	}

	for _, record := range history {
		local := record.CompletedAt.In(service.location)
		if err := writer.Write([]string{
			local.Format(dayKeyLayout),
			local.Format("15:04"),
			record.Result,
			csvYesNo(record.Symptoms[models.SymptomTenderness]),
			csvYesNo(record.Symptoms[models.SymptomSwelling]),
			csvYesNo(record.Symptoms[models.SymptomPain]),
			csvYesNo(record.Symptoms[models.SymptomNormal]),
			strings.TrimSpace(record.Notes),
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteQuickLogCSV writes one row per quick log in stored order.
func (service *ExportService) WriteQuickLogCSV(output io.Writer, logs []models.QuickLogRecord) error {
	writer := csv.NewWriter(output)
	if err := writer.Write(ExportQuickLogCSVHeaders); err != nil {
		return err
	}

	for _, entry := range logs {
		local := entry.At.In(service.location)
		if err := writer.Write([]string{
			local.Format(dayKeyLayout),
			local.Format("15:04"),
			entry.Type,
			entry.ID,
		}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
