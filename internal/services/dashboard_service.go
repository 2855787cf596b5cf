package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

var ErrInvalidQuickLogType = errors.New("invalid quick log type")

type DashboardStore interface {
	LastMonthlyCheckin() (time.Time, bool)
	SetLastMonthlyCheckin(at time.Time) bool
	QuickLogs() []models.QuickLogRecord
	AppendQuickLog(record models.QuickLogRecord) bool
}

type DashboardService struct {
	location     *time.Location
	stampOnStart bool
	newID        func() string
}

type DashboardSummary struct {
	Due            DueStatus
	Tip            string
	RecentLogs     []models.QuickLogRecord
	QuickLogsTotal int
}

// NewDashboardService builds the Today Hub. With stampOnStart set, starting a
// check-in marks lastMonthlyCheckin immediately, before the wizard finishes.
func NewDashboardService(location *time.Location, stampOnStart bool, newID func() string) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		location:     location,
		stampOnStart: stampOnStart,
		newID:        newID,
	}
}

func (service *DashboardService) Summary(store DashboardStore, now time.Time, recentLimit int) DashboardSummary {
	last, found := store.LastMonthlyCheckin()
	logs := store.QuickLogs()

	recent := make([]models.QuickLogRecord, 0, recentLimit)
	for index := len(logs) - 1; index >= 0 && len(recent) < recentLimit; index-- {
		recent = append(recent, logs[index])
	}

	return DashboardSummary{
		Due:            ComputeDueStatus(last, found, now, service.location),
		Tip:            TipOfTheDay(now, service.location),
		RecentLogs:     recent,
		QuickLogsTotal: len(logs),
	}
}

// StartCheckin reports whether lastMonthlyCheckin was stamped.
func (service *DashboardService) StartCheckin(store DashboardStore, now time.Time) bool {
	if !service.stampOnStart {
		return false
	}
	return store.SetLastMonthlyCheckin(now)
}

func (service *DashboardService) QuickLog(store DashboardStore, logType string, now time.Time) (models.QuickLogRecord, error) {
	if !models.IsValidQuickLogType(logType) {
		return models.QuickLogRecord{}, ErrInvalidQuickLogType
	}
	record := models.QuickLogRecord{
		ID:   service.newID(),
		Type: logType,
		At:   now.UTC(),
	}
	store.AppendQuickLog(record)
	return record, nil
}

func (service *DashboardService) Location() *time.Location {
	return service.location
}
