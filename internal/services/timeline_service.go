package services

import (
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

type TimelineStore interface {
	CheckinHistory() []models.CheckinRecord
}

type TimelineService struct {
	location  *time.Location
	weekStart time.Weekday
}

type CalendarCell struct {
	Blank      bool
	Date       time.Time
	DateString string
	Day        int
	IsToday    bool
	Color      DayColor
	EntryCount int
}

type CalendarMonth struct {
	MonthStart time.Time
	PrevMonth  time.Time
	NextMonth  time.Time
	Weekdays   []time.Weekday
	Weeks      [][]CalendarCell
}

type TimelineEntry struct {
	Record   models.CheckinRecord
	Color    DayColor
	At       time.Time
	Symptoms []string
}

type TimelineDay struct {
	Date    time.Time
	Color   DayColor
	Entries []TimelineEntry
}

func NewTimelineService(location *time.Location, weekStart time.Weekday) *TimelineService {
	if location == nil {
		location = time.UTC
	}
	return &TimelineService{location: location, weekStart: weekStart}
}

func (service *TimelineService) Month(store TimelineStore, monthStart time.Time, now time.Time) CalendarMonth {
	local := monthStart.In(service.location)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, service.location)
	return service.BuildMonth(store.CheckinHistory(), start, now)
}

func (service *TimelineService) BuildMonth(history []models.CheckinRecord, monthStart time.Time, now time.Time) CalendarMonth {
	grouped := GroupByDay(history, service.location)
	todayKey := DayKey(now, service.location)

	matrix := BuildMonthMatrix(monthStart.Year(), monthStart.Month(), service.weekStart, service.location)
	weeks := make([][]CalendarCell, 0, len(matrix))
	for _, row := range matrix {
		cells := make([]CalendarCell, 0, len(row))
		for _, day := range row {
			if day.IsZero() {
				cells = append(cells, CalendarCell{Blank: true})
				continue
			}
			key := day.Format(dayKeyLayout)
			entries := grouped[key]
			cells = append(cells, CalendarCell{
				Date:       day,
				DateString: key,
				Day:        day.Day(),
				IsToday:    key == todayKey,
				Color:      ClassifyDay(entries),
				EntryCount: len(entries),
			})
		}
		weeks = append(weeks, cells)
	}

	return CalendarMonth{
		MonthStart: monthStart,
		PrevMonth:  monthStart.AddDate(0, -1, 0),
		NextMonth:  monthStart.AddDate(0, 1, 0),
		Weekdays:   WeekdayOrder(service.weekStart),
		Weeks:      weeks,
	}
}

// Day lists every entry recorded on day, in stored order.
func (service *TimelineService) Day(store TimelineStore, day time.Time) TimelineDay {
	key := DayKey(day, service.location)
	records := GroupByDay(store.CheckinHistory(), service.location)[key]

	entries := make([]TimelineEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, TimelineEntry{
			Record:   record,
			Color:    ClassifyEntry(record),
			At:       record.CompletedAt.In(service.location),
			Symptoms: record.SelectedSymptoms(),
		})
	}

	return TimelineDay{
		Date:    DateAtLocation(day, service.location),
		Color:   ClassifyDay(records),
		Entries: entries,
	}
}
