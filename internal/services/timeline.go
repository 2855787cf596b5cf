package services

import (
	"time"

	"github.com/terraincognita07/aura/internal/models"
)

type DayColor string

const (
	DayColorNone   DayColor = ""
	DayColorGreen  DayColor = "green"
	DayColorYellow DayColor = "yellow"
	DayColorRed    DayColor = "red"
)

func dayColorRank(color DayColor) int {
	switch color {
	case DayColorRed:
		return 3
	case DayColorYellow:
		return 2
	case DayColorGreen:
		return 1
	default:
		return 0
	}
}

// ClassifyEntry colours one check-in: red for a concern, yellow for any
// non-normal symptom, green otherwise.
func ClassifyEntry(record models.CheckinRecord) DayColor {
	if record.Result == models.ResultConcern {
		return DayColorRed
	}
	for key, present := range record.Symptoms {
		if present && key != models.SymptomNormal {
			return DayColorYellow
		}
	}
	return DayColorGreen
}

// ClassifyDay returns the worst colour across a day's entries.
func ClassifyDay(records []models.CheckinRecord) DayColor {
	worst := DayColorNone
	for _, record := range records {
		color := ClassifyEntry(record)
		if dayColorRank(color) > dayColorRank(worst) {
			worst = color
		}
		if worst == DayColorRed {
			break
		}
	}
	return worst
}

// GroupByDay buckets history by local calendar day, keeping stored order.
func GroupByDay(history []models.CheckinRecord, location *time.Location) map[string][]models.CheckinRecord {
	grouped := make(map[string][]models.CheckinRecord)
	for _, record := range history {
		key := DayKey(record.CompletedAt, location)
		grouped[key] = append(grouped[key], record)
	}
	return grouped
}

// BuildMonthMatrix lays a month out in rows of seven. Zero times are blanks
// before the first and after the last day.
func BuildMonthMatrix(year int, month time.Month, weekStart time.Weekday, location *time.Location) [][]time.Time {
	if location == nil {
		location = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, location)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	leading := (int(first.Weekday()) - int(weekStart) + 7) % 7

	weeks := make([][]time.Time, 0, 6)
	current := make([]time.Time, leading, 7)
	for day := 1; day <= daysInMonth; day++ {
		current = append(current, time.Date(year, month, day, 0, 0, 0, 0, location))
		if len(current) == 7 {
			weeks = append(weeks, current)
			current = make([]time.Time, 0, 7)
		}
	}
	if len(current) > 0 {
		for len(current) < 7 {
			current = append(current, time.Time{})
		}
		weeks = append(weeks, current)
	}
	return weeks
}

// WeekdayOrder lists weekdays starting from weekStart.
func WeekdayOrder(weekStart time.Weekday) []time.Weekday {
	order := make([]time.Weekday, 0, 7)
	for offset := 0; offset < 7; offset++ {
		order = append(order, time.Weekday((int(weekStart)+offset)%7))
	}
	return order
}
