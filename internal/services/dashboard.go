package services

import "time"

// Tips rotate by day of month, so the cycle restarts every len(Tips) days
// regardless of month length.
var Tips = []string{
	"Know your normal: regular self-awareness helps notice changes early.",
	"Support your body: balanced meals, hydration, and gentle movement help.",
	"Wear comfort-first: choose supportive, comfortable bras and fabrics.",
	"Track patterns: logging symptoms can reveal helpful monthly trends.",
	"Rest matters: prioritize sleep to support overall breast health.",
	"Be kind to yourself: small steps count toward long-term wellbeing.",
	"If something feels off, note it and check again in a few days.",
}

type DueStatus struct {
	HasCheckin         bool
	LastCheckin        time.Time
	NextDue            time.Time
	DaysRemaining      int
	CompletedThisMonth bool
}

// DueNow is true with no check-in on record or once the next due day arrives.
func (status DueStatus) DueNow() bool {
	return !status.HasCheckin || status.DaysRemaining == 0
}

// NextDueDate adds one calendar month. Days past the target month's end roll
// over into the following month (Jan 31 -> Mar 2 or 3).
func NextDueDate(last time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	return last.In(location).AddDate(0, 1, 0)
}

func DaysUntilNextDue(last time.Time, now time.Time, location *time.Location) int {
	days := CalendarDaysBetween(now, NextDueDate(last, location), location)
	if days < 0 {
		return 0
	}
	return days
}

func IsCompletedThisMonth(last time.Time, now time.Time, location *time.Location) bool {
	if location == nil {
		location = time.UTC
	}
	lastLocal := last.In(location)
	nowLocal := now.In(location)
	return lastLocal.Year() == nowLocal.Year() && lastLocal.Month() == nowLocal.Month()
}

func ComputeDueStatus(last time.Time, hasLast bool, now time.Time, location *time.Location) DueStatus {
	if !hasLast {
		return DueStatus{}
	}
	return DueStatus{
		HasCheckin:         true,
		LastCheckin:        last,
		NextDue:            DateAtLocation(NextDueDate(last, location), location),
		DaysRemaining:      DaysUntilNextDue(last, now, location),
		CompletedThisMonth: IsCompletedThisMonth(last, now, location),
	}
}

func TipIndex(dayOfMonth int, count int) int {
	if count <= 0 {
		return 0
	}
	index := dayOfMonth % count
	if index < 0 {
		index += count
	}
	return index
}

func TipOfTheDay(now time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return Tips[TipIndex(now.In(location).Day(), len(Tips))]
}
