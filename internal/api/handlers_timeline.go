package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/services"
)

func (handler *Handler) ShowTimeline(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	monthStart, err := parseTimelineMonth(c.Query("month"), now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	messages := currentMessages(c)
	month := handler.timelineService.Month(store, monthStart, now)

	data := fiber.Map{
		"Title":     localizedPageTitle(messages, "meta.title.timeline", "Aura | Timeline"),
		"Month":     month,
		"MonthKey":  month.MonthStart.Format(timelineMonthLayout),
		"PrevMonth": month.PrevMonth.Format(timelineMonthLayout),
		"NextMonth": month.NextMonth.Format(timelineMonthLayout),
	}

	selected := strings.TrimSpace(c.Query("day"))
	if selected != "" {
		day, err := services.ParseDayKey(selected, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		data["SelectedDay"] = buildTimelineDayData(messages, handler.timelineService.Day(store, day))
	}
	return handler.render(c, "timeline", data)
}

// TimelineDayPanel renders the detail panel for one calendar cell.
func (handler *Handler) TimelineDayPanel(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	day, err := services.ParseDayKey(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	timelineDay := handler.timelineService.Day(store, day)
	return handler.renderPartial(c, "timeline_day_partial", buildTimelineDayData(currentMessages(c), timelineDay))
}

func (handler *Handler) GetTimeline(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	monthStart, err := parseTimelineMonth(c.Query("month"), now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}
	month := handler.timelineService.Month(store, monthStart, now)

	weeks := make([][]fiber.Map, 0, len(month.Weeks))
	for _, week := range month.Weeks {
		cells := make([]fiber.Map, 0, len(week))
		for _, cell := range week {
			if cell.Blank {
				cells = append(cells, nil)
				continue
			}
			cells = append(cells, fiber.Map{
				"date":    cell.DateString,
				"day":     cell.Day,
				"today":   cell.IsToday,
				"color":   string(cell.Color),
				"entries": cell.EntryCount,
			})
		}
		weeks = append(weeks, cells)
	}

	weekdays := make([]string, 0, len(month.Weekdays))
	for _, weekday := range month.Weekdays {
		weekdays = append(weekdays, weekday.String())
	}

	return c.JSON(fiber.Map{
		"month":    month.MonthStart.Format(timelineMonthLayout),
		"prev":     month.PrevMonth.Format(timelineMonthLayout),
		"next":     month.NextMonth.Format(timelineMonthLayout),
		"weekdays": weekdays,
		"weeks":    weeks,
	})
}

func (handler *Handler) GetTimelineDay(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	day, err := services.ParseDayKey(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	timelineDay := handler.timelineService.Day(store, day)

	entries := make([]fiber.Map, 0, len(timelineDay.Entries))
	for _, entry := range timelineDay.Entries {
		entries = append(entries, fiber.Map{
			"completedAt": entry.Record.CompletedAt,
			"time":        entry.At.Format("15:04"),
			"result":      entry.Record.Result,
			"color":       string(entry.Color),
			"symptoms":    entry.Symptoms,
			"notes":       entry.Record.Notes,
		})
	}
	return c.JSON(fiber.Map{
		"date":    timelineDay.Date.Format("2006-01-02"),
		"color":   string(timelineDay.Color),
		"entries": entries,
	})
}

// parseTimelineMonth reads a YYYY-MM query value; empty means the current month.
func parseTimelineMonth(raw string, now time.Time, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		local := now.In(location)
		return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, location), nil
	}
	return time.ParseInLocation(timelineMonthLayout, raw, location)
}

func buildTimelineDayData(messages map[string]string, day services.TimelineDay) fiber.Map {
	entries := make([]timelineEntryView, 0, len(day.Entries))
	for _, entry := range day.Entries {
		symptoms := make([]string, 0, len(entry.Symptoms))
		for _, key := range entry.Symptoms {
			symptoms = append(symptoms, symptomLabel(messages, key))
		}
		entries = append(entries, timelineEntryView{
			Result:   entry.Record.Result,
			Color:    string(entry.Color),
			Time:     entry.At.Format("15:04"),
			Symptoms: symptoms,
			Notes:    entry.Record.Notes,
		})
	}

	return fiber.Map{
		"Date":    day.Date,
		"DateKey": day.Date.Format("2006-01-02"),
		"Color":   string(day.Color),
		"Entries": entries,
	}
}
