package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/models"
	"github.com/terraincognita07/aura/internal/services"
	"github.com/terraincognita07/aura/internal/storage"
)

type quickLogInput struct {
	Type string `json:"type" form:"type"`
}

func (handler *Handler) ShowDashboard(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	messages := currentMessages(c)
	now := handler.currentTime()
	summary := handler.dashboardService.Summary(store, now, dashboardRecentLimit)
	return handler.render(c, "dashboard", buildDashboardPageData(messages, summary, now, handler.location))
}

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	summary := handler.dashboardService.Summary(store, now, dashboardRecentLimit)
	payload := fiber.Map{
		"has_checkin":          summary.Due.HasCheckin,
		"days_remaining":       summary.Due.DaysRemaining,
		"due_now":              summary.Due.DueNow(),
		"due_label":            dueLabel(currentMessages(c), summary.Due.HasCheckin, summary.Due.DaysRemaining),
		"completed_this_month": summary.Due.CompletedThisMonth,
		"tip":                  summary.Tip,
		"recent_logs":          summary.RecentLogs,
		"quick_logs_total":     summary.QuickLogsTotal,
	}
	if summary.Due.HasCheckin {
		payload["last_checkin"] = storage.FormatTimestamp(summary.Due.LastCheckin)
		payload["next_due"] = storage.FormatTimestamp(summary.Due.NextDue)
	}
	return c.JSON(payload)
}

// QuickLog serves both POST /quick-log/:type and POST /api/quick-logs.
func (handler *Handler) QuickLog(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	logType := c.Params("type")
	if logType == "" {
		input := quickLogInput{}
		if err := c.BodyParser(&input); err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid quick log type")
		}
		logType = input.Type
	}

	record, err := handler.dashboardService.QuickLog(store, logType, handler.currentTime())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid quick log type")
	}

	if wantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(record)
	}
	handler.setFlash(c, FlashPayload{Toast: "flash.logged"})
	return redirectOrJSON(c, "/")
}

func (handler *Handler) GetQuickLogs(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}
	return c.JSON(store.QuickLogs())
}

func buildDashboardPageData(messages map[string]string, summary services.DashboardSummary, now time.Time, location *time.Location) fiber.Map {
	recent := make([]quickLogView, 0, len(summary.RecentLogs))
	for _, record := range summary.RecentLogs {
		recent = append(recent, quickLogView{
			ID:    record.ID,
			Type:  record.Type,
			At:    record.At.In(location),
			Label: quickLogLabel(messages, record.Type),
		})
	}

	return fiber.Map{
		"Title":         localizedPageTitle(messages, "meta.title.dashboard", "Aura | Today"),
		"Today":         now,
		"Due":           summary.Due,
		"LastCheckin":   summary.Due.LastCheckin.In(location),
		"NextDue":       summary.Due.NextDue.In(location),
		"DueLabel":      dueLabel(messages, summary.Due.HasCheckin, summary.Due.DaysRemaining),
		"Tip":           summary.Tip,
		"QuickLogTypes": models.QuickLogTypes,
		"RecentLogs":    recent,
		"TotalLogs":     summary.QuickLogsTotal,
	}
}
