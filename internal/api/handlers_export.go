package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	payload := handler.exportService.BuildPayload(store, now)
	serialized, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(now, "json"))
	return c.Send(serialized)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	var output bytes.Buffer
	if err := handler.exportService.WriteCheckinCSV(&output, store.CheckinHistory()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(now, "csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportQuickLogCSV(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	now := handler.currentTime()
	var output bytes.Buffer
	if err := handler.exportService.WriteQuickLogCSV(&output, store.QuickLogs()); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv", fmt.Sprintf("aura-quick-logs-%s.csv", now.Format("2006-01-02")))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	store, ok := currentStore(c)
	if !ok {
		return apiError(c, fiber.StatusInternalServerError, "storage unavailable")
	}

	summary := handler.exportService.Summary(store)
	return c.JSON(fiber.Map{
		"total_checkins":   summary.TotalCheckins,
		"total_quick_logs": summary.TotalQuickLogs,
		"has_data":         summary.HasData,
		"date_from":        summary.DateFrom,
		"date_to":          summary.DateTo,
	})
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("aura-export-%s.%s", now.Format("2006-01-02"), extension)
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
