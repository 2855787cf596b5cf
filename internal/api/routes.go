package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/knowledge", handler.ShowKnowledge)
	app.Get("/knowledge/:slug", handler.ShowKnowledgeArticle)

	app.Get("/", handler.DeviceMiddleware, handler.ShowDashboard)
	app.Post("/quick-log/:type", handler.DeviceMiddleware, handler.QuickLog)

	checkin := app.Group("/checkin", handler.DeviceMiddleware)
	checkin.Get("", handler.ShowCheckin)
	checkin.Post("/start", handler.StartCheckin)
	checkin.Post("/symptoms/:key", handler.ToggleCheckinSymptom)
	checkin.Post("/step1", handler.SubmitCheckinSymptoms)
	checkin.Post("/scan/next", handler.NextCheckinQuadrant)
	checkin.Post("/commit", handler.CommitCheckin)

	app.Get("/timeline", handler.DeviceMiddleware, handler.ShowTimeline)
	app.Get("/timeline/day/:date", handler.DeviceMiddleware, handler.TimelineDayPanel)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/knowledge", handler.GetKnowledgeArticles)
	api.Get("/knowledge/:slug", handler.GetKnowledgeArticle)

	device := api.Group("", handler.DeviceMiddleware)
	device.Get("/dashboard", handler.GetDashboard)
	device.Get("/quick-logs", handler.GetQuickLogs)
	device.Post("/quick-logs", handler.QuickLog)

	device.Get("/checkins", handler.GetCheckins)
	device.Get("/checkin", handler.GetCheckinSession)
	device.Post("/checkin/start", handler.StartCheckin)
	device.Post("/checkin/symptoms/:key", handler.ToggleCheckinSymptom)
	device.Post("/checkin/step1", handler.SubmitCheckinSymptoms)
	device.Post("/checkin/scan/next", handler.NextCheckinQuadrant)
	device.Post("/checkin/commit", handler.CommitCheckin)

	device.Get("/timeline", handler.GetTimeline)
	device.Get("/timeline/day/:date", handler.GetTimelineDay)

	device.Get("/export/summary", handler.ExportSummary)
	device.Get("/export/json", handler.ExportJSON)
	device.Get("/export/csv", handler.ExportCSV)
	device.Get("/export/quick-logs/csv", handler.ExportQuickLogCSV)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
