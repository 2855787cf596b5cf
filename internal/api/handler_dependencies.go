package api

import (
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.checkinService = services.NewCheckinService(handler.newID)
	handler.dashboardService = services.NewDashboardService(handler.location, handler.stampOnStart, handler.newID)
	handler.timelineService = services.NewTimelineService(handler.location, handler.weekStart)
	handler.exportService = services.NewExportService(handler.location)
	return handler
}
