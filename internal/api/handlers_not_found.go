package api

import (
	"github.com/gofiber/fiber/v2"
)

// NotFound is the catch-all registered after every route.
func (handler *Handler) NotFound(c *fiber.Ctx) error {
	if wantsJSON(c) || isHTMX(c) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}

	c.Status(fiber.StatusNotFound)
	return handler.render(c, "not_found", fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "meta.title.not_found", "Aura | Page Not Found"),
	})
}
