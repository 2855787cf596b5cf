package api

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// redirectOrJSON finishes a form action: HTMX gets HX-Redirect, JSON clients
// get {"ok":true}, browsers get a 303.
func redirectOrJSON(c *fiber.Ctx, path string) error {
	switch {
	case isHTMX(c):
		c.Set("HX-Redirect", path)
		return c.SendStatus(fiber.StatusOK)
	case acceptsJSON(c):
		return c.JSON(fiber.Map{"ok": true})
	default:
		return c.Redirect(path, fiber.StatusSeeOther)
	}
}

// apiError reports a failure as an HTMX fragment or as JSON. JSON carries the
// stable English message under "error" and its translation under "message".
func apiError(c *fiber.Ctx, status int, message string) error {
	localized := localizedError(c, message)
	if isHTMX(c) {
		return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\">%s</div>", template.HTMLEscapeString(localized)))
	}
	return c.Status(status).JSON(fiber.Map{"error": message, "message": localized})
}

func localizedError(c *fiber.Ctx, message string) string {
	key := errorTranslationKey(message)
	if key == "" {
		return message
	}
	if localized := translateMessage(currentMessages(c), key); localized != key {
		return localized
	}
	return message
}

// wantsJSON is true for /api routes and for any request that asks for JSON.
func wantsJSON(c *fiber.Ctx) bool {
	return isAPIPath(c) || acceptsJSON(c)
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get(fiber.HeaderAccept)), fiber.MIMEApplicationJSON)
}

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func isAPIPath(c *fiber.Ctx) bool {
	return c.Path() == "/api" || strings.HasPrefix(c.Path(), "/api/")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func localizedPageTitle(messages map[string]string, key string, fallback string) string {
	if title := translateMessage(messages, key); title != key && strings.TrimSpace(title) != "" {
		return title
	}
	return fallback
}

// sanitizeRedirectPath only lets local absolute paths through.
func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if !strings.HasPrefix(candidate, "/") || strings.HasPrefix(candidate, "//") || strings.Contains(candidate, "\\") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() || parsed.Host != "" {
		return fallback
	}
	return candidate
}
