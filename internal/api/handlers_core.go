package api

import (
	"bytes"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// render executes a full page through the "base" layout. The pending flash
// message is consumed unless data already carries one.
func (handler *Handler) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = handler.popFlash(c)
	}
	return handler.execute(c, handler.templates[name], name, "base", data)
}

// renderPartial executes a fragment for HTMX swaps, without the layout.
func (handler *Handler) renderPartial(c *fiber.Ctx, name string, data fiber.Map) error {
	return handler.execute(c, handler.partials[name], name, name, data)
}

func (handler *Handler) execute(c *fiber.Ctx, tmpl *template.Template, name string, entry string, data fiber.Map) error {
	if tmpl == nil {
		log.Printf("render %s: template not registered", name)
		return c.Status(fiber.StatusInternalServerError).SendString("template not found")
	}

	var output bytes.Buffer
	if err := tmpl.ExecuteTemplate(&output, entry, handler.withTemplateDefaults(c, data)); err != nil {
		log.Printf("render %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).SendString("failed to render template")
	}
	c.Type("html", "utf-8")
	return c.Send(output.Bytes())
}
