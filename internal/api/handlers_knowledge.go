package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/knowledge"
)

func (handler *Handler) ShowKnowledge(c *fiber.Ctx) error {
	messages := currentMessages(c)
	return handler.render(c, "knowledge", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.knowledge", "Aura | Learn"),
		"Categories": handler.library.Categories(),
	})
}

func (handler *Handler) ShowKnowledgeArticle(c *fiber.Ctx) error {
	messages := currentMessages(c)
	article, err := handler.library.FindBySlug(c.Params("slug"))
	if errors.Is(err, knowledge.ErrArticleNotFound) {
		c.Status(fiber.StatusNotFound)
		return handler.render(c, "knowledge_article", fiber.Map{
			"Title":    localizedPageTitle(messages, "meta.title.knowledge", "Aura | Learn"),
			"NotFound": true,
		})
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load article")
	}

	return handler.render(c, "knowledge_article", fiber.Map{
		"Title":   article.Title + " | Aura",
		"Article": article,
	})
}

func (handler *Handler) GetKnowledgeArticles(c *fiber.Ctx) error {
	return c.JSON(handler.library.Articles())
}

func (handler *Handler) GetKnowledgeArticle(c *fiber.Ctx) error {
	article, err := handler.library.FindBySlug(c.Params("slug"))
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "article not found")
	}
	return c.JSON(article)
}
