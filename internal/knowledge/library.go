// Package knowledge serves the compiled-in article library.
package knowledge

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/aura/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var defaultArticles []byte

var ErrArticleNotFound = errors.New("knowledge article not found")

type Library struct {
	articles []models.KnowledgeArticle
	bySlug   map[string]int
}

type Category struct {
	Name     string
	Articles []models.KnowledgeArticle
}

// Default parses the embedded article list.
func Default() (*Library, error) {
	return Parse(defaultArticles)
}

func Parse(raw []byte) (*Library, error) {
	articles := make([]models.KnowledgeArticle, 0)
	if err := yaml.Unmarshal(raw, &articles); err != nil {
		return nil, fmt.Errorf("parse knowledge articles: %w", err)
	}
	return New(articles)
}

func New(articles []models.KnowledgeArticle) (*Library, error) {
	library := &Library{
		articles: make([]models.KnowledgeArticle, 0, len(articles)),
		bySlug:   make(map[string]int, len(articles)),
	}
	for _, article := range articles {
		slug := strings.TrimSpace(article.Slug)
		if slug == "" {
			return nil, fmt.Errorf("knowledge article %q has no slug", article.Title)
		}
		if _, exists := library.bySlug[slug]; exists {
			return nil, fmt.Errorf("duplicate knowledge article slug %q", slug)
		}
		for _, visual := range article.Visuals {
			if visual.Type != models.VisualDiagram && visual.Type != models.VisualVideo {
				return nil, fmt.Errorf("knowledge article %q has unsupported visual type %q", slug, visual.Type)
			}
		}
		article.Slug = slug
		library.bySlug[slug] = len(library.articles)
		library.articles = append(library.articles, article)
	}
	return library, nil
}

func (library *Library) FindBySlug(slug string) (models.KnowledgeArticle, error) {
	index, ok := library.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return models.KnowledgeArticle{}, ErrArticleNotFound
	}
	return library.articles[index], nil
}

func (library *Library) Articles() []models.KnowledgeArticle {
	result := make([]models.KnowledgeArticle, len(library.articles))
	copy(result, library.articles)
	return result
}

// Categories groups articles in first-seen category order.
func (library *Library) Categories() []Category {
	categories := make([]Category, 0)
	positions := make(map[string]int)
	for _, article := range library.articles {
		position, ok := positions[article.Category]
		if !ok {
			position = len(categories)
			positions[article.Category] = position
			categories = append(categories, Category{Name: article.Category})
		}
		categories[position].Articles = append(categories[position].Articles, article)
	}
	return categories
}
