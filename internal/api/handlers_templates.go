package api

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
)

// Every page is parsed together with base.html and all *_partial.html files,
// so pages can embed partials that HTMX also fetches on their own.
var pageTemplates = []string{
	"dashboard",
	"checkin",
	"timeline",
	"knowledge",
	"knowledge_article",
	"not_found",
}

const (
	layoutTemplateFile  = "base.html"
	partialTemplateGlob = "*_partial.html"
)

type templateSet struct {
	pages    map[string]*template.Template
	partials map[string]*template.Template
}

func loadTemplates(files fs.FS, funcMap template.FuncMap) (templateSet, error) {
	set := templateSet{
		pages:    make(map[string]*template.Template, len(pageTemplates)),
		partials: make(map[string]*template.Template),
	}

	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(files, layoutTemplateFile, page+".html", partialTemplateGlob)
		if err != nil {
			return templateSet{}, fmt.Errorf("parse page template %s: %w", page, err)
		}
		set.pages[page] = parsed
	}

	partialFiles, err := fs.Glob(files, partialTemplateGlob)
	if err != nil {
		return templateSet{}, fmt.Errorf("list partial templates: %w", err)
	}
	for _, file := range partialFiles {
		name := strings.TrimSuffix(path.Base(file), ".html")
		parsed, err := template.New(name).Funcs(funcMap).ParseFS(files, file)
		if err != nil {
			return templateSet{}, fmt.Errorf("parse partial %s: %w", file, err)
		}
		set.partials[name] = parsed
	}
	return set, nil
}
