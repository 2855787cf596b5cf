package api

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate":    formatTemplateDate,
		"t":             translateMessage,
		"tf":            translateMessagef,
		"symptomLabel":  symptomLabel,
		"quickLogLabel": quickLogLabel,
		"quadrantLabel": quadrantLabel,
		"weekdayLabel":  weekdayLabel,
		"monthYear":     localizedMonthYear,
		"isActiveRoute": isActiveTemplateRoute,
		"dict":          templateDict,
	}
}

func formatTemplateDate(value time.Time, layout string) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(layout)
}

// isActiveTemplateRoute marks a nav link active for its own path and any
// path below it. "/" only matches the dashboard itself.
func isActiveTemplateRoute(currentPath string, route string) bool {
	parsed, err := url.Parse(strings.TrimSpace(currentPath))
	path := "/"
	if err == nil && parsed.Path != "" {
		path = parsed.Path
	}
	if route == "/" {
		return path == "/"
	}
	return path == route || strings.HasPrefix(path, route+"/")
}

// templateDict builds a map from alternating keys and values so a partial can
// receive more than one argument.
func templateDict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments (%d)", len(pairs))
	}
	result := make(map[string]any, len(pairs)/2)
	for index := 0; index < len(pairs); index += 2 {
		key, ok := pairs[index].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is %T, not string", pairs[index], pairs[index])
		}
		result[key] = pairs[index+1]
	}
	return result, nil
}
