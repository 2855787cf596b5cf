package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

var errorKeys = map[string]string{
	"invalid quick log type":                     "error.invalid_quick_log",
	"invalid symptom":                            "error.invalid_symptom",
	"invalid date":                               "error.invalid_date",
	"invalid month":                              "error.invalid_month",
	"no check-in in progress":                    "error.no_checkin_session",
	"check-in wizard is not on the summary step": "error.wizard_not_finished",
	"storage unavailable":                        "error.generic",
	"failed to build export":                     "error.generic",
	"failed to save check-in session":            "error.generic",
	"not found":                                  "not_found.title",
	"article not found":                          "knowledge.not_found",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func translateMessagef(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func errorTranslationKey(message string) string {
	key, ok := errorKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func symptomLabel(messages map[string]string, key string) string {
	label := translateMessage(messages, "symptom."+key)
	if label == "symptom."+key {
		return key
	}
	return label
}

func quickLogLabel(messages map[string]string, logType string) string {
	label := translateMessage(messages, "quick_log."+logType)
	if label == "quick_log."+logType {
		return logType
	}
	return label
}

func quadrantLabel(messages map[string]string, key string) string {
	return translateMessage(messages, "quadrant."+key)
}

func weekdayLabel(messages map[string]string, weekday time.Weekday) string {
	return translateMessage(messages, "weekday.short."+strconv.Itoa(int(weekday)))
}

func localizedMonthYear(messages map[string]string, value time.Time) string {
	key := "month." + strconv.Itoa(int(value.Month()))
	name := translateMessage(messages, key)
	if name == key {
		return value.Format("January 2006")
	}
	return fmt.Sprintf("%s %d", name, value.Year())
}

// dueLabel renders the Today Hub due line: "Due now" or "Due in N day(s)".
func dueLabel(messages map[string]string, hasCheckin bool, daysRemaining int) string {
	if !hasCheckin || daysRemaining <= 0 {
		return translateMessage(messages, "dashboard.due_now")
	}
	if daysRemaining == 1 {
		return translateMessage(messages, "dashboard.due_in_one")
	}
	return translateMessagef(messages, "dashboard.due_in_many", daysRemaining)
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}

	messages := currentMessages(c)
	if _, ok := data["Messages"]; !ok {
		data["Messages"] = messages
	}

	if _, ok := data["Lang"]; !ok {
		language := currentLanguage(c)
		if language == "" {
			language = handler.i18n.DefaultLanguage()
		}
		data["Lang"] = language
	}

	if _, ok := data["Languages"]; !ok {
		data["Languages"] = handler.i18n.SupportedLanguages()
	}

	if _, ok := data["CurrentPath"]; !ok {
		data["CurrentPath"] = currentPathWithQuery(c)
	}

	if _, ok := data["CSRFToken"]; !ok {
		data["CSRFToken"] = csrfToken(c)
	}

	if _, ok := data["NoDataLabel"]; !ok {
		noData := translateMessage(messages, "common.not_available")
		if noData == "common.not_available" {
			noData = "-"
		}
		data["NoDataLabel"] = noData
	}

	return data
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := string(c.Request().URI().RequestURI())
	if path == "" {
		return c.Path()
	}
	return path
}
