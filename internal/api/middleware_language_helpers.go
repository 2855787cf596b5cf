package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LanguageMiddleware picks the UI language: an explicit ?lang= wins, then the
// language cookie, then Accept-Language. The choice is remembered in the cookie.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.resolveLanguage(c.Query("lang"), cookieLanguage, c.Get(fiber.HeaderAcceptLanguage))
	if cookieLanguage != language {
		handler.writeCookie(c, languageCookie, language)
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

func (handler *Handler) resolveLanguage(queryLanguage string, cookieLanguage string, acceptLanguage string) string {
	for _, explicit := range []string{queryLanguage, cookieLanguage} {
		if strings.TrimSpace(explicit) != "" {
			return handler.i18n.NormalizeLanguage(explicit)
		}
	}
	return handler.i18n.DetectFromAcceptLanguage(acceptLanguage)
}

// SetLanguage serves /lang/:lang and sends the browser back to ?next.
func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	handler.writeCookie(c, languageCookie, handler.i18n.NormalizeLanguage(c.Params("lang")))
	return redirectOrJSON(c, sanitizeRedirectPath(c.Query("next"), "/"))
}
