package api

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	deviceCookieName   = "aura_device"
	languageCookieName = "aura_lang"
	flashCookieName    = "aura_flash"
	checkinCookieName  = "aura_checkin"

	languageCookieTTL = 365 * 24 * time.Hour
	flashCookieTTL    = 5 * time.Minute
)

// cookieSpec describes one cookie the app issues. Every cookie is path "/"
// and SameSite=Lax; Secure follows COOKIE_SECURE.
type cookieSpec struct {
	name     string
	httpOnly bool
	ttl      time.Duration
}

var (
	deviceCookie   = cookieSpec{name: deviceCookieName, httpOnly: true, ttl: deviceTokenTTL}
	languageCookie = cookieSpec{name: languageCookieName, ttl: languageCookieTTL}
	flashCookie    = cookieSpec{name: flashCookieName, httpOnly: true, ttl: flashCookieTTL}
	checkinCookie  = cookieSpec{name: checkinCookieName, httpOnly: true, ttl: checkinSessionTTL}
)

func (handler *Handler) writeCookie(c *fiber.Ctx, spec cookieSpec, value string) {
	c.Cookie(handler.buildCookie(spec, value, time.Now().Add(spec.ttl)))
}

func (handler *Handler) expireCookie(c *fiber.Ctx, spec cookieSpec) {
	c.Cookie(handler.buildCookie(spec, "", time.Now().Add(-time.Hour)))
}

func (handler *Handler) buildCookie(spec cookieSpec, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     spec.name,
		Value:    value,
		Path:     "/",
		HTTPOnly: spec.httpOnly,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	}
}

// setFlash queues a one-shot toast or error message key for the next page.
func (handler *Handler) setFlash(c *fiber.Ctx, payload FlashPayload) {
	payload = payload.normalized()
	if payload.empty() {
		handler.expireCookie(c, flashCookie)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}
	handler.writeCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(serialized))
}

// popFlash reads and clears the pending flash message.
func (handler *Handler) popFlash(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.expireCookie(c, flashCookie)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return FlashPayload{}
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return FlashPayload{}
	}
	return payload.normalized()
}

func (payload FlashPayload) normalized() FlashPayload {
	return FlashPayload{
		Toast: strings.TrimSpace(payload.Toast),
		Error: strings.TrimSpace(payload.Error),
	}
}

func (payload FlashPayload) empty() bool {
	return payload.Toast == "" && payload.Error == ""
}
