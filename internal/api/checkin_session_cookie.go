package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/services"
)

// checkinSessionPayload ties an in-progress wizard to the device that started it.
type checkinSessionPayload struct {
	DeviceID string                 `json:"device"`
	Session  services.WizardSession `json:"session"`
}

func (handler *Handler) saveCheckinSession(c *fiber.Ctx, session services.WizardSession) error {
	sealed, err := handler.cookieCodec.sealJSON(checkinCookiePurpose, checkinSessionPayload{
		DeviceID: currentDevice(c),
		Session:  session,
	})
	if err != nil {
		return err
	}
	handler.writeCookie(c, checkinCookie, sealed)
	return nil
}

// loadCheckinSession returns the wizard session for this device, if one is in
// progress. Unreadable or foreign sessions are cleared.
func (handler *Handler) loadCheckinSession(c *fiber.Ctx) (services.WizardSession, bool) {
	raw := c.Cookies(checkinCookieName)
	if raw == "" {
		return services.WizardSession{}, false
	}

	payload := checkinSessionPayload{}
	err := handler.cookieCodec.openJSON(checkinCookiePurpose, raw, &payload)
	if err != nil || payload.DeviceID != currentDevice(c) || payload.Session.ID == "" {
		handler.clearCheckinSession(c)
		return services.WizardSession{}, false
	}
	if payload.Session.Symptoms == nil {
		payload.Session.Symptoms = map[string]bool{}
	}
	return payload.Session, true
}

func (handler *Handler) clearCheckinSession(c *fiber.Ctx) {
	handler.expireCookie(c, checkinCookie)
}
