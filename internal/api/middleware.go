package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/storage"
)

const (
	contextDeviceKey   = "current_device"
	contextStoreKey    = "current_store"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentDevice(c *fiber.Ctx) string {
	device, _ := c.Locals(contextDeviceKey).(string)
	return device
}

// currentStore returns the device-scoped key-value accessor bound by DeviceMiddleware.
func currentStore(c *fiber.Ctx) (*storage.Accessor, bool) {
	store, ok := c.Locals(contextStoreKey).(*storage.Accessor)
	return store, ok && store != nil
}
