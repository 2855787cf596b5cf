package api

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/terraincognita07/aura/internal/storage"
)

var errInvalidDeviceToken = errors.New("invalid device token")

// DeviceMiddleware identifies the browser by a signed device cookie and binds
// that device's storage namespace to the request. Unknown browsers get a new device.
// The cookie slides: once half its lifetime has passed it is re-issued for the
// same device, and a correctly signed token keeps its device even after expiry.
func (handler *Handler) DeviceMiddleware(c *fiber.Ctx) error {
	identity, err := handler.parseDeviceToken(c.Cookies(deviceCookieName))
	if err != nil {
		identity = deviceIdentity{ID: uuid.NewString()}
	}
	if identity.needsRenewal(time.Now()) {
		if err := handler.setDeviceCookie(c, identity.ID); err != nil {
			log.Printf("device cookie: %v", err)
		}
	}

	c.Locals(contextDeviceKey, identity.ID)
	c.Locals(contextStoreKey, storage.NewAccessor(handler.repositories.Storage.Scoped(identity.ID)))
	return c.Next()
}

type deviceIdentity struct {
	ID        string
	ExpiresAt time.Time
}

func (identity deviceIdentity) needsRenewal(now time.Time) bool {
	return identity.ExpiresAt.Sub(now) < deviceTokenTTL/2
}

func (handler *Handler) setDeviceCookie(c *fiber.Ctx, deviceID string) error {
	token, err := handler.buildDeviceToken(deviceID, deviceTokenTTL)
	if err != nil {
		return err
	}
	handler.writeCookie(c, deviceCookie, token)
	return nil
}

func (handler *Handler) buildDeviceToken(deviceID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := deviceClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    deviceTokenIssuer,
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

// parseDeviceToken checks the signature, algorithm and issuer. Expiry only
// drives renewal, so an expired token still names its device.
func (handler *Handler) parseDeviceToken(raw string) (deviceIdentity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return deviceIdentity{}, errInvalidDeviceToken
	}

	claims := &deviceClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return handler.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid || claims.Issuer != deviceTokenIssuer {
		return deviceIdentity{}, errInvalidDeviceToken
	}

	deviceID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return deviceIdentity{}, errInvalidDeviceToken
	}

	identity := deviceIdentity{ID: deviceID.String()}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}
