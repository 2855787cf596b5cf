package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/aura/internal/i18n"
	"github.com/terraincognita07/aura/internal/knowledge"
	"github.com/terraincognita07/aura/internal/templates"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}

	library := options.Library
	if library == nil {
		defaultLibrary, err := knowledge.Default()
		if err != nil {
			return nil, fmt.Errorf("load knowledge library: %w", err)
		}
		library = defaultLibrary
	}

	parsed, err := loadTemplates(templates.Files, newTemplateFuncMap())
	if err != nil {
		return nil, err
	}

	codec, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	newID := options.NewID
	if newID == nil {
		newID = func() string { return uuid.NewString() }
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		weekStart:    options.WeekStart,
		stampOnStart: options.StampOnStart,
		i18n:         i18nManager,
		library:      library,
		templates:    parsed.pages,
		partials:     parsed.partials,
		cookieCodec:  codec,
		newID:        newID,
		now:          now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) currentTime() time.Time {
	return handler.now().In(handler.location)
}
