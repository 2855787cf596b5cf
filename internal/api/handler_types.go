package api

import (
	"html/template"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/i18n"
	"github.com/terraincognita07/aura/internal/knowledge"
	"github.com/terraincognita07/aura/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db               *gorm.DB
	secretKey        []byte
	location         *time.Location
	cookieSecure     bool
	weekStart        time.Weekday
	stampOnStart     bool
	i18n             *i18n.Manager
	library          *knowledge.Library
	templates        map[string]*template.Template
	partials         map[string]*template.Template
	cookieCodec      *secureCookieCodec
	repositories     *db.Repositories
	checkinService   *services.CheckinService
	dashboardService *services.DashboardService
	timelineService  *services.TimelineService
	exportService    *services.ExportService
	newID            func() string
	now              func() time.Time
}

// Options carries the settings that change domain behaviour rather than transport.
type Options struct {
	WeekStart    time.Weekday
	StampOnStart bool
	Library      *knowledge.Library
	// NewID and Now are replaced in tests.
	NewID func() string
	Now   func() time.Time
}

type FlashPayload struct {
	Toast string `json:"toast,omitempty"`
	Error string `json:"error,omitempty"`
}

type deviceClaims struct {
	jwt.RegisteredClaims
}

const (
	deviceTokenTTL        = 365 * 24 * time.Hour
	checkinSessionTTL     = 2 * time.Hour
	dashboardRecentLimit  = 5
	timelineMonthLayout   = "2006-01"
	deviceTokenIssuer     = "aura"
	checkinCookiePurpose  = "checkin-session"
	secureCookieHKDFLabel = "aura.secure-cookie.v1"
)

type symptomOption struct {
	Key      string
	Selected bool
}

type quickLogView struct {
	ID    string
	Type  string
	At    time.Time
	Label string
}

type timelineEntryView struct {
	Result   string
	Color    string
	Time     string
	Symptoms []string
	Notes    string
}
