package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/aura/internal/api"
	"github.com/terraincognita07/aura/internal/config"
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/i18n"
	"gorm.io/gorm"
)

const (
	csrfCookieName  = "aura_csrf"
	csrfFormField   = "csrf_token"
	csrfHeaderName  = "X-CSRF-Token"
	shutdownTimeout = 10 * time.Second
)

var errCSRFTokenMissing = errors.New("csrf token not found in form or header")

// NewServeCommand starts the web server. It is also what `aura` runs with no
// subcommand.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, rootOpts)
		},
	}
}

func runServe(cmd *cobra.Command, rootOpts *RootOptions) error {
	cfg, err := config.LoadFile(rootOpts.EnvFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	if rootOpts.DBPath != "" {
		cfg.DBPath = rootOpts.DBPath
	}

	location, ok := cfg.Location()
	if !ok {
		log.Printf("invalid TZ %q, falling back to UTC", cfg.TimeZone)
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "database init failed", err)
	}

	app, err := newServerApp(cfg, database, location)
	if err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Aura listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, location.String())
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// newServerApp wires middleware and routes for an already opened database.
func newServerApp(cfg *config.Config, database *gorm.DB, location *time.Location) (*fiber.App, error) {
	i18nManager, err := i18n.NewDefaultManager(cfg.DefaultLanguage)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, location, i18nManager, cfg.CookieSecure, api.Options{
		WeekStart:    cfg.WeekStartDay(),
		StampOnStart: cfg.StampOnStart,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Aura",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return app, nil
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:" + csrfFormField,
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Extractor:      csrfFromFormOrHeader,
	}
}

// csrfFromFormOrHeader accepts the token from the HTML form field, or from the
// header set by HTMX and JSON clients.
func csrfFromFormOrHeader(c *fiber.Ctx) (string, error) {
	if token := strings.TrimSpace(c.FormValue(csrfFormField)); token != "" {
		return token, nil
	}
	if token := strings.TrimSpace(c.Get(csrfHeaderName)); token != "" {
		return token, nil
	}
	return "", errCSRFTokenMissing
}
