// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/terraincognita07/aura/internal/security"
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string `mapstructure:"PORT"`
	DBPath          string `mapstructure:"DB_PATH"`
	SecretKey       string `mapstructure:"SECRET_KEY"`
	TimeZone        string `mapstructure:"TZ"`
	DefaultLanguage string `mapstructure:"DEFAULT_LANGUAGE"`
	CookieSecure    bool   `mapstructure:"COOKIE_SECURE"`
	// WeekStart is "sunday" or "monday".
	WeekStart string `mapstructure:"WEEK_START"`
	// StampOnStart marks lastMonthlyCheckin as soon as a check-in starts
	// instead of when it is saved.
	StampOnStart bool `mapstructure:"STAMP_ON_START"`
}

// Load reads .env when present, then the environment. Env vars win.
func Load() (*Config, error) {
	return LoadFile(".env")
}

func LoadFile(envFile string) (*Config, error) {
	cfg, err := Read(envFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads settings without validating them. Offline commands that never
// issue cookies use it so they work without a SECRET_KEY.
func Read(envFile string) (*Config, error) {
	v := viper.New()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig()
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "data/aura.db")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("TZ", "UTC")
	v.SetDefault("DEFAULT_LANGUAGE", "en")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("WEEK_START", "sunday")
	v.SetDefault("STAMP_ON_START", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.WeekStart = strings.ToLower(strings.TrimSpace(cfg.WeekStart))
	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if err := ValidatePort(cfg.Port); err != nil {
		return err
	}
	if err := ValidateSecretKey(cfg.SecretKey); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("config: DB_PATH must be set")
	}
	if _, err := ParseWeekStart(cfg.WeekStart); err != nil {
		return err
	}
	return nil
}

func ValidatePort(raw string) error {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("config: PORT must be numeric, got %q", raw)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("config: PORT must be between 1 and 65535, got %d", port)
	}
	return nil
}

func ValidateSecretKey(secret string) error {
	if secret == "" {
		return errors.New("config: SECRET_KEY must be set")
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return errors.New("config: SECRET_KEY uses an example placeholder")
	}
	if len(secret) < security.MinSecretKeyLength {
		return fmt.Errorf("config: SECRET_KEY must be at least %d characters", security.MinSecretKeyLength)
	}
	return nil
}

func ParseWeekStart(raw string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("config: WEEK_START must be sunday or monday, got %q", raw)
	}
}

func (cfg *Config) WeekStartDay() time.Weekday {
	day, _ := ParseWeekStart(cfg.WeekStart)
	return day
}

// Location resolves TZ, falling back to UTC for unknown zones.
func (cfg *Config) Location() (*time.Location, bool) {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.TimeZone))
	if err != nil {
		return time.UTC, false
	}
	return location, true
}
