package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/aura/internal/config"
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/storage"
)

var errDeviceRequired = errors.New("--device is required")

// offlineEnv is what the read-only commands need: settings, the time zone
// and a handle on the storage repository.
type offlineEnv struct {
	cfg          *config.Config
	location     *time.Location
	repositories *db.Repositories
	close        func()
}

func openOfflineEnv(opts *RootOptions) (*offlineEnv, error) {
	cfg, err := config.Read(opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	location, _ := cfg.Location()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "database init failed", err)
	}

	return &offlineEnv{
		cfg:          cfg,
		location:     location,
		repositories: db.NewRepositories(database),
		close: func() {
			if sqlDB, err := database.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}

func (env *offlineEnv) device(deviceID string) (*storage.Accessor, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, errDeviceRequired
	}
	return storage.NewAccessor(env.repositories.Storage.Scoped(deviceID)), nil
}

func (env *offlineEnv) hasDevice(deviceID string) (bool, error) {
	namespaces, err := env.repositories.Storage.ListNamespaces()
	if err != nil {
		return false, fmt.Errorf("list devices: %w", err)
	}
	for _, namespace := range namespaces {
		if namespace == deviceID {
			return true, nil
		}
	}
	return false, nil
}
