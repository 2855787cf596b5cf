package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	embeddedmigrations "github.com/terraincognita07/aura/migrations"
	"gorm.io/gorm"
)

// Migration files are named NNN_description.sql and run once each, in
// numeric order, each inside its own transaction.
var migrationFilePattern = regexp.MustCompile(`^(\d+)_[\w.-]*\.sql$`)

var errEmptyMigration = errors.New("migration has no SQL statements")

type sqlMigration struct {
	version    string
	order      int
	name       string
	statements []string
}

// schemaMigration is one row of the bookkeeping table.
type schemaMigration struct {
	Version   string    `gorm:"column:version;primaryKey"`
	Name      string    `gorm:"column:name"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

const createSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func applyEmbeddedMigrations(database *gorm.DB) error {
	return applyMigrations(database, embeddedmigrations.Files)
}

func applyMigrations(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(createSchemaMigrationsSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := readMigrations(files)
	if err != nil {
		return err
	}
	applied, err := AppliedMigrations(database)
	if err != nil {
		return err
	}

	done := make(map[string]bool, len(applied))
	for _, row := range applied {
		done[row] = true
	}
	for _, migration := range migrations {
		if done[migration.version] {
			continue
		}
		if err := runMigration(database, migration); err != nil {
			return err
		}
	}
	return nil
}

// AppliedMigrations lists recorded migration versions, oldest first.
func AppliedMigrations(database *gorm.DB) ([]string, error) {
	versions := make([]string, 0)
	if err := database.Model(&schemaMigration{}).Order("version ASC").Pluck("version", &versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	return versions, nil
}

func readMigrations(files fs.FS) ([]sqlMigration, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	migrations := make([]sqlMigration, 0, len(entries))
	byVersion := make(map[string]string, len(entries))
	for _, entry := range entries {
		matches := migrationFilePattern.FindStringSubmatch(entry.Name())
		if entry.IsDir() || matches == nil {
			continue
		}

		name, version := entry.Name(), matches[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, previous, name)
		}
		byVersion[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, sqlMigration{
			version:    version,
			order:      order,
			name:       name,
			statements: splitSQLStatements(string(raw)),
		})
	}

	slices.SortFunc(migrations, func(left, right sqlMigration) int {
		return left.order - right.order
	})
	return migrations, nil
}

func runMigration(database *gorm.DB, migration sqlMigration) error {
	if len(migration.statements) == 0 {
		return fmt.Errorf("migration %s: %w", migration.name, errEmptyMigration)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range migration.statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.name, statement, err)
			}
		}
		record := schemaMigration{Version: migration.version, Name: migration.name, AppliedAt: time.Now().UTC()}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
