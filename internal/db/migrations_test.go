package db

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestApplyMigrationsRunsInNumericOrderOnce(t *testing.T) {
	database := openTestDatabase(t)

	files := fstest.MapFS{
		"010_add_notes.sql":   {Data: []byte(`ALTER TABLE extra_items ADD COLUMN notes TEXT;`)},
		"009_extra_items.sql": {Data: []byte(`CREATE TABLE extra_items (id INTEGER PRIMARY KEY);`)},
		"README.md":           {Data: []byte("not a migration")},
	}
	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	versions, err := AppliedMigrations(database)
	if err != nil {
		t.Fatalf("applied migrations: %v", err)
	}
	if strings.Join(versions, ",") != "001,002,009,010" {
		t.Fatalf("unexpected applied versions %v", versions)
	}
}

func TestApplyMigrationsRejectsDuplicateVersions(t *testing.T) {
	database := openTestDatabase(t)

	files := fstest.MapFS{
		"020_one.sql": {Data: []byte(`SELECT 1;`)},
		"020_two.sql": {Data: []byte(`SELECT 2;`)},
	}
	err := applyMigrations(database, files)
	if err == nil || !strings.Contains(err.Error(), "duplicate migration version 020") {
		t.Fatalf("expected duplicate version error, got %v", err)
	}
}

func TestApplyMigrationsRejectsEmptyFile(t *testing.T) {
	database := openTestDatabase(t)

	err := applyMigrations(database, fstest.MapFS{"030_empty.sql": {Data: []byte("  ;\n")}})
	if !errors.Is(err, errEmptyMigration) {
		t.Fatalf("expected empty migration error, got %v", err)
	}
}

func TestSplitSQLStatements(t *testing.T) {
	statements := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n;CREATE INDEX b ON a(id);  ")
	if len(statements) != 2 || statements[1] != "CREATE INDEX b ON a(id)" {
		t.Fatalf("unexpected statements %q", statements)
	}
}
