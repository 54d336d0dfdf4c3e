//go:build file_migrations

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
)

const defaultMigrationsPath = "db/migrations"

// createMigrateInstance reads migrations from disk so schema changes can be
// tried without rebuilding. GRID_MIGRATIONS_PATH overrides the location.
func createMigrateInstance(cfg config.GridConfig) (*migrate.Migrate, error) {
	path := os.Getenv("GRID_MIGRATIONS_PATH")
	if path == "" {
		path = defaultMigrationsPath
	}
	path = filepath.Join(path, cfg.DBDriver)
	fmt.Fprintf(os.Stderr, "Running migrations from file://%s\n", path)
	m, err := migrate.New("file://"+path, db.MigrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}
