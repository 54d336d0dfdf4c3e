package db

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	migrations "github.com/doodlesbykumbi/grid-in-go/db"
	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
)

// MigrationURL returns the golang-migrate database URL for cfg.
func MigrationURL(cfg config.GridConfig) string {
	if cfg.DBDriver == config.DriverSQLite {
		return "sqlite://" + cfg.SQLitePath()
	}
	return cfg.DatabaseURL
}

// EmbeddedSource returns the migrations compiled into the binary for driver.
func EmbeddedSource(driver string) (source.Driver, error) {
	sub, err := fs.Sub(migrations.Migrations, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}
	d, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}
	return d, nil
}

// NewEmbeddedMigrate builds a migrate instance over the embedded migrations.
func NewEmbeddedMigrate(cfg config.GridConfig) (*migrate.Migrate, error) {
	src, err := EmbeddedSource(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, MigrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Up applies every pending migration and returns the resulting version.
// An up-to-date database is not an error.
func Up(m *migrate.Migrate) (uint, error) {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration failed: %w", err)
	}
	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return 0, err
	}
	return version, nil
}

// MigrateEmbedded brings the configured database up to date using the
// embedded migrations.
func MigrateEmbedded(cfg config.GridConfig) (uint, error) {
	m, err := NewEmbeddedMigrate(cfg)
	if err != nil {
		return 0, err
	}
	defer func() { _, _ = m.Close() }()
	return Up(m)
}
