//go:build !file_migrations

package main

import (
	"github.com/golang-migrate/migrate/v4"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
)

func createMigrateInstance(cfg config.GridConfig) (*migrate.Migrate, error) {
	return db.NewEmbeddedMigrate(cfg)
}
