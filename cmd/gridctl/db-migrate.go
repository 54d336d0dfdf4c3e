package main

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending migrations for the configured engine.

Example:
  gridctl db migrate
  GRID_DB_DRIVER=postgres DATABASE_URL=postgres://... gridctl db migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		version, err := runMigrations(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated to version: %d\n", version)
		return nil
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  gridctl db down      # Rollback 1 migration
  gridctl db down 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			if _, err := fmt.Sscanf(args[0], "%d", &steps); err != nil || steps < 1 {
				return fmt.Errorf("invalid step count %q", args[0])
			}
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runMigrationsDown(cmd, cfg, steps)
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return showMigrationStatus(cmd, cfg)
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
}

func runMigrations(cfg config.GridConfig) (uint, error) {
	m, err := createMigrateInstance(cfg)
	if err != nil {
		return 0, err
	}
	defer func() { _, _ = m.Close() }()
	return db.Up(m)
}

func runMigrationsDown(cmd *cobra.Command, cfg config.GridConfig, steps int) error {
	m, err := createMigrateInstance(cfg)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	fmt.Fprintf(cmd.OutOrStdout(), "Rolling back %d migration(s)...\n", steps)
	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Fprintln(cmd.OutOrStdout(), "Rolled back all migrations")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus(cmd *cobra.Command, cfg config.GridConfig) error {
	m, err := createMigrateInstance(cfg)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(cmd.OutOrStdout(), "No migrations have been applied yet")
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %d\n", version)
	if dirty {
		fmt.Fprintln(cmd.OutOrStdout(), "Warning: Database is in a dirty state")
	}
	return nil
}
