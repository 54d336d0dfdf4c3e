// Package db provides database connection and migration utilities.
//
// Two engines are supported. PostgreSQL is reached through GORM with the
// pgx driver; SQLite is opened with database/sql over the pure-Go
// modernc.org/sqlite driver, with foreign keys enforced so grant cascades
// work the same way on both.
//
// # Usage
//
//	// PostgreSQL
//	gdb, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
//
//	// SQLite
//	sdb, err := db.OpenSQLite(cfg.SQLitePath())
//
//	// Schema
//	version, err := db.MigrateEmbedded(cfg)
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string (required for postgres)
package db
