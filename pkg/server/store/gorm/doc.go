// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package, targeting PostgreSQL.
//
// Uniqueness, cascades and the single-row setup marker are all enforced by
// the schema in db/migrations/postgres; this package only translates the
// resulting pgconn errors (23505, 23503) into store sentinels.
package gorm
