// Package sqlite implements the store interfaces over database/sql and the
// pure-Go modernc.org/sqlite driver, for single-host deployments that do not
// want to run PostgreSQL.
//
// The schema in db/migrations/sqlite mirrors the PostgreSQL one: grants
// cascade through foreign keys (enforced per connection by db.OpenSQLite)
// and the setup_state primary key makes first-admin creation atomic.
package sqlite
