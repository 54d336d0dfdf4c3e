// Package store provides storage abstractions for the GRiD server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// Two engines implement them: pkg/server/store/gorm (PostgreSQL) and
// pkg/server/store/sqlite (single-file SQLite).
//
// # Available Stores
//
//   - UserStore: accounts, bootstrap and the setup marker
//   - ServerStore: inventory CRUD
//   - GrantStore: per-user read grants
//   - HealthStore: connectivity probe
//
// Engines translate driver errors into ErrNotFound and ErrConflict, and
// report setup state with ErrAlreadyInitialized and ErrNotInitialized;
// callers match them with errors.Is.
//
// # Usage
//
//	users := gorm.NewUserStore(db)
//	u, err := users.FindByUsername(ctx, "root")
//	if errors.Is(err, store.ErrNotFound) {
//	    // Handle not found
//	}
package store
