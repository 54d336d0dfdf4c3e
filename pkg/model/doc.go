// Package model defines the database models for GRiD.
//
// The models map onto the tables created by db/migrations and are shared by
// both storage engines.
//
// # Models
//
//   - User: login accounts (users)
//   - Server: inventory records (servers)
//   - AccessGrant: read access for a non-admin user on one server (user_server_access)
//   - SetupState: single-row marker recording that bootstrap happened (setup_state)
//
// Grants reference users and servers with ON DELETE CASCADE foreign keys and
// a UNIQUE(user_id, server_id) constraint, so the database itself guarantees
// there are no dangling or duplicate grants.
package model
