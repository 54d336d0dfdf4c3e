// Package config provides configuration management for GRiD.
//
// Configuration is resolved once at startup and handed to the components
// that need it as an immutable value; nothing reads the environment after
// Load returns.
//
// # Configuration Sources
//
// Values are layered, later sources winning:
//
//   - Built-in defaults
//   - The YAML file at $GRID_CONFIG_PATH/grid.yml (default /etc/grid/grid.yml)
//   - Environment variables
//
// The source of every attribute is tracked and reported by
// "gridctl configuration show".
//
// # Key Configuration Options
//
//   - JWT_SECRET: Token signing secret
//   - JWT_EXPIRES_MIN: Token lifetime in minutes (default 1440)
//   - GRID_DISABLE_AUTH: Resolve every request to the first user (1/true/yes)
//   - GRID_DB_DRIVER: postgres or sqlite
//   - DATABASE_URL: Postgres DSN or sqlite file path
//   - DATA_DIR: Data directory for sqlite and branding assets
//   - GRID_LOG_LEVEL: Logging verbosity
package config
