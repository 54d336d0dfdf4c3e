// Command gridctl runs the GRiD server inventory API.
//
// GRiD keeps a list of servers (hostname, OS, addresses) and decides which
// users may see which of them. Admins manage everything; other users only
// read the servers they have been granted.
//
// # Quick Start
//
//	# Apply the schema (also done on every server start)
//	gridctl db migrate
//
//	# Create the first admin, or use POST /api/setup from the web UI
//	gridctl setup init --username root
//
//	# Start the server
//	gridctl server
//
// # Environment Variables
//
//   - JWT_SECRET: token signing secret (default CHANGE_ME, logged as a warning)
//   - JWT_EXPIRES_MIN: token lifetime in minutes (default 1440)
//   - GRID_DISABLE_AUTH: act as the first user on every request
//   - GRID_DB_DRIVER: sqlite (default) or postgres
//   - DATABASE_URL: postgres DSN, or an explicit sqlite file path
//   - DATA_DIR: sqlite database and branding directory (default /data)
//   - GRID_LOG_LEVEL: debug, info, warn or error
//   - GRID_CONFIG_PATH: directory holding grid.yml (default /etc/grid)
//   - PORT, BIND_ADDRESS: listen address for the server command
package main
