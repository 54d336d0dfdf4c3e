// Package server provides the HTTP server for the GRiD API.
//
// It uses gorilla/mux for routing and gorilla/handlers for access logging
// and CORS. Handlers live in the endpoints subpackage and are attached with
//
//	srv := server.NewServer(deps, "0.0.0.0", "8000")
//	endpoints.RegisterAll(srv)
//	err := srv.Start(ctx)
//
// # Components
//
// The Server struct holds:
//
//   - Router: HTTP request router
//   - UserStore, ServerStore, GrantStore, HealthStore: storage
//   - Authenticator: login and bearer token resolution
//   - Policy: admin and grant checks
//   - Gate: first-admin bootstrap
//   - Branding: uploaded logo
//   - AuthMiddleware: rejects unauthenticated requests on protected routes
package server
