package endpoints

import (
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterHealthEndpoints(srv)
	RegisterSetupEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterServersEndpoints(srv)
	RegisterGrantsEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterBrandingEndpoints(srv)
}
