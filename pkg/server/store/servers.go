package store

import (
	"context"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// ServerStore persists inventory records. Listings are newest first.
type ServerStore interface {
	ListServers(ctx context.Context) ([]model.Server, error)

	// ListServersForUser returns only servers the user holds a grant on.
	ListServersForUser(ctx context.Context, userID string) ([]model.Server, error)

	// GetServer returns ErrNotFound for an unknown id.
	GetServer(ctx context.Context, id string) (*model.Server, error)

	// CreateServer returns ErrConflict when the id is taken.
	CreateServer(ctx context.Context, server *model.Server) error

	// UpdateServer replaces every mutable field. It returns ErrNotFound for
	// an unknown id.
	UpdateServer(ctx context.Context, server *model.Server) error

	// DeleteServer removes the server and, by cascade, its grants.
	DeleteServer(ctx context.Context, id string) error
}
