package store

import (
	"context"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// GrantStore persists (user, server) read grants.
type GrantStore interface {
	// HasGrant reports whether the pair has a grant.
	HasGrant(ctx context.Context, userID, serverID string) (bool, error)

	// Grant is idempotent. It returns ErrNotFound when the user or server
	// does not exist.
	Grant(ctx context.Context, userID, serverID string) error

	// Revoke returns ErrNotFound when there is no grant to remove.
	Revoke(ctx context.Context, userID, serverID string) error

	// ListGrantedUsers returns the users holding a grant on the server.
	ListGrantedUsers(ctx context.Context, serverID string) ([]model.User, error)
}
