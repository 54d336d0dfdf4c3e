package store

import (
	"context"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// UserStore persists user accounts. Username uniqueness is enforced by the
// database, not by read-then-write checks.
type UserStore interface {
	// FindByUsername returns ErrNotFound when no user has that username.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID returns ErrNotFound when no user has that id.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindFirst returns the oldest user, or ErrNotFound on an empty store.
	FindFirst(ctx context.Context) (*model.User, error)

	// IsInitialized reports whether bootstrap has happened.
	IsInitialized(ctx context.Context) (bool, error)

	// ListUsers returns all users, oldest first.
	ListUsers(ctx context.Context) ([]model.User, error)

	// CreateFirstAdmin atomically inserts the setup marker and user. It
	// returns ErrAlreadyInitialized if either already exists, so concurrent
	// callers see exactly one success.
	CreateFirstAdmin(ctx context.Context, user *model.User) error

	// CreateUser inserts a user into an initialized store. It returns
	// ErrNotInitialized before the first admin exists and ErrConflict on a
	// duplicate username.
	CreateUser(ctx context.Context, user *model.User) error

	// UpdatePasswordHash returns ErrNotFound for an unknown id.
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error

	// DeleteUser removes the user and, by cascade, their grants.
	DeleteUser(ctx context.Context, id string) error
}
