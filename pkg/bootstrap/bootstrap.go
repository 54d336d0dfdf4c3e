package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/grid-in-go/pkg/token"
)

// ErrAlreadyInitialized is returned by Bootstrap once any user exists or
// bootstrap has run before.
var ErrAlreadyInitialized = store.ErrAlreadyInitialized

// Status is the one-way setup state of an installation.
type Status int

const (
	Uninitialized Status = iota
	Initialized
)

func (s Status) String() string {
	if s == Initialized {
		return "initialized"
	}
	return "uninitialized"
}

// Result is a successful bootstrap.
type Result struct {
	Token string
	User  *model.User
}

// Gate creates the first admin exactly once.
type Gate struct {
	users  store.UserStore
	hasher *password.Hasher
	tokens *token.Service
	logger *zap.Logger
}

func NewGate(users store.UserStore, hasher *password.Hasher, tokens *token.Service, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Status reports whether bootstrap has happened.
func (g *Gate) Status(ctx context.Context) (Status, error) {
	initialized, err := g.users.IsInitialized(ctx)
	if err != nil {
		return Uninitialized, fmt.Errorf("failed to read setup state: %w", err)
	}
	if initialized {
		return Initialized, nil
	}
	return Uninitialized, nil
}

// Bootstrap creates the first user as an admin and returns a token for it.
// The store performs the check-and-insert atomically, so of any number of
// concurrent callers exactly one succeeds.
func (g *Gate) Bootstrap(ctx context.Context, username, plaintext string) (*Result, error) {
	if err := model.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := model.ValidatePassword(plaintext); err != nil {
		return nil, err
	}

	// cheap early exit; the store re-checks inside its transaction
	if status, err := g.Status(ctx); err != nil {
		return nil, err
	} else if status == Initialized {
		return nil, ErrAlreadyInitialized
	}

	digest, err := g.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: digest,
		IsAdmin:      true,
	}

	if err := g.users.CreateFirstAdmin(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyInitialized) {
			return nil, ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("failed to create first admin: %w", err)
	}
	g.logger.Info("bootstrap complete", zap.String("username", username), zap.String("user_id", user.ID))

	signed, err := g.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Result{Token: signed, User: user}, nil
}
