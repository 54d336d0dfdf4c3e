package authn

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/grid-in-go/pkg/token"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned when a bearer token is missing, malformed,
	// forged or outside its validity window.
	ErrInvalidToken = token.ErrInvalidToken

	// ErrUserNotFound is returned when a valid token names a user that has
	// since been deleted.
	ErrUserNotFound = errors.New("user not found")

	// ErrAuthDisabledNoUsers is returned in auth-disabled mode before setup
	// has created the first user.
	ErrAuthDisabledNoUsers = errors.New("authentication is disabled and no users exist; run setup first")
)

// LoginResult is a successful login.
type LoginResult struct {
	Token string
	User  *model.User
}

// Option customizes an Authenticator.
type Option func(*Authenticator)

// WithAuthDisabled makes ResolveIdentity ignore tokens and act as the first
// user. This trades away authentication for convenience on trusted networks.
func WithAuthDisabled(disabled bool) Option {
	return func(a *Authenticator) {
		a.disabled = disabled
	}
}

// WithLogger sets the logger used for authentication failures.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Authenticator) {
		a.logger = logger
	}
}

// Authenticator implements password login and bearer token resolution.
type Authenticator struct {
	users    store.UserStore
	hasher   *password.Hasher
	tokens   *token.Service
	disabled bool
	logger   *zap.Logger
}

// New creates an Authenticator.
func New(users store.UserStore, hasher *password.Hasher, tokens *token.Service, opts ...Option) *Authenticator {
	a := &Authenticator{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuthDisabled reports whether tokens are being ignored.
func (a *Authenticator) AuthDisabled() bool {
	return a.disabled
}

// Login checks a username and password and issues a token. An unknown user
// costs the same bcrypt work as a wrong password and yields the same error.
func (a *Authenticator) Login(ctx context.Context, username, plaintext string) (*LoginResult, error) {
	user, err := a.users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		a.hasher.VerifyDummy(plaintext)
		a.logger.Debug("login failed", zap.String("username", username), zap.String("reason", "unknown user"))
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !a.hasher.Verify(plaintext, user.PasswordHash) {
		a.logger.Debug("login failed", zap.String("username", username), zap.String("reason", "wrong password"))
		return nil, ErrInvalidCredentials
	}

	signed, err := a.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signed, User: user}, nil
}

// ResolveIdentity maps a bearer token to its user. An empty token is
// ErrInvalidToken. In auth-disabled mode the token is ignored and the
// oldest user is returned.
func (a *Authenticator) ResolveIdentity(ctx context.Context, bearer string) (*model.User, error) {
	if a.disabled {
		user, err := a.users.FindFirst(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAuthDisabledNoUsers
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up first user: %w", err)
		}
		return user, nil
	}

	if bearer == "" {
		return nil, fmt.Errorf("%w: missing bearer token", ErrInvalidToken)
	}
	userID, err := a.tokens.Verify(bearer)
	if err != nil {
		return nil, err
	}

	user, err := a.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAuthDisabledNoUsers)
}

// ErrorMessage returns the fixed client-facing message for an
// authentication error. Wrapped detail, such as why a token failed to
// parse, is dropped.
func ErrorMessage(err error) string {
	for _, kind := range []error{ErrAuthDisabledNoUsers, ErrUserNotFound, ErrInvalidToken, ErrInvalidCredentials} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return "unauthorized"
}
