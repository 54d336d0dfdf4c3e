package authn

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store/storetest"
	"github.com/doodlesbykumbi/grid-in-go/pkg/token"
)

func newFixtures(t *testing.T, opts ...Option) (*Authenticator, *storetest.MockUserStore, *password.Hasher, *token.Service) {
	t.Helper()
	hasher, err := password.NewHasher(4)
	require.NoError(t, err)
	tokens, err := token.New(token.Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	users := storetest.NewMockUserStore()
	return New(users, hasher, tokens, opts...), users, hasher, tokens
}

func userWithPassword(t *testing.T, hasher *password.Hasher, id, username, plaintext string, admin bool) *model.User {
	t.Helper()
	digest, err := hasher.Hash(plaintext)
	require.NoError(t, err)
	return &model.User{ID: id, Username: username, PasswordHash: digest, IsAdmin: admin}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		a, users, hasher, tokens := newFixtures(t)
		root := userWithPassword(t, hasher, "u1", "root", "hunter22", true)
		users.On("FindByUsername", ctx, "root").Return(root, nil)

		res, err := a.Login(ctx, "root", "hunter22")
		require.NoError(t, err)
		assert.Same(t, root, res.User)

		claims, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject)
		assert.Equal(t, "root", claims.Username)
		assert.True(t, claims.Admin)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		a, users, hasher, _ := newFixtures(t)
		root := userWithPassword(t, hasher, "u1", "root", "hunter22", true)
		users.On("FindByUsername", ctx, "root").Return(root, nil)
		users.On("FindByUsername", ctx, "ghost").Return(nil, store.ErrNotFound)

		_, wrongPassword := a.Login(ctx, "root", "nope")
		_, unknownUser := a.Login(ctx, "ghost", "nope")

		assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	})

	t.Run("store error is not a credential error", func(t *testing.T) {
		a, users, _, _ := newFixtures(t)
		boom := errors.New("db down")
		users.On("FindByUsername", ctx, "root").Return(nil, boom)

		_, err := a.Login(ctx, "root", "x")
		assert.ErrorIs(t, err, boom)
		assert.False(t, IsAuthError(err))
	})
}

func TestResolveIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		a, users, _, tokens := newFixtures(t)
		bob := &model.User{ID: "u2", Username: "bob"}
		signed, err := tokens.Issue(bob)
		require.NoError(t, err)
		users.On("FindByID", ctx, "u2").Return(bob, nil)

		got, err := a.ResolveIdentity(ctx, signed)
		require.NoError(t, err)
		assert.Same(t, bob, got)
	})

	t.Run("missing token", func(t *testing.T) {
		a, users, _, _ := newFixtures(t)

		_, err := a.ResolveIdentity(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
		users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("garbage token", func(t *testing.T) {
		a, _, _, _ := newFixtures(t)

		_, err := a.ResolveIdentity(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsAuthError(err))
	})

	t.Run("deleted user", func(t *testing.T) {
		a, users, _, tokens := newFixtures(t)
		signed, err := tokens.Issue(&model.User{ID: "gone", Username: "gone"})
		require.NoError(t, err)
		users.On("FindByID", ctx, "gone").Return(nil, store.ErrNotFound)

		_, err = a.ResolveIdentity(ctx, signed)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestResolveIdentityAuthDisabled(t *testing.T) {
	ctx := context.Background()

	t.Run("first user regardless of token", func(t *testing.T) {
		a, users, _, _ := newFixtures(t, WithAuthDisabled(true))
		root := &model.User{ID: "u1", Username: "root", IsAdmin: true}
		users.On("FindFirst", ctx).Return(root, nil)

		for _, bearer := range []string{"", "garbage"} {
			got, err := a.ResolveIdentity(ctx, bearer)
			require.NoError(t, err)
			assert.Same(t, root, got)
		}
		assert.True(t, a.AuthDisabled())
	})

	t.Run("no users", func(t *testing.T) {
		a, users, _, _ := newFixtures(t, WithAuthDisabled(true))
		users.On("FindFirst", ctx).Return(nil, store.ErrNotFound)

		got, err := a.ResolveIdentity(ctx, "")
		assert.ErrorIs(t, err, ErrAuthDisabledNoUsers)
		assert.Nil(t, got)
		assert.Contains(t, err.Error(), "setup")
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("%w: token is expired", ErrInvalidToken), "invalid token"},
		{fmt.Errorf("%w: signature is invalid", ErrInvalidToken), "invalid token"},
		{ErrUserNotFound, "user not found"},
		{ErrInvalidCredentials, "invalid username or password"},
		{ErrAuthDisabledNoUsers, ErrAuthDisabledNoUsers.Error()},
		{errors.New("anything else"), "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorMessage(tt.err))
		})
	}
}
