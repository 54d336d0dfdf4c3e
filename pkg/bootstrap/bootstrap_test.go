package bootstrap

import (
	"context"
	"errors"
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

func newGate(t *testing.T) (*Gate, *storetest.MockUserStore, *password.Hasher, *token.Service) {
	t.Helper()
	hasher, err := password.NewHasher(4)
	require.NoError(t, err)
	tokens, err := token.New(token.Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	users := storetest.NewMockUserStore()
	return NewGate(users, hasher, tokens, nil), users, hasher, tokens
}

func TestStatus(t *testing.T) {
	ctx := context.Background()

	gate, users, _, _ := newGate(t)
	users.On("IsInitialized", ctx).Return(false, nil).Once()
	users.On("IsInitialized", ctx).Return(true, nil).Once()

	status, err := gate.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Uninitialized, status)
	assert.Equal(t, "uninitialized", status.String())

	status, err = gate.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Initialized, status)
	assert.Equal(t, "initialized", status.String())
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	gate, users, hasher, tokens := newGate(t)

	var created *model.User
	users.On("IsInitialized", ctx).Return(false, nil)
	users.On("CreateFirstAdmin", ctx, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.User) }).
		Return(nil)

	res, err := gate.Bootstrap(ctx, "root", "hunter22")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.True(t, created.IsAdmin)
	assert.Equal(t, "root", created.Username)
	assert.NotEmpty(t, created.ID)
	assert.True(t, hasher.Verify("hunter22", created.PasswordHash))
	assert.NotEqual(t, "hunter22", created.PasswordHash)

	userID, err := tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
}

func TestBootstrapAlreadyInitialized(t *testing.T) {
	ctx := context.Background()

	t.Run("status check", func(t *testing.T) {
		gate, users, _, _ := newGate(t)
		users.On("IsInitialized", ctx).Return(true, nil)

		_, err := gate.Bootstrap(ctx, "other", "secret")
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
		users.AssertNotCalled(t, "CreateFirstAdmin", mock.Anything, mock.Anything)
	})

	t.Run("lost the race", func(t *testing.T) {
		gate, users, _, _ := newGate(t)
		users.On("IsInitialized", ctx).Return(false, nil)
		users.On("CreateFirstAdmin", ctx, mock.Anything).Return(store.ErrAlreadyInitialized)

		_, err := gate.Bootstrap(ctx, "other", "secret")
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestBootstrapRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name, username, password string
	}{
		{"empty username", "", "secret"},
		{"bad username", "no spaces", "secret"},
		{"empty password", "root", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, users, _, _ := newGate(t)
			_, err := gate.Bootstrap(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, model.ErrInvalidInput)
			users.AssertNotCalled(t, "CreateFirstAdmin", mock.Anything, mock.Anything)
		})
	}
}

func TestBootstrapStoreError(t *testing.T) {
	ctx := context.Background()
	gate, users, _, _ := newGate(t)
	boom := errors.New("disk full")
	users.On("IsInitialized", ctx).Return(false, nil)
	users.On("CreateFirstAdmin", ctx, mock.Anything).Return(boom)

	_, err := gate.Bootstrap(ctx, "root", "secret")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrAlreadyInitialized)
}
