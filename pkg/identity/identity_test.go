package identity

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

func TestIdentity_WithMethods(t *testing.T) {
	user := &model.User{ID: "u1", Username: "alice"}
	ip := net.ParseIP("192.168.1.100")

	id := FromUser(user).WithRemoteIP(ip).WithAuthDisabled(true)

	assert.Same(t, user, id.User)
	assert.Equal(t, ip, id.RemoteIP)
	assert.True(t, id.AuthDisabled)
}

func TestIdentity_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		id       *Identity
		expected bool
	}{
		{"admin", FromUser(&model.User{IsAdmin: true}), true},
		{"member", FromUser(&model.User{}), false},
		{"no user", &Identity{}, false},
		{"nil identity", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.id.IsAdmin())
		})
	}
}

func TestContextGetSet(t *testing.T) {
	ctx := context.Background()

	// Initially no identity
	id, ok := Get(ctx)
	assert.False(t, ok)
	assert.Nil(t, id)

	expected := FromUser(&model.User{ID: "u1", Username: "alice"})
	ctx = Set(ctx, expected)

	id, ok = Get(ctx)
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, "alice", id.User.Username)

	// an identity without a user is not an authenticated caller
	_, ok = Get(Set(context.Background(), &Identity{}))
	assert.False(t, ok)
}
