package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

func TestServerStoreCRUD(t *testing.T) {
	ctx := context.Background()
	servers := NewServerStore(newTestDB(t))
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, servers.CreateServer(ctx, newServer("web-1", created)))
	assert.ErrorIs(t, servers.CreateServer(ctx, newServer("web-1", created)), store.ErrConflict)

	got, err := servers.GetServer(ctx, "web-1")
	require.NoError(t, err)
	assert.Equal(t, "web-1.lan", got.Hostname)
	assert.Equal(t, created, got.CreatedAt)

	got.Hostname = "renamed.lan"
	got.LocalIP = ""
	require.NoError(t, servers.UpdateServer(ctx, got))

	updated, err := servers.GetServer(ctx, "web-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed.lan", updated.Hostname)
	assert.Empty(t, updated.LocalIP)
	assert.Equal(t, created, updated.CreatedAt)

	missing := newServer("ghost", created)
	assert.ErrorIs(t, servers.UpdateServer(ctx, missing), store.ErrNotFound)

	require.NoError(t, servers.DeleteServer(ctx, "web-1"))
	_, err = servers.GetServer(ctx, "web-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, servers.DeleteServer(ctx, "web-1"), store.ErrNotFound)
}

func TestServerStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	servers := NewServerStore(newTestDB(t))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, servers.CreateServer(ctx, newServer("old", base)))
	require.NoError(t, servers.CreateServer(ctx, newServer("new", base.Add(time.Hour))))

	list, err := servers.ListServers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestServerStoreListEmpty(t *testing.T) {
	list, err := NewServerStore(newTestDB(t)).ListServers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
