package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// newTestDB migrates a fresh database file and opens it.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	_, err := db.MigrateEmbedded(cfg)
	require.NoError(t, err)

	sdb, err := db.OpenSQLite(cfg.SQLitePath())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sdb.Close() })
	return sdb
}

// newInitializedUserStore returns a user store whose first admin, "root"
// with id u0, already exists.
func newInitializedUserStore(t *testing.T) *UserStore {
	t.Helper()
	users := NewUserStore(newTestDB(t))
	require.NoError(t, users.CreateFirstAdmin(context.Background(), newUser("u0", "root", true, time.Time{})))
	return users
}

func newUser(id, username string, admin bool, created time.Time) *model.User {
	return &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: "$2a$04$hash-" + id,
		IsAdmin:      admin,
		CreatedAt:    created,
	}
}

func newServer(id string, created time.Time) *model.Server {
	return &model.Server{
		ID:          id,
		ServerType:  "vm",
		OS:          "linux",
		Hostname:    id + ".lan",
		TailscaleIP: "100.64.0.1",
		LocalIP:     "10.0.0.1",
		CreatedAt:   created,
	}
}
