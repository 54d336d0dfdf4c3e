package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

// newMigratedApp builds an App over a fresh sqlite database. configure may
// adjust the config before wiring.
func newMigratedApp(t *testing.T, configure func(*config.GridConfig)) *App {
	t.Helper()
	cfg := sqliteConfig(t)
	if configure != nil {
		configure(&cfg)
	}
	_, err := db.MigrateEmbedded(cfg)
	require.NoError(t, err)

	a, err := New(cfg, zap.NewNop(), "127.0.0.1", "0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func call(t *testing.T, a *App, method, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	a.Server.Handler().ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body["error"]
}

const colonServer = `{"id":"web:01","server_type":"vm","os":"debian","hostname":"web-01.lan"}`

func TestEscapedServerIDs(t *testing.T) {
	ctx := context.Background()
	a := newMigratedApp(t, nil)

	res, err := a.Gate.Bootstrap(ctx, "root", "hunter22")
	require.NoError(t, err)
	tok := res.Token

	bob := &model.User{ID: "u-bob", Username: "bob", PasswordHash: "$2a$04$x"}
	require.NoError(t, a.Stores.Users.CreateUser(ctx, bob))

	w := call(t, a, "POST", "/api/servers", tok, colonServer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, path := range []string{"/api/servers/web:01", "/api/servers/web%3A01"} {
		w = call(t, a, "GET", path, tok, "")
		require.Equal(t, http.StatusOK, w.Code, path)
		var srv model.Server
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &srv))
		assert.Equal(t, "web:01", srv.ID)
	}

	w = call(t, a, "PUT", "/api/servers/web%3A01", tok, `{"server_type":"lxc","os":"alpine","hostname":"web-01.lan"}`)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = call(t, a, "PUT", "/api/servers/web%3A01/access/u-bob", tok, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	granted, err := a.Stores.Grants.HasGrant(ctx, "u-bob", "web:01")
	require.NoError(t, err)
	assert.True(t, granted)

	w = call(t, a, "DELETE", "/api/servers/web%3A01", tok, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(t, a, "GET", "/api/servers/web:01", tok, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthDisabledStillAuthorizes(t *testing.T) {
	disableAuth := func(cfg *config.GridConfig) { cfg.DisableAuth = true }
	ctx := context.Background()

	t.Run("empty store asks for setup", func(t *testing.T) {
		a := newMigratedApp(t, disableAuth)

		for _, bearer := range []string{"", "garbage"} {
			w := call(t, a, "GET", "/api/servers", bearer, "")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, authn.ErrAuthDisabledNoUsers.Error(), errorBody(t, w))
			assert.Contains(t, errorBody(t, w), "setup")
		}
	})

	t.Run("non-admin first user is still a member", func(t *testing.T) {
		a := newMigratedApp(t, disableAuth)
		first := &model.User{ID: "u-first", Username: "operator", PasswordHash: "$2a$04$x"}
		require.NoError(t, a.Stores.Users.CreateFirstAdmin(ctx, first))
		require.NoError(t, a.Stores.Servers.CreateServer(ctx, &model.Server{ID: "web-1", ServerType: "vm", OS: "debian", Hostname: "web-1.lan"}))

		w := call(t, a, "POST", "/api/servers", "", colonServer)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = call(t, a, "GET", "/api/servers/web-1", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = call(t, a, "GET", "/api/users", "", "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = call(t, a, "GET", "/api/servers", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("admin first user may write", func(t *testing.T) {
		a := newMigratedApp(t, disableAuth)
		_, err := a.Gate.Bootstrap(ctx, "root", "hunter22")
		require.NoError(t, err)

		w := call(t, a, "POST", "/api/servers", "", colonServer)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = call(t, a, "GET", "/api/servers/web%3A01", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
