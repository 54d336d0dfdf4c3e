package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/identity"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

type mockResolver struct {
	mock.Mock
	disabled bool
}

func (m *mockResolver) ResolveIdentity(ctx context.Context, bearer string) (*model.User, error) {
	args := m.Called(bearer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockResolver) AuthDisabled() bool {
	return m.disabled
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"Bearer   abc", "abc"},
		{"", ""},
		{"Bearer", ""},
		{"Basic dXNlcjpwYXNz", ""},
		{`Token token="abc"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, BearerToken(tt.header))
		})
	}
}

func serve(t *testing.T, resolver *mockResolver, header string) (*httptest.ResponseRecorder, *identity.Identity) {
	t.Helper()
	var seen *identity.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = identity.Get(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest("GET", "/api/servers", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	NewBearerAuthenticator(resolver, nil).Middleware(next).ServeHTTP(w, req)
	return w, seen
}

func TestMiddleware(t *testing.T) {
	bob := &model.User{ID: "u1", Username: "bob"}

	t.Run("valid token sets identity", func(t *testing.T) {
		resolver := &mockResolver{}
		resolver.On("ResolveIdentity", "good").Return(bob, nil)

		w, id := serve(t, resolver, "Bearer good")

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, id)
		assert.Same(t, bob, id.User)
		assert.False(t, id.AuthDisabled)
		assert.Equal(t, "10.1.2.3", id.RemoteIP.String())
	})

	t.Run("missing header is passed through as empty token", func(t *testing.T) {
		resolver := &mockResolver{}
		resolver.On("ResolveIdentity", "").Return(nil, authn.ErrInvalidToken)

		w, id := serve(t, resolver, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Nil(t, id)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "invalid token")
	})

	t.Run("auth errors are 401", func(t *testing.T) {
		for _, err := range []error{authn.ErrUserNotFound, authn.ErrAuthDisabledNoUsers} {
			resolver := &mockResolver{}
			resolver.On("ResolveIdentity", "tok").Return(nil, err)

			w, _ := serve(t, resolver, "Bearer tok")
			assert.Equal(t, http.StatusUnauthorized, w.Code, err.Error())
		}
	})

	t.Run("token parse detail is not echoed", func(t *testing.T) {
		resolver := &mockResolver{}
		expired := fmt.Errorf("%w: token has invalid claims: token is expired", authn.ErrInvalidToken)
		resolver.On("ResolveIdentity", "old").Return(nil, expired)

		w, _ := serve(t, resolver, "Bearer old")
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, authn.ErrInvalidToken.Error(), body["error"])
	})

	t.Run("storage errors are 500", func(t *testing.T) {
		resolver := &mockResolver{}
		resolver.On("ResolveIdentity", "tok").Return(nil, errors.New("db down"))

		w, _ := serve(t, resolver, "Bearer tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "db down")
	})

	t.Run("auth disabled marks identity", func(t *testing.T) {
		resolver := &mockResolver{disabled: true}
		resolver.On("ResolveIdentity", "").Return(bob, nil)

		w, id := serve(t, resolver, "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, id)
		assert.True(t, id.AuthDisabled)
	})
}
