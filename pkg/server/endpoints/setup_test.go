package endpoints

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store/storetest"
)

type mockGate struct {
	mock.Mock
}

func (m *mockGate) Status(ctx context.Context) (bootstrap.Status, error) {
	args := m.Called()
	return args.Get(0).(bootstrap.Status), args.Error(1)
}

func (m *mockGate) Bootstrap(ctx context.Context, username, password string) (*bootstrap.Result, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bootstrap.Result), args.Error(1)
}

type mockLogin struct {
	mock.Mock
}

func (m *mockLogin) Login(ctx context.Context, username, password string) (*authn.LoginResult, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authn.LoginResult), args.Error(1)
}

func TestHandleSetupStatus(t *testing.T) {
	for _, status := range []bootstrap.Status{bootstrap.Uninitialized, bootstrap.Initialized} {
		t.Run(status.String(), func(t *testing.T) {
			gate := &mockGate{}
			gate.On("Status").Return(status, nil)

			w := httptest.NewRecorder()
			handleSetupStatus(gate, testLogger)(w, httptest.NewRequest("GET", "/api/setup/status", nil))

			assert.Equal(t, http.StatusOK, w.Code)
			var body map[string]bool
			decodeBody(t, w, &body)
			assert.Equal(t, status == bootstrap.Initialized, body["initialized"])
		})
	}
}

func TestHandleSetup(t *testing.T) {
	t.Run("first call returns token", func(t *testing.T) {
		gate := &mockGate{}
		gate.On("Bootstrap", "root", "pw").Return(&bootstrap.Result{Token: "tok", User: adminUser}, nil)

		w := httptest.NewRecorder()
		handleSetup(gate, testLogger)(w, requestWithIdentity("POST", "/api/setup", `{"username":"root","password":"pw"}`, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		decodeBody(t, w, &body)
		assert.Equal(t, true, body["ok"])
		assert.Equal(t, "tok", body["token"])
	})

	t.Run("already initialized is 409", func(t *testing.T) {
		gate := &mockGate{}
		gate.On("Bootstrap", "other", "pw").Return(nil, bootstrap.ErrAlreadyInitialized)

		w := httptest.NewRecorder()
		handleSetup(gate, testLogger)(w, requestWithIdentity("POST", "/api/setup", `{"username":"other","password":"pw"}`, nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "already initialized", errorMessage(t, w))
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		gate := &mockGate{}

		w := httptest.NewRecorder()
		handleSetup(gate, testLogger)(w, requestWithIdentity("POST", "/api/setup", `{"username":`, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		gate.AssertNotCalled(t, "Bootstrap", mock.Anything, mock.Anything)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		login := &mockLogin{}
		login.On("Login", "root", "pw").Return(&authn.LoginResult{Token: "tok", User: adminUser}, nil)

		w := httptest.NewRecorder()
		handleLogin(login, testLogger)(w, requestWithIdentity("POST", "/api/auth/login", `{"username":"root","password":"pw"}`, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]interface{}
		decodeBody(t, w, &body)
		assert.Equal(t, "tok", body["token"])
		assert.Equal(t, true, body["is_admin"])
		assert.Equal(t, "root", body["username"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		login := &mockLogin{}
		login.On("Login", "root", "nope").Return(nil, authn.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		handleLogin(login, testLogger)(w, requestWithIdentity("POST", "/api/auth/login", `{"username":"root","password":"nope"}`, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, authn.ErrInvalidCredentials.Error(), errorMessage(t, w))
	})
}

func TestHandleMe(t *testing.T) {
	w := httptest.NewRecorder()
	handleMe(testLogger)(w, requestWithIdentity("GET", "/api/auth/me", "", memberUser))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	decodeBody(t, w, &body)
	assert.Equal(t, "bob", body["username"])
	assert.NotContains(t, body, "password_hash")

	w = httptest.NewRecorder()
	handleMe(testLogger)(w, requestWithIdentity("GET", "/api/auth/me", "", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		health := storetest.NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(nil)

		w := httptest.NewRecorder()
		handleHealth(health, testLogger)(w, httptest.NewRequest("GET", "/api/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		health := storetest.NewMockHealthStore()
		health.On("CheckConnectivity", mock.Anything).Return(errors.New("connection refused"))

		w := httptest.NewRecorder()
		handleHealth(health, testLogger)(w, httptest.NewRequest("GET", "/api/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
