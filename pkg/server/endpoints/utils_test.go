package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{authn.ErrInvalidCredentials, http.StatusUnauthorized},
		{authn.ErrInvalidToken, http.StatusUnauthorized},
		{authn.ErrUserNotFound, http.StatusUnauthorized},
		{authn.ErrAuthDisabledNoUsers, http.StatusUnauthorized},
		{access.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: manage-users", access.ErrForbidden), http.StatusForbidden},
		{store.ErrNotFound, http.StatusNotFound},
		{store.ErrConflict, http.StatusConflict},
		{bootstrap.ErrAlreadyInitialized, http.StatusConflict},
		{store.ErrNotInitialized, http.StatusConflict},
		{model.ErrInvalidInput, http.StatusBadRequest},
		{password.ErrTooLong, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, statusFor(tt.err))
		})
	}
}

func TestRespondWithErrHidesInternals(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	t.Run("500 is generic and logged", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithErr(w, logger, errors.New("pq: password authentication failed"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", errorMessage(t, w))
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("conflict hides constraint names", func(t *testing.T) {
		w := httptest.NewRecorder()
		respondWithErr(w, logger, fmt.Errorf("%w: UNIQUE constraint failed: users.username", store.ErrConflict))

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "already exists", errorMessage(t, w))
	})
}

func TestPathVar(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		wantErr  bool
	}{
		{"web-1", "web-1", false},
		{"web:01", "web:01", false},
		{"web%3A01", "web:01", false},
		{"web%zz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := withMuxVars(httptest.NewRequest("GET", "/api/servers/x", nil), map[string]string{"id": tt.raw})
			got, err := pathVar(req, "id")
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
