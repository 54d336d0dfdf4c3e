package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/identity"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// maxJSONBody bounds request bodies for every JSON endpoint.
const maxJSONBody = 1 << 20

func respondWithError(w http.ResponseWriter, code int, payload interface{}) {
	respondWithJSON(w, code, map[string]interface{}{"error": payload})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondOK(w http.ResponseWriter, code int) {
	respondWithJSON(w, code, map[string]bool{"ok": true})
}

// statusFor maps the error kinds of the core packages to HTTP statuses.
func statusFor(err error) int {
	switch {
	case authn.IsAuthError(err):
		return http.StatusUnauthorized
	case errors.Is(err, access.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict), errors.Is(err, store.ErrAlreadyInitialized),
		errors.Is(err, store.ErrNotInitialized):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidInput), errors.Is(err, password.ErrTooLong):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondWithErr writes err with its mapped status. Storage detail never
// reaches the client: not-found and conflict get fixed messages, and
// unexpected errors are logged and answered generically.
func respondWithErr(w http.ResponseWriter, logger *zap.Logger, err error) {
	code := statusFor(err)
	var message string
	switch {
	case code == http.StatusInternalServerError:
		logger.Error("request failed", zap.Error(err))
		message = "internal server error"
	case code == http.StatusUnauthorized:
		message = authn.ErrorMessage(err)
	case errors.Is(err, store.ErrNotFound):
		message = "not found"
	case errors.Is(err, store.ErrConflict):
		message = "already exists"
	default:
		message = err.Error()
	}
	respondWithError(w, code, message)
}

// decodeJSON reads a JSON body into v. Malformed input is ErrInvalidInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", model.ErrInvalidInput, err)
	}
	return nil
}

// pathVar returns the route variable name, unescaped. The router matches on
// the encoded path, so ids holding reserved characters arrive escaped.
func pathVar(r *http.Request, name string) (string, error) {
	v, err := url.PathUnescape(mux.Vars(r)[name])
	if err != nil {
		return "", fmt.Errorf("%w: malformed %s in path: %v", model.ErrInvalidInput, name, err)
	}
	return v, nil
}

// currentUser returns the caller stored by the auth middleware.
func currentUser(r *http.Request) (*model.User, error) {
	id, ok := identity.Get(r.Context())
	if !ok {
		return nil, authn.ErrInvalidToken
	}
	return id.User, nil
}

// requireAction returns the caller when the policy allows action.
func requireAction(r *http.Request, action access.Action) (*model.User, error) {
	user, err := currentUser(r)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(user, action); err != nil {
		return nil, err
	}
	return user, nil
}
