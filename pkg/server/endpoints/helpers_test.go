package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/identity"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
)

var (
	testLogger = zap.NewNop()

	adminUser  = &model.User{ID: "a1", Username: "root", IsAdmin: true}
	memberUser = &model.User{ID: "u1", Username: "bob"}
)

// requestWithIdentity builds a request as if the auth middleware had already
// resolved user. A nil user leaves the context empty.
func requestWithIdentity(method, path, body string, user *model.User) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req = req.WithContext(identity.Set(req.Context(), identity.FromUser(user)))
	}
	return req
}

func withMuxVars(req *http.Request, vars map[string]string) *http.Request {
	return mux.SetURLVars(req, vars)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, w, &body)
	msg, _ := body["error"].(string)
	return msg
}
