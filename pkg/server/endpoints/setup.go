package endpoints

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
)

// SetupGate is the subset of bootstrap.Gate the setup endpoints use.
type SetupGate interface {
	Status(ctx context.Context) (bootstrap.Status, error)
	Bootstrap(ctx context.Context, username, password string) (*bootstrap.Result, error)
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterSetupEndpoints registers the first-run endpoints. Both are public:
// there is nobody to authenticate as before setup.
func RegisterSetupEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/setup/status", handleSetupStatus(s.Gate, s.Logger)).Methods("GET")
	s.Router.HandleFunc("/api/setup", handleSetup(s.Gate, s.Logger)).Methods("POST")
}

func handleSetupStatus(gate SetupGate, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := gate.Status(r.Context())
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]bool{
			"initialized": status == bootstrap.Initialized,
		})
	}
}

func handleSetup(gate SetupGate, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		res, err := gate.Bootstrap(r.Context(), req.Username, req.Password)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"ok":    true,
			"token": res.Token,
		})
	}
}
