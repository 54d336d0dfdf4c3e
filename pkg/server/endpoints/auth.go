package endpoints

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
)

// LoginService is the subset of authn.Authenticator the login endpoint uses.
type LoginService interface {
	Login(ctx context.Context, username, password string) (*authn.LoginResult, error)
}

// RegisterAuthEndpoints registers login and caller introspection
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/auth/login", handleLogin(s.Authenticator, s.Logger)).Methods("POST")

	// GET /api/auth/me - the resolved caller
	s.Router.Handle("/api/auth/me", s.AuthMiddleware.Middleware(handleMe(s.Logger))).Methods("GET")
}

func handleLogin(authenticator LoginService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		res, err := authenticator.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"token":    res.Token,
			"is_admin": res.User.IsAdmin,
			"username": res.User.Username,
		})
	}
}

func handleMe(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}
