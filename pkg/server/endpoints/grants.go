package endpoints

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

func RegisterGrantsEndpoints(s *server.Server) {
	grantsRouter := s.Router.PathPrefix("/api/servers/{id}/access").Subrouter()
	grantsRouter.Use(s.AuthMiddleware.Middleware)

	// GET /api/servers/{id}/access - users holding a grant
	grantsRouter.HandleFunc("", handleListGrants(s.ServerStore, s.GrantStore, s.Logger)).Methods("GET")

	// PUT /api/servers/{id}/access/{user_id} - grant (idempotent)
	grantsRouter.HandleFunc("/{user_id}", handleGrant(s.GrantStore, s.Logger)).Methods("PUT")

	// DELETE /api/servers/{id}/access/{user_id} - revoke
	grantsRouter.HandleFunc("/{user_id}", handleRevoke(s.GrantStore, s.Logger)).Methods("DELETE")
}

func handleListGrants(serverStore store.ServerStore, grantStore store.GrantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireAction(r, access.ActionManageGrants); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		serverID, err := pathVar(r, "id")
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		// an unknown server is 404, not an empty list
		if _, err := serverStore.GetServer(r.Context(), serverID); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		users, err := grantStore.ListGrantedUsers(r.Context(), serverID)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, users)
	}
}

func handleGrant(grantStore store.GrantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionManageGrants)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		userID, serverID, err := grantVars(r)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		if err := grantStore.Grant(r.Context(), userID, serverID); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("access granted",
			zap.String("user_id", userID),
			zap.String("server_id", serverID),
			zap.String("by", caller.Username),
		)
		respondOK(w, http.StatusOK)
	}
}

func handleRevoke(grantStore store.GrantStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionManageGrants)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		userID, serverID, err := grantVars(r)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		if err := grantStore.Revoke(r.Context(), userID, serverID); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("access revoked",
			zap.String("user_id", userID),
			zap.String("server_id", serverID),
			zap.String("by", caller.Username),
		)
		respondOK(w, http.StatusOK)
	}
}

// grantVars returns the unescaped user and server ids of a grant route.
func grantVars(r *http.Request) (userID, serverID string, err error) {
	if userID, err = pathVar(r, "user_id"); err != nil {
		return "", "", err
	}
	if serverID, err = pathVar(r, "id"); err != nil {
		return "", "", err
	}
	return userID, serverID, nil
}
