package endpoints

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// ReadChecker is the subset of access.Policy the server endpoints use.
type ReadChecker interface {
	CanReadServer(ctx context.Context, user *model.User, serverID string) (bool, error)
}

// serverRequest is the body of create and update. Update takes the id from
// the path and ignores the body's.
type serverRequest struct {
	ID          string `json:"id"`
	ServerType  string `json:"server_type"`
	OS          string `json:"os"`
	Hostname    string `json:"hostname"`
	TailscaleIP string `json:"tailscale_ip"`
	LocalIP     string `json:"local_ip"`
}

func (req serverRequest) toModel() *model.Server {
	return &model.Server{
		ID:          req.ID,
		ServerType:  req.ServerType,
		OS:          req.OS,
		Hostname:    req.Hostname,
		TailscaleIP: req.TailscaleIP,
		LocalIP:     req.LocalIP,
	}
}

func RegisterServersEndpoints(s *server.Server) {
	serversRouter := s.Router.PathPrefix("/api/servers").Subrouter()
	serversRouter.Use(s.AuthMiddleware.Middleware)

	serversRouter.HandleFunc("", handleListServers(s.ServerStore, s.Logger)).Methods("GET")
	serversRouter.HandleFunc("", handleCreateServer(s.ServerStore, s.Logger)).Methods("POST")
	serversRouter.HandleFunc("/{id}", handleGetServer(s.ServerStore, s.Policy, s.Logger)).Methods("GET")
	serversRouter.HandleFunc("/{id}", handleUpdateServer(s.ServerStore, s.Logger)).Methods("PUT")
	serversRouter.HandleFunc("/{id}", handleDeleteServer(s.ServerStore, s.Logger)).Methods("DELETE")
}

// handleListServers returns every server to admins and only granted servers
// to everyone else, newest first.
func handleListServers(serverStore store.ServerStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		var servers []model.Server
		if user.IsAdmin {
			servers, err = serverStore.ListServers(r.Context())
		} else {
			servers, err = serverStore.ListServersForUser(r.Context(), user.ID)
		}
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, servers)
	}
}

// handleGetServer answers 403 to a non-admin without a grant whether or not
// the server exists, so grants do not leak the inventory.
func handleGetServer(serverStore store.ServerStore, policy ReadChecker, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := currentUser(r)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		id, err := pathVar(r, "id")
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		allowed, err := policy.CanReadServer(r.Context(), user, id)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		if !allowed {
			respondWithErr(w, logger, access.ErrForbidden)
			return
		}

		srv, err := serverStore.GetServer(r.Context(), id)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, srv)
	}
}

func handleCreateServer(serverStore store.ServerStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionCreate)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		var req serverRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		srv := req.toModel()
		if err := srv.Validate(); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		if err := serverStore.CreateServer(r.Context(), srv); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("server created", zap.String("server_id", srv.ID), zap.String("by", caller.Username))
		respondOK(w, http.StatusCreated)
	}
}

// handleUpdateServer replaces every mutable field; omitted optional fields
// are cleared.
func handleUpdateServer(serverStore store.ServerStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionUpdate)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		var req serverRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		if req.ID, err = pathVar(r, "id"); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		srv := req.toModel()
		if err := srv.Validate(); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		if err := serverStore.UpdateServer(r.Context(), srv); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("server updated", zap.String("server_id", srv.ID), zap.String("by", caller.Username))
		respondOK(w, http.StatusOK)
	}
}

func handleDeleteServer(serverStore store.ServerStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionDelete)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		id, err := pathVar(r, "id")
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		if err := serverStore.DeleteServer(r.Context(), id); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("server deleted", zap.String("server_id", id), zap.String("by", caller.Username))
		respondOK(w, http.StatusOK)
	}
}
