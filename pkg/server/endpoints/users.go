package endpoints

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

func RegisterUsersEndpoints(s *server.Server) {
	usersRouter := s.Router.PathPrefix("/api/users").Subrouter()
	usersRouter.Use(s.AuthMiddleware.Middleware)

	usersRouter.HandleFunc("", handleListUsers(s.UserStore, s.Logger)).Methods("GET")
	usersRouter.HandleFunc("", handleCreateUser(s.UserStore, s.Hasher, s.Logger)).Methods("POST")
	usersRouter.HandleFunc("/{id}", handleDeleteUser(s.UserStore, s.Logger)).Methods("DELETE")
}

func handleListUsers(userStore store.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := requireAction(r, access.ActionManageUsers); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		users, err := userStore.ListUsers(r.Context())
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		respondWithJSON(w, http.StatusOK, users)
	}
}

func handleCreateUser(userStore store.UserStore, hasher *password.Hasher, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionManageUsers)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}

		var req createUserRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		if err := model.ValidateUsername(req.Username); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		if err := model.ValidatePassword(req.Password); err != nil {
			respondWithErr(w, logger, err)
			return
		}

		digest, err := hasher.Hash(req.Password)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		user := &model.User{
			ID:           uuid.NewString(),
			Username:     req.Username,
			PasswordHash: digest,
			IsAdmin:      req.IsAdmin,
		}
		if err := userStore.CreateUser(r.Context(), user); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("user created",
			zap.String("username", user.Username),
			zap.Bool("is_admin", user.IsAdmin),
			zap.String("by", caller.Username),
		)
		respondWithJSON(w, http.StatusCreated, user)
	}
}

// handleDeleteUser removes a user and their grants. Admins cannot delete
// themselves, so an installation always keeps the admin doing the deleting.
func handleDeleteUser(userStore store.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := requireAction(r, access.ActionManageUsers)
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		id, err := pathVar(r, "id")
		if err != nil {
			respondWithErr(w, logger, err)
			return
		}
		if id == caller.ID {
			respondWithErr(w, logger, fmt.Errorf("%w: cannot delete yourself", model.ErrInvalidInput))
			return
		}

		if err := userStore.DeleteUser(r.Context(), id); err != nil {
			respondWithErr(w, logger, err)
			return
		}
		logger.Info("user deleted", zap.String("user_id", id), zap.String("by", caller.Username))
		respondOK(w, http.StatusOK)
	}
}
