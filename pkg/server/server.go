package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/access"
	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
	"github.com/doodlesbykumbi/grid-in-go/pkg/branding"
	"github.com/doodlesbykumbi/grid-in-go/pkg/logging"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/middleware"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// ShutdownTimeout bounds how long in-flight requests get after the context
// passed to Start is cancelled.
const ShutdownTimeout = 10 * time.Second

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Stores        store.Stores
	Hasher        *password.Hasher
	Authenticator *authn.Authenticator
	Gate          *bootstrap.Gate
	Branding      *branding.Store
	Logger        *zap.Logger
}

type Server struct {
	Router *mux.Router

	// Store interfaces for database operations
	UserStore   store.UserStore
	ServerStore store.ServerStore
	GrantStore  store.GrantStore
	HealthStore store.HealthStore

	Hasher         *password.Hasher
	Authenticator  *authn.Authenticator
	Policy         *access.Policy
	Gate           *bootstrap.Gate
	Branding       *branding.Store
	AuthMiddleware *middleware.BearerAuthenticator
	Logger         *zap.Logger

	srv *http.Server
}

func NewServer(deps Deps, host string, port string) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter().UseEncodedPath()
	s := &Server{
		Router:         router,
		UserStore:      deps.Stores.Users,
		ServerStore:    deps.Stores.Servers,
		GrantStore:     deps.Stores.Grants,
		HealthStore:    deps.Stores.Health,
		Hasher:         deps.Hasher,
		Authenticator:  deps.Authenticator,
		Policy:         access.NewPolicy(deps.Stores.Grants),
		Gate:           deps.Gate,
		Branding:       deps.Branding,
		AuthMiddleware: middleware.NewBearerAuthenticator(deps.Authenticator, logger),
		Logger:         logger,
	}

	s.srv = &http.Server{
		Handler: s.Handler(),
		Addr:    net.JoinHostPort(host, port),
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return s
}

// Handler wraps the router with CORS and access logging. The API is called
// from a separately served web UI, so any origin is allowed.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)
	return handlers.LoggingHandler(logging.Writer(s.Logger), cors(s.Router))
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start over an existing listener. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serveErr := make(chan error, 1)
	s.Logger.Info("listening", zap.String("addr", ln.Addr().String()))
	go func() {
		serveErr <- s.srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		s.Logger.Info("server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
