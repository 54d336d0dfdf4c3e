// Package app assembles a runnable server from a loaded configuration.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/authn"
	"github.com/doodlesbykumbi/grid-in-go/pkg/bootstrap"
	"github.com/doodlesbykumbi/grid-in-go/pkg/branding"
	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/endpoints"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
	gormstore "github.com/doodlesbykumbi/grid-in-go/pkg/server/store/gorm"
	sqlitestore "github.com/doodlesbykumbi/grid-in-go/pkg/server/store/sqlite"
	"github.com/doodlesbykumbi/grid-in-go/pkg/token"
)

// App is a fully wired service and the connection it owns.
type App struct {
	Config    config.GridConfig
	Stores    store.Stores
	Hasher    *password.Hasher
	Tokens    *token.Service
	Gate      *bootstrap.Gate
	Server    *server.Server
	Logger    *zap.Logger
	closeConn func() error
}

// OpenStores connects to the configured engine and returns its stores with
// a function that releases the connection.
func OpenStores(cfg config.GridConfig, debug bool) (store.Stores, func() error, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		gdb, err := db.Connect(db.Config{URL: cfg.DatabaseURL, Debug: debug})
		if err != nil {
			return store.Stores{}, nil, err
		}
		raw, err := gdb.DB()
		if err != nil {
			return store.Stores{}, nil, fmt.Errorf("failed to get raw db: %w", err)
		}
		return gormstore.NewStores(gdb), raw.Close, nil
	case config.DriverSQLite:
		path := cfg.SQLitePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return store.Stores{}, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		sdb, err := db.OpenSQLite(path)
		if err != nil {
			return store.Stores{}, nil, err
		}
		return sqlitestore.NewStores(sdb), sdb.Close, nil
	default:
		return store.Stores{}, nil, fmt.Errorf("unsupported db_driver %q", cfg.DBDriver)
	}
}

// NewTokens builds the token service from cfg.
func NewTokens(cfg config.GridConfig) (*token.Service, error) {
	return token.New(token.Config{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		TTL:       cfg.TokenTTL(),
	})
}

// New validates cfg, opens storage and wires the HTTP API listening on
// host:port. Migrations are not run here.
func New(cfg config.GridConfig, logger *zap.Logger, host, port string) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := NewTokens(cfg)
	if err != nil {
		return nil, err
	}

	stores, closeConn, err := OpenStores(cfg, cfg.LogLevel == "debug")
	if err != nil {
		return nil, err
	}

	authenticator := authn.New(stores.Users, hasher, tokens,
		authn.WithAuthDisabled(bool(cfg.DisableAuth)),
		authn.WithLogger(logger.Named("authn")),
	)
	gate := bootstrap.NewGate(stores.Users, hasher, tokens, logger.Named("bootstrap"))

	s := server.NewServer(server.Deps{
		Stores:        stores,
		Hasher:        hasher,
		Authenticator: authenticator,
		Gate:          gate,
		Branding:      branding.NewStore(cfg.BrandingDir()),
		Logger:        logger,
	}, host, port)
	endpoints.RegisterAll(s)

	return &App{
		Config:    cfg,
		Stores:    stores,
		Hasher:    hasher,
		Tokens:    tokens,
		Gate:      gate,
		Server:    s,
		Logger:    logger,
		closeConn: closeConn,
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	if a.closeConn == nil {
		return nil
	}
	err := a.closeConn()
	a.closeConn = nil
	if err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
