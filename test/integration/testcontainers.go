package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/db"
)

// TestContext holds the database and server a feature run talks to.
type TestContext struct {
	Config     config.GridConfig
	RawDB      *sql.DB
	Container  testcontainers.Container
	HTTPClient *http.Client
	Server     *ServerInstance
	BinaryPath string
	InlineMode bool
}

// NewTestContext prepares a database for driver, migrates it and starts a
// server against it.
// Modes:
//   - Inline mode (default): the server runs in-process
//   - Binary mode: set GRID_BINARY to the path of a built gridctl
func NewTestContext(ctx context.Context, driver string) (*TestContext, error) {
	binaryPath := os.Getenv("GRID_BINARY")
	tc := &TestContext{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BinaryPath: binaryPath,
		InlineMode: binaryPath == "",
	}
	if tc.InlineMode {
		log.Printf("Using inline server mode (%s)", driver)
	} else {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("GRID_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s (%s)", binaryPath, driver)
	}

	dataDir, err := os.MkdirTemp("", "grid-integration-*")
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	cfg.JWTSecret = "integration-secret"
	cfg.BcryptCost = 4
	cfg.DataDir = dataDir
	cfg.DBDriver = driver

	switch driver {
	case config.DriverPostgres:
		container, connStr, err := startPostgres(ctx)
		if err != nil {
			return nil, err
		}
		tc.Container = container
		cfg.DatabaseURL = connStr
	case config.DriverSQLite:
		cfg.DatabaseURL = filepath.Join(dataDir, "grid.db")
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	tc.Config = cfg

	if _, err := db.MigrateEmbedded(cfg); err != nil {
		tc.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	tc.RawDB, err = openRaw(cfg)
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}

	tc.Server, err = StartServer(tc)
	if err != nil {
		tc.Close(ctx)
		return nil, err
	}
	return tc, nil
}

// startPostgres runs a throwaway postgres and returns its host-side DSN.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("grid_test"),
		tcpostgres.WithUsername("grid"),
		tcpostgres.WithPassword("grid"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, "", fmt.Errorf("failed to get connection string: %w", err)
	}
	return pgContainer, connStr, nil
}

func openRaw(cfg config.GridConfig) (*sql.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return db.OpenSQLite(cfg.SQLitePath())
	}
	gdb, err := db.Connect(db.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, err
	}
	return gdb.DB()
}

// Reset empties every table so each scenario starts uninitialized.
func (tc *TestContext) Reset(ctx context.Context) error {
	for _, table := range []string{"user_server_access", "servers", "users", "setup_state"} {
		if _, err := tc.RawDB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return os.RemoveAll(tc.Config.BrandingDir())
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Server != nil {
		tc.Server.Stop()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
	if tc.Config.DataDir != "" {
		_ = os.RemoveAll(tc.Config.DataDir)
	}
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/api/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}
