package integration

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/app"
)

// ServerInstance represents a running GRiD server for a feature run
type ServerInstance struct {
	App           *app.App
	ServerURL     string
	cancel        context.CancelFunc
	done          chan error
	serverProcess *exec.Cmd
}

// StartServer starts a server for tc in inline or binary mode.
func StartServer(tc *TestContext) (*ServerInstance, error) {
	if tc.InlineMode {
		return startInlineServer(tc)
	}
	return startBinaryServer(tc)
}

// startInlineServer serves in-process on an ephemeral port.
func startInlineServer(tc *TestContext) (*ServerInstance, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}

	a, err := app.New(tc.Config, zap.NewNop(), "127.0.0.1", "0")
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	instance := &ServerInstance{
		App:       a,
		ServerURL: "http://" + listener.Addr().String(),
		cancel:    cancel,
		done:      make(chan error, 1),
	}
	go func() {
		instance.done <- a.Server.Serve(ctx, listener)
	}()

	if err := waitForServer(instance.ServerURL, 10*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

// startBinaryServer runs gridctl server against the prepared database.
func startBinaryServer(tc *TestContext) (*ServerInstance, error) {
	port, err := freePort()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	// migrations already ran in the test setup
	cmd := exec.CommandContext(ctx, tc.BinaryPath, "server", "--no-migrate", "-b", "127.0.0.1", "-p", strconv.Itoa(port))
	cmd.Env = append(os.Environ(),
		"GRID_CONFIG_PATH="+tc.Config.DataDir,
		"GRID_DB_DRIVER="+tc.Config.DBDriver,
		"DATABASE_URL="+tc.Config.DatabaseURL,
		"DATA_DIR="+tc.Config.DataDir,
		"JWT_SECRET="+tc.Config.JWTSecret,
		"GRID_BCRYPT_COST="+strconv.Itoa(tc.Config.BcryptCost),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start binary: %w", err)
	}

	instance := &ServerInstance{
		ServerURL:     fmt.Sprintf("http://127.0.0.1:%d", port),
		cancel:        cancel,
		serverProcess: cmd,
	}
	if err := waitForServer(instance.ServerURL, 30*time.Second); err != nil {
		instance.Stop()
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}
	return instance, nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Stop shuts down the server instance
func (si *ServerInstance) Stop() {
	if si.cancel != nil {
		si.cancel()
	}
	if si.done != nil {
		<-si.done
		si.done = nil
	}
	if si.App != nil {
		_ = si.App.Close()
	}
	if si.serverProcess != nil && si.serverProcess.Process != nil {
		_ = si.serverProcess.Process.Kill()
		_ = si.serverProcess.Wait()
	}
}
