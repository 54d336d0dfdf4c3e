package sqlite

import (
	"context"
	"database/sql"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure ServerStore implements store.ServerStore
var _ store.ServerStore = (*ServerStore)(nil)

const serverColumns = `servers.id, servers.server_type, servers.os, servers.hostname, servers.tailscale_ip, servers.local_ip, servers.created_at`

type ServerStore struct {
	db *sql.DB
}

func NewServerStore(db *sql.DB) *ServerStore {
	return &ServerStore{db: db}
}

func scanServer(row scanner) (*model.Server, error) {
	var (
		srv     model.Server
		created int64
	)
	err := row.Scan(&srv.ID, &srv.ServerType, &srv.OS, &srv.Hostname, &srv.TailscaleIP, &srv.LocalIP, &created)
	if err != nil {
		return nil, translateError(err)
	}
	srv.CreatedAt = fromUnix(created)
	return &srv, nil
}

func (s *ServerStore) queryServers(ctx context.Context, query string, args ...any) ([]model.Server, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	servers := []model.Server{}
	for rows.Next() {
		srv, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, *srv)
	}
	return servers, translateError(rows.Err())
}

func (s *ServerStore) ListServers(ctx context.Context) ([]model.Server, error) {
	return s.queryServers(ctx,
		`SELECT `+serverColumns+` FROM servers ORDER BY servers.created_at DESC, servers.id ASC`)
}

func (s *ServerStore) ListServersForUser(ctx context.Context, userID string) ([]model.Server, error) {
	return s.queryServers(ctx,
		`SELECT `+serverColumns+` FROM servers
		 JOIN user_server_access ON user_server_access.server_id = servers.id
		 WHERE user_server_access.user_id = ?
		 ORDER BY servers.created_at DESC, servers.id ASC`, userID)
}

func (s *ServerStore) GetServer(ctx context.Context, id string) (*model.Server, error) {
	return scanServer(s.db.QueryRowContext(ctx,
		`SELECT `+serverColumns+` FROM servers WHERE servers.id = ?`, id))
}

func (s *ServerStore) CreateServer(ctx context.Context, srv *model.Server) error {
	srv.CreatedAt = nowIfZero(srv.CreatedAt)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO servers (id, server_type, os, hostname, tailscale_ip, local_ip, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		srv.ID, srv.ServerType, srv.OS, srv.Hostname, srv.TailscaleIP, srv.LocalIP, toUnix(srv.CreatedAt),
	)
	return translateError(err)
}

func (s *ServerStore) UpdateServer(ctx context.Context, srv *model.Server) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE servers SET server_type = ?, os = ?, hostname = ?, tailscale_ip = ?, local_ip = ?
		 WHERE id = ?`,
		srv.ServerType, srv.OS, srv.Hostname, srv.TailscaleIP, srv.LocalIP, srv.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return rowsAffected(res)
}

func (s *ServerStore) DeleteServer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM servers WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	return rowsAffected(res)
}
