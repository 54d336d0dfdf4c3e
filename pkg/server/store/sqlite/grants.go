package sqlite

import (
	"context"
	"database/sql"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure GrantStore implements store.GrantStore
var _ store.GrantStore = (*GrantStore)(nil)

type GrantStore struct {
	db *sql.DB
}

func NewGrantStore(db *sql.DB) *GrantStore {
	return &GrantStore{db: db}
}

func (s *GrantStore) HasGrant(ctx context.Context, userID, serverID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_server_access WHERE user_id = ? AND server_id = ?)`,
		userID, serverID,
	).Scan(&exists)
	if err != nil {
		return false, translateError(err)
	}
	return exists, nil
}

func (s *GrantStore) Grant(ctx context.Context, userID, serverID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_server_access (user_id, server_id) VALUES (?, ?)
		 ON CONFLICT (user_id, server_id) DO NOTHING`,
		userID, serverID,
	)
	return translateError(err)
}

func (s *GrantStore) Revoke(ctx context.Context, userID, serverID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM user_server_access WHERE user_id = ? AND server_id = ?`, userID, serverID)
	if err != nil {
		return translateError(err)
	}
	return rowsAffected(res)
}

func (s *GrantStore) ListGrantedUsers(ctx context.Context, serverID string) ([]model.User, error) {
	return queryUsers(ctx, s.db,
		`SELECT users.id, users.username, users.password_hash, users.is_admin, users.created_at
		 FROM users
		 JOIN user_server_access ON user_server_access.user_id = users.id
		 WHERE user_server_access.server_id = ?
		 ORDER BY users.username ASC`, serverID)
}
