package sqlite

import (
	"context"
	"database/sql"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)

const (
	userColumns        = `id, username, password_hash, is_admin, created_at`
	markInitializedSQL = `INSERT INTO setup_state (id) VALUES (?) ON CONFLICT DO NOTHING`
	isInitializedSQL   = `SELECT EXISTS (SELECT 1 FROM setup_state) OR EXISTS (SELECT 1 FROM users)`
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*model.User, error) {
	var (
		u       model.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &created); err != nil {
		return nil, translateError(err)
	}
	u.CreatedAt = fromUnix(created)
	return &u, nil
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (s *UserStore) FindFirst(ctx context.Context) (*model.User, error) {
	return scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC LIMIT 1`))
}

func (s *UserStore) IsInitialized(ctx context.Context) (bool, error) {
	var initialized bool
	err := s.db.QueryRowContext(ctx, isInitializedSQL).Scan(&initialized)
	if err != nil {
		return false, translateError(err)
	}
	return initialized, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return queryUsers(ctx, s.db, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
}

func queryUsers(ctx context.Context, q dbtx, query string, args ...any) ([]model.User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, translateError(rows.Err())
}

func insertUser(ctx context.Context, tx dbtx, user *model.User) error {
	user.CreatedAt = nowIfZero(user.CreatedAt)
	_, err := tx.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.IsAdmin, toUnix(user.CreatedAt),
	)
	return err
}

func (s *UserStore) CreateFirstAdmin(ctx context.Context, user *model.User) error {
	err := withTx(ctx, s.db, func(tx dbtx) error {
		res, err := tx.ExecContext(ctx, markInitializedSQL, model.SetupStateID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return store.ErrAlreadyInitialized
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return store.ErrAlreadyInitialized
		}

		return insertUser(ctx, tx, user)
	})
	return translateError(err)
}

// CreateUser inserts a user after setup. Before the first admin exists it
// returns ErrNotInitialized and writes nothing.
func (s *UserStore) CreateUser(ctx context.Context, user *model.User) error {
	err := withTx(ctx, s.db, func(tx dbtx) error {
		var initialized bool
		if err := tx.QueryRowContext(ctx, isInitializedSQL).Scan(&initialized); err != nil {
			return err
		}
		if !initialized {
			return store.ErrNotInitialized
		}
		return insertUser(ctx, tx, user)
	})
	return translateError(err)
}

func (s *UserStore) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return translateError(err)
	}
	return rowsAffected(res)
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	return rowsAffected(res)
}
