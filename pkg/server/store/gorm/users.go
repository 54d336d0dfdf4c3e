package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure UserStore implements store.UserStore
var _ store.UserStore = (*UserStore)(nil)

const (
	markInitializedSQL = `INSERT INTO setup_state (id) VALUES (?) ON CONFLICT DO NOTHING`
	isInitializedSQL   = `SELECT EXISTS (SELECT 1 FROM setup_state) OR EXISTS (SELECT 1 FROM users)`
)

// UserStore implements store.UserStore using GORM
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *UserStore) FindFirst(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Take(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (s *UserStore) IsInitialized(ctx context.Context) (bool, error) {
	var initialized bool
	err := s.db.WithContext(ctx).
		Raw(isInitializedSQL).
		Scan(&initialized).Error
	if err != nil {
		return false, translateError(err)
	}
	return initialized, nil
}

func (s *UserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

// CreateFirstAdmin claims the setup marker and inserts user in one
// transaction. Concurrent callers block on the marker's primary key; every
// caller after the first inserts nothing and gets ErrAlreadyInitialized.
func (s *UserStore) CreateFirstAdmin(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(markInitializedSQL, model.SetupStateID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrAlreadyInitialized
		}

		var count int64
		if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return store.ErrAlreadyInitialized
		}

		return tx.Create(user).Error
	})
	return translateError(err)
}

// CreateUser inserts a user after setup. Before the first admin exists it
// returns ErrNotInitialized and writes nothing.
func (s *UserStore) CreateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var initialized bool
		if err := tx.Raw(isInitializedSQL).Scan(&initialized).Error; err != nil {
			return err
		}
		if !initialized {
			return store.ErrNotInitialized
		}
		return tx.Create(user).Error
	})
	return translateError(err)
}

func (s *UserStore) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) DeleteUser(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
