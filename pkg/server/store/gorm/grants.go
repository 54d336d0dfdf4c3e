package gorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure GrantStore implements store.GrantStore
var _ store.GrantStore = (*GrantStore)(nil)

// GrantStore implements store.GrantStore using GORM
type GrantStore struct {
	db *gorm.DB
}

// NewGrantStore creates a new GrantStore
func NewGrantStore(db *gorm.DB) *GrantStore {
	return &GrantStore{db: db}
}

func (s *GrantStore) HasGrant(ctx context.Context, userID, serverID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.AccessGrant{}).
		Where("user_id = ? AND server_id = ?", userID, serverID).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// Grant relies on the uq_user_server constraint for idempotence and on the
// foreign keys to reject unknown users or servers.
func (s *GrantStore) Grant(ctx context.Context, userID, serverID string) error {
	grant := model.AccessGrant{UserID: userID, ServerID: serverID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "server_id"}},
			DoNothing: true,
		}).
		Create(&grant).Error
	return translateError(err)
}

func (s *GrantStore) Revoke(ctx context.Context, userID, serverID string) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND server_id = ?", userID, serverID).
		Delete(&model.AccessGrant{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GrantStore) ListGrantedUsers(ctx context.Context, serverID string) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).
		Select("users.*").
		Joins("JOIN user_server_access ON user_server_access.user_id = users.id").
		Where("user_server_access.server_id = ?", serverID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, translateError(err)
	}
	return users, nil
}
