package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure ServerStore implements store.ServerStore
var _ store.ServerStore = (*ServerStore)(nil)

// ServerStore implements store.ServerStore using GORM
type ServerStore struct {
	db *gorm.DB
}

// NewServerStore creates a new ServerStore
func NewServerStore(db *gorm.DB) *ServerStore {
	return &ServerStore{db: db}
}

func (s *ServerStore) ListServers(ctx context.Context) ([]model.Server, error) {
	var servers []model.Server
	if err := s.db.WithContext(ctx).Order("created_at DESC, id ASC").Find(&servers).Error; err != nil {
		return nil, translateError(err)
	}
	return servers, nil
}

func (s *ServerStore) ListServersForUser(ctx context.Context, userID string) ([]model.Server, error) {
	var servers []model.Server
	err := s.db.WithContext(ctx).
		Select("servers.*").
		Joins("JOIN user_server_access ON user_server_access.server_id = servers.id").
		Where("user_server_access.user_id = ?", userID).
		Order("servers.created_at DESC, servers.id ASC").
		Find(&servers).Error
	if err != nil {
		return nil, translateError(err)
	}
	return servers, nil
}

func (s *ServerStore) GetServer(ctx context.Context, id string) (*model.Server, error) {
	var server model.Server
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&server).Error; err != nil {
		return nil, translateError(err)
	}
	return &server, nil
}

func (s *ServerStore) CreateServer(ctx context.Context, server *model.Server) error {
	return translateError(s.db.WithContext(ctx).Create(server).Error)
}

func (s *ServerStore) UpdateServer(ctx context.Context, server *model.Server) error {
	res := s.db.WithContext(ctx).Model(&model.Server{}).Where("id = ?", server.ID).Updates(map[string]interface{}{
		"server_type":  server.ServerType,
		"os":           server.OS,
		"hostname":     server.Hostname,
		"tailscale_ip": server.TailscaleIP,
		"local_ip":     server.LocalIP,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ServerStore) DeleteServer(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Server{})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
