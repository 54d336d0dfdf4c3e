// Package storetest provides testify mocks of the store interfaces for
// packages that test against storage without a database.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/grid-in-go/pkg/model"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

var (
	_ store.UserStore   = (*MockUserStore)(nil)
	_ store.ServerStore = (*MockServerStore)(nil)
	_ store.GrantStore  = (*MockGrantStore)(nil)
	_ store.HealthStore = (*MockHealthStore)(nil)
)

// MockUserStore implements store.UserStore for testing using testify/mock
type MockUserStore struct {
	mock.Mock
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

func (m *MockUserStore) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserStore) FindFirst(ctx context.Context) (*model.User, error) {
	return m.user(m.Called(ctx))
}

func (m *MockUserStore) IsInitialized(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockUserStore) CreateFirstAdmin(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) CreateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserStore) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockServerStore implements store.ServerStore for testing using testify/mock
type MockServerStore struct {
	mock.Mock
}

func NewMockServerStore() *MockServerStore {
	return &MockServerStore{}
}

func (m *MockServerStore) servers(args mock.Arguments) ([]model.Server, error) {
	servers, _ := args.Get(0).([]model.Server)
	return servers, args.Error(1)
}

func (m *MockServerStore) ListServers(ctx context.Context) ([]model.Server, error) {
	return m.servers(m.Called(ctx))
}

func (m *MockServerStore) ListServersForUser(ctx context.Context, userID string) ([]model.Server, error) {
	return m.servers(m.Called(ctx, userID))
}

func (m *MockServerStore) GetServer(ctx context.Context, id string) (*model.Server, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Server), args.Error(1)
}

func (m *MockServerStore) CreateServer(ctx context.Context, server *model.Server) error {
	return m.Called(ctx, server).Error(0)
}

func (m *MockServerStore) UpdateServer(ctx context.Context, server *model.Server) error {
	return m.Called(ctx, server).Error(0)
}

func (m *MockServerStore) DeleteServer(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockGrantStore implements store.GrantStore for testing using testify/mock
type MockGrantStore struct {
	mock.Mock
}

func NewMockGrantStore() *MockGrantStore {
	return &MockGrantStore{}
}

func (m *MockGrantStore) HasGrant(ctx context.Context, userID, serverID string) (bool, error) {
	args := m.Called(ctx, userID, serverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGrantStore) Grant(ctx context.Context, userID, serverID string) error {
	return m.Called(ctx, userID, serverID).Error(0)
}

func (m *MockGrantStore) Revoke(ctx context.Context, userID, serverID string) error {
	return m.Called(ctx, userID, serverID).Error(0)
}

func (m *MockGrantStore) ListGrantedUsers(ctx context.Context, serverID string) ([]model.User, error) {
	args := m.Called(ctx, serverID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// NewMockStores returns a store.Stores wired to fresh mocks, along with the
// mocks themselves for setting expectations.
func NewMockStores() (store.Stores, *MockUserStore, *MockServerStore, *MockGrantStore, *MockHealthStore) {
	users, servers, grants, health := NewMockUserStore(), NewMockServerStore(), NewMockGrantStore(), NewMockHealthStore()
	return store.Stores{Users: users, Servers: servers, Grants: grants, Health: health}, users, servers, grants, health
}
