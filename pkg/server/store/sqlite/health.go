package sqlite

import (
	"context"
	"database/sql"

	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

type HealthStore struct {
	db *sql.DB
}

func NewHealthStore(db *sql.DB) *HealthStore {
	return &HealthStore{db: db}
}

func (s *HealthStore) CheckConnectivity(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
