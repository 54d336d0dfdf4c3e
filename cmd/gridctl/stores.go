package main

import (
	"github.com/doodlesbykumbi/grid-in-go/pkg/app"
	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/password"
	"github.com/doodlesbykumbi/grid-in-go/pkg/server/store"
)

// adminEnv is what the offline administration commands work against: the
// configured stores and a hasher, without the HTTP layer.
type adminEnv struct {
	cfg    config.GridConfig
	stores store.Stores
	hasher *password.Hasher
	close  func() error
}

func openAdminEnv() (*adminEnv, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	hasher, err := password.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	stores, closeConn, err := app.OpenStores(cfg, false)
	if err != nil {
		return nil, err
	}
	return &adminEnv{cfg: cfg, stores: stores, hasher: hasher, close: closeConn}, nil
}

func (e *adminEnv) Close() {
	_ = e.close()
}
