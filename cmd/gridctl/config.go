package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/doodlesbykumbi/grid-in-go/pkg/config"
	"github.com/doodlesbykumbi/grid-in-go/pkg/logging"
)

// loadConfig loads and validates the configuration for commands that touch
// the database.
func loadConfig() (config.GridConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.GridConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.GridConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// cliLogger is the human readable logger used by administrative commands.
func cliLogger() *zap.Logger {
	return logging.NewDevelopment()
}
