package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/candidate-intake/internal/config"
	"github.com/jonathan/candidate-intake/internal/db"
)

// openStore connects to PostgreSQL when a database URL is configured and
// falls back to a local SQLite file otherwise. The caller owns the store.
func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return store, nil
	}

	path := cfg.DatabasePath
	if path == "" {
		path = config.DefaultDatabasePath
	}
	store, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	return store, nil
}

// newLogger builds the process logger. Verbose runs use the development
// config so debug output reaches the console.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
