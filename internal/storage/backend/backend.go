// Package backend opens the storage implementation selected by configuration.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/storage"
	"github.com/hongminglow/cost-manager/internal/storage/postgres"
	"github.com/hongminglow/cost-manager/internal/storage/sqlite"
)

// Open connects to the configured backend and applies its migrations. Missing
// cost dates default to the current day in cfg.Location.
func Open(ctx context.Context, cfg config.Config) (storage.Store, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	now := func() time.Time { return time.Now().In(loc) }

	switch cfg.DataBackend {
	case config.BackendPostgres:
		store, err := postgres.NewStore(ctx, cfg.DatabaseURL, postgres.WithClock(now))
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	case config.BackendSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath, sqlite.WithClock(now))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
