// Package store is the key-value text storage the persistence layer writes
// its snapshots into.
package store

import (
	"context"
	"fmt"

	"github.com/idilsaglam/todolist/internal/config"
	"github.com/idilsaglam/todolist/internal/store/filestore"
	"github.com/idilsaglam/todolist/internal/store/memstore"
	"github.com/idilsaglam/todolist/internal/store/redisstore"
	"github.com/idilsaglam/todolist/internal/store/sqlstore"
)

// Store is a flat map from keys to text values.
type Store interface {
	// Get reports ok=false for a key that was never set.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

var (
	_ Store = (*filestore.Store)(nil)
	_ Store = (*memstore.Store)(nil)
	_ Store = (*sqlstore.Store)(nil)
	_ Store = (*redisstore.Store)(nil)
)

// Open builds the backend named by cfg.Driver.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return filestore.New(cfg.Dir), nil
	case config.DriverMemory:
		return memstore.New(), nil
	case config.DriverSQLite:
		s, err := sqlstore.Open(ctx, cfg.SQLite.Path, cfg.SQLite.Table)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		return s, nil
	case config.DriverRedis:
		s, err := redisstore.Open(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("redis store: %w", err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
