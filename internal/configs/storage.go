package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ai-notebook.com/ai-notebook/internal/kv"
)

// Storage is the configured key-value backend plus whatever must be closed
// when the process exits. Store namespaces keys with the configured prefix;
// Raw writes keys as given, for collections that never carried the prefix.
type Storage struct {
	Store kv.Store
	Raw   kv.Store
	close func() error
}

func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage connects the backend named by cfg.StorageDriver, instruments
// it and namespaces every key with cfg.StoragePrefix.
func OpenStorage(ctx context.Context, cfg Config, logger *zap.Logger) (*Storage, error) {
	var (
		backend kv.Store
		closer  func() error
	)

	switch cfg.StorageDriver {
	case DriverMemory:
		backend = kv.NewMemoryStore()

	case DriverSQLite:
		db, err := NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// One writer at a time; SQLite rejects concurrent writes anyway.
		sqlDB.SetMaxOpenConns(1)
		backend = kv.NewSQLiteStore(db)
		closer = sqlDB.Close

	case DriverRedis:
		client, err := NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		backend = kv.NewRedisStore(client)
		closer = func() error {
			client.Close()
			return nil
		}

	case DriverPostgres:
		pool, err := NewPostgresPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store, err := kv.NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		backend = store
		closer = func() error {
			pool.Close()
			return nil
		}

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	logger.Info("storage ready",
		zap.String("driver", cfg.StorageDriver),
		zap.String("prefix", cfg.StoragePrefix),
	)

	raw := kv.Instrument(backend, cfg.StorageDriver, logger)
	return &Storage{
		Store: kv.WithPrefix(raw, cfg.StoragePrefix),
		Raw:   raw,
		close: closer,
	}, nil
}
