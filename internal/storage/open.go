package storage

import (
	"context"
	"fmt"
	"time"

	"startupconnect/internal/cache"
	"startupconnect/internal/config"
	"startupconnect/internal/database"
)

// Open builds the instrumented storage backend selected by cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	var (
		backend Storage
		err     error
	)

	switch cfg.StorageDriver {
	case config.DriverMemory:
		backend = NewMemory()
	case config.DriverSQLite, config.DriverPostgres:
		db, dbErr := database.Connect(cfg)
		if dbErr != nil {
			return nil, dbErr
		}
		backend = NewSQL(db)
	case config.DriverRedis:
		client, redisErr := cache.NewClient(ctx, cfg.RedisURL)
		if redisErr != nil {
			return nil, redisErr
		}
		backend = NewRedis(client)
	case config.DriverMongo:
		dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		backend, err = ConnectMongo(dialCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	return Instrument(backend, cfg.StorageDriver), nil
}
