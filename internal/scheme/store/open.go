package store

import (
	"context"
	"fmt"

	"github.com/gogotex/schemes/internal/config"
	"github.com/gogotex/schemes/internal/database"
	"github.com/spf13/afero"
)

// Open builds the backend selected by cfg.Store.Driver. The returned close
// function releases any client the backend holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	noop := func() error { return nil }
	key := cfg.Store.Key
	switch cfg.Store.Driver {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "", "file":
		return NewFileStore(afero.NewOsFs(), cfg.File.Path), noop, nil
	case "sqlite":
		s, err := NewSQLiteStore(cfg.SQLite.Path, key)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case "redis":
		client, err := database.ConnectRedis(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return NewRedisStore(client, key), client.Close, nil
	case "mongo":
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			return nil, noop, err
		}
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		return NewMongoStore(col, key), func() error { return client.Disconnect(context.Background()) }, nil
	case "minio":
		s, err := NewMinIOStore(ctx, MinIOOptions{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		}, key)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
