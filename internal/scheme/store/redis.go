package store

import (
	"context"
	"errors"

	"github.com/gogotex/schemes/internal/scheme"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the JSON-encoded list under a single Redis key with no TTL.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: keyOrDefault(key)}
}

func (r *RedisStore) Driver() string { return "redis" }

func (r *RedisStore) Load(ctx context.Context) ([]scheme.Scheme, bool, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	list, err := decode(b)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}

func (r *RedisStore) Save(ctx context.Context, list []scheme.Scheme) error {
	b, err := encode(list)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key, b, 0).Err()
}
