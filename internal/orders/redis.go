package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a BlobStore backed by Redis, for deployments where several
// app installs share one history backend. Keys carry no TTL: the order log
// is durable state, not a cache.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, blobKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, blobKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	deleted, err := r.client.Del(ctx, blobKey(key)).Result()
	if err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	if deleted == 0 {
		return ErrBlobNotFound
	}
	return nil
}

func blobKey(key string) string {
	return fmt.Sprintf("storefront:%s", key)
}
