package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps blobs as plain string keys under a common prefix.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "storefront"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) key(name string) string {
	return fmt.Sprintf("%s:%s", s.prefix, name)
}

func (s *RedisStorage) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", name, err)
	}
	return data, nil
}

func (s *RedisStorage) Save(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", name, err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", name, err)
	}
	return nil
}
