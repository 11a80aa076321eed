package kvstore

import (
	"context"

	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps entries as plain redis strings without expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedis creates a client for addr. It does not dial until first use.
func NewRedis(addr, password string, db int) *RedisStore {
	return NewRedisWithClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get %s", key)
	}

	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return errors.Wrapf(s.client.Set(ctx, key, value, 0).Err(), "failed to set %s", key)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return errors.Wrapf(s.client.Del(ctx, key).Err(), "failed to delete %s", key)
}

// Ping verifies the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return errors.Wrap(s.client.Ping(ctx).Err(), "failed to ping redis")
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ repository.KeyValueStore = (*RedisStore)(nil)
