package kvstore

import (
	"context"

	"aliascore/internal/domain/repository"
	"aliascore/internal/errors"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcachedStore keeps entries in memcached without expiry.
// The memcache client has no context support; ctx is only checked before each call.
type MemcachedStore struct {
	client *memcache.Client
}

// NewMemcached creates a client for the given servers.
func NewMemcached(servers ...string) *MemcachedStore {
	return &MemcachedStore{client: memcache.New(servers...)}
}

func (s *MemcachedStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	item, err := s.client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to get %s", key)
	}

	return string(item.Value), nil
}

func (s *MemcachedStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrapf(s.client.Set(&memcache.Item{Key: key, Value: []byte(value)}), "failed to set %s", key)
}

func (s *MemcachedStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	err := s.client.Delete(key)
	if err == nil || errors.Is(err, memcache.ErrCacheMiss) {
		return nil
	}

	return errors.Wrapf(err, "failed to delete %s", key)
}

// Ping verifies every server is reachable.
func (s *MemcachedStore) Ping(_ context.Context) error {
	return errors.Wrap(s.client.Ping(), "failed to ping memcached")
}

func (s *MemcachedStore) Close() error {
	return nil
}

var _ repository.KeyValueStore = (*MemcachedStore)(nil)
