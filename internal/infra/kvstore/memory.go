package kvstore

import (
	"context"

	"aliascore/internal/domain/repository"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in process memory. Entries never expire and are lost on exit.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	x, found := s.cache.Get(key)
	if !found {
		return "", repository.ErrKeyNotFound
	}

	value, ok := x.(string)
	if !ok {
		return "", repository.ErrKeyNotFound
	}

	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)

	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)

	return nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()

	return nil
}

var _ repository.KeyValueStore = (*MemoryStore)(nil)
