package memstore

import (
	"context"
	"fmt"

	"github.com/patrickmn/go-cache"
)

// Store holds values in process memory. Nothing survives Close.
type Store struct {
	cache *cache.Cache
}

func New() *Store {
	return &Store{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	v, found := s.cache.Get(key)
	if !found {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("key %q holds %T, not string", key, v)
	}
	return str, true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

// Keys lists the stored keys in no particular order.
func (s *Store) Keys() []string {
	items := s.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Close() error {
	s.cache.Flush()
	return nil
}
