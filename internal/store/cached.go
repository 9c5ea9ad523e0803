package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/edupercentage/platform-service/internal/cache"
)

// CachedStore decorates a Store with a Redis read-through cache on whole
// collection blobs. Writes and deletes invalidate the cached blob before
// hitting the inner store, so a reader never sees a blob newer than the
// backing row for longer than the TTL.
type CachedStore struct {
	inner  Store
	helper *cache.CacheHelper
}

func NewCachedStore(inner Store, client *redis.Client) *CachedStore {
	return &CachedStore{
		inner:  inner,
		helper: cache.NewCacheHelper(client, cache.CollectionCacheConfig.Prefix),
	}
}

func (s *CachedStore) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.helper.GetBytes(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, cache.ErrCacheNotFound) && !errors.Is(err, cache.ErrCacheNotAvailable) {
		slog.WarnContext(ctx, "Cache read failed, falling back to store", "key", key, "error", err)
	}

	data, err = s.inner.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := s.helper.SetBytes(ctx, key, data, cache.CollectionCacheConfig.TTL); err != nil {
		slog.WarnContext(ctx, "Cache set failed", "key", key, "error", err)
	}
	return data, nil
}

func (s *CachedStore) Write(ctx context.Context, key string, data []byte) error {
	cache.SafeDelete(ctx, s.helper, key)
	return s.inner.Write(ctx, key, data)
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	cache.SafeDelete(ctx, s.helper, key)
	return s.inner.Delete(ctx, key)
}

func (s *CachedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.Keys(ctx, prefix)
}

func (s *CachedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

func (s *CachedStore) Close() error {
	return s.inner.Close()
}
