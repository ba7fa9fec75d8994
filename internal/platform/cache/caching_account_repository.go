// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"tuishare_backend/internal/feature/account/domain/entity"
	"tuishare_backend/internal/feature/account/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "accounts"
)

// CachingAccountRepository decorates an account Repository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Records are never updated after
// creation, so cached entries cannot go stale; only positive lookups are cached.
type CachingAccountRepository[T entity.Record[T]] struct {
	inner     usecase.Repository[T]
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure CachingAccountRepository implements Repository.
var _ usecase.Repository[*entity.Student] = (*CachingAccountRepository[*entity.Student])(nil)

// NewCachingAccountRepository decorates a Repository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "accounts".
// A nil rdb disables caching.
func NewCachingAccountRepository[T entity.Record[T]](rdb *redis.Client, ttl time.Duration, inner usecase.Repository[T], namespace string) *CachingAccountRepository[T] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingAccountRepository[T]{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Insert writes to the underlying repository, then stores the record in the cache.
func (c *CachingAccountRepository[T]) Insert(ctx context.Context, rec T) error {
	if err := c.inner.Insert(ctx, rec); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.store(ctx, c.key(rec.Key()), rec)
	return nil
}

// FindByKey checks the cache first, then falls back to the underlying repository.
func (c *CachingAccountRepository[T]) FindByKey(ctx context.Context, key string) (T, error) {
	if c.rdb == nil {
		return c.inner.FindByKey(ctx, key)
	}

	ck := c.key(key)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, ck).Bytes(); err == nil && len(b) > 0 {
		var zero T
		rec := zero.New()
		if err := json.Unmarshal(b, rec); err == nil && rec.Key() == key {
			return rec, nil
		}
		// Delete corrupted or foreign cache entry
		_ = c.rdb.Del(ctx, ck).Err()
	}

	// 2) Fallback to the backing medium
	rec, err := c.inner.FindByKey(ctx, key)
	if err != nil {
		return rec, err
	}

	// 3) Store in cache (best effort)
	c.store(ctx, ck, rec)
	return rec, nil
}

// Exists answers from the cache when the key is cached, otherwise asks the
// underlying repository.
func (c *CachingAccountRepository[T]) Exists(ctx context.Context, key string) (bool, error) {
	if c.rdb != nil {
		if n, err := c.rdb.Exists(ctx, c.key(key)).Result(); err == nil && n > 0 {
			return true, nil
		}
	}
	return c.inner.Exists(ctx, key)
}

// store writes rec under ck. Failures are logged and ignored.
func (c *CachingAccountRepository[T]) store(ctx context.Context, ck string, rec T) {
	b, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, ck, b, c.ttl).Err(); err != nil {
		slog.Warn("account cache write failed", "key", ck, "error", err)
	}
}

// key generates the cache key for an identifying key of this kind.
func (c *CachingAccountRepository[T]) key(key string) string {
	var zero T
	return cacheKey(c.namespace, zero.Kind(), key)
}
