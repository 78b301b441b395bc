package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the interface for the search-response cache (Redis). Callers
// treat every cache failure as a miss; the cache is never load-bearing.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
