package cache

import (
	"context"
	"time"
)

// Store is the key-value contract consumed by the column cache.
// Implementations must be safe for concurrent use. Backend failures are
// reported as *UnavailableError so callers can tell them from misses.
type Store interface {
	Has(ctx context.Context, key string) (bool, error)
	// Get returns found=false and a nil error on a miss.
	Get(ctx context.Context, key string) (value any, found bool, err error)
	// Put stores value for ttl. A non-positive ttl removes the entry.
	Put(ctx context.Context, key string, value any, ttl time.Duration) error
	// PutForever stores value with no expiration. The entry lives until it is
	// evicted by the backend or removed with Forget.
	PutForever(ctx context.Context, key string, value any) error
	Forget(ctx context.Context, key string) error
}

// PrefixForgetter is implemented by stores able to drop a whole key namespace.
type PrefixForgetter interface {
	ForgetPrefix(ctx context.Context, prefix string) error
}
