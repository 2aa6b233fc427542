// internal/core/ports/cache.go
package ports

import (
	"context"
	"time"
)

// CacheRepository defines the interface for cache operations. The engine
// uses it for best-effort projections (quantity snapshots, cart activity);
// a miss or failure never affects correctness.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}) error
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) error
	Exists(ctx context.Context, keys ...string) (bool, error)

	// Touch refreshes a key's TTL without rewriting the value; used for
	// cart last-activity tracking.
	Touch(ctx context.Context, key string, ttl time.Duration) error

	Ping(ctx context.Context) error
}
