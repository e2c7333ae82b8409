package port

import (
	"context"
	"time"
)

type CacheRepository interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Invalidate(ctx context.Context, key string) error
}
