package cache

import (
	"context"
	"time"
)

// Cache is a small TTL key-value store injected into the components that
// need one. Callers own serialization; values are opaque bytes.
type Cache interface {
	// Get returns the value and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
