package cache

import (
	"context"
	"time"
)

// Cache is a lookaside KV store for resolved mappings. The service keeps two
// directions in it (code -> url and url -> code), the same pair of indexes
// the durable store maintains. Implementations must treat a miss as a normal
// result, not an error.
type Cache interface {
	// Set stores a key-value pair with expiration
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Get retrieves a value by key; returns "" on miss
	Get(ctx context.Context, key string) (string, error)

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error
}
