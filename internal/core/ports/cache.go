package ports

import (
	"context"
	"time"
)

// Cache defines a minimal key-value cache contract. Implementations must be
// safely callable while the backing connection is down: a failure is reported
// as an error result, never a panic, so callers can apply their
// degrade-to-store or degrade-to-offline policy explicitly.
type Cache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL. A zero or negative TTL means no
	// expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
