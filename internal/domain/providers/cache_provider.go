package providers

import (
	"context"
)

// CacheProvider defines the interface for caching operations. Implementations
// must be safe for concurrent use across requests.
type CacheProvider interface {
	// Get retrieves a value from cache. A miss is (nil, nil); a non-nil
	// error indicates a backend failure and callers treat it as a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error
}
