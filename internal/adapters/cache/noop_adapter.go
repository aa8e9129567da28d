package cache

import (
	"context"

	"github.com/zatekoja/smart-health-assistant/internal/domain/providers"
)

// NoopAdapter is the degraded-mode cache used when Redis is unreachable at
// startup. Every lookup is a miss and every write is discarded, so the
// service keeps answering requests without a cache backend.
type NoopAdapter struct{}

// NewNoopAdapter creates a cache adapter that never stores anything
func NewNoopAdapter() providers.CacheProvider {
	return &NoopAdapter{}
}

// Get always reports a miss
func (a *NoopAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}

// Set discards the value
func (a *NoopAdapter) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return nil
}
