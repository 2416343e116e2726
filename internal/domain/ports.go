package domain

import (
	"context"
	"time"
)

// Cache defines the key-value store backing the facade.
// Implementations: internal/infra/redis/cache.go, internal/infra/memory/cache.go
type Cache interface {
	// Get retrieves a live value by key. Returns nil, nil if not found or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value that expires after ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Pinger is implemented by dependencies that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Vendor is the identity of one upstream API client.
// Implementations: internal/infra/provider/
type Vendor interface {
	// Name returns the unique identifier for this vendor.
	Name() string

	// State returns the circuit breaker state ("closed", "half-open", "open").
	State() string
}
