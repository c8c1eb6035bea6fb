// Package cache stores encoded metric responses for a short time.
package cache

import (
	"context"
	"time"
)

// Store is a byte-valued cache with a fixed time-to-live per entry.
type Store interface {
	// Get returns the value stored under key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the store's TTL.
	Set(ctx context.Context, key string, value []byte) error
}

// DefaultTTL is used when a store is created with a non-positive TTL.
const DefaultTTL = 30 * time.Second

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
