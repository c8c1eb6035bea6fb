package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/paneldeck/paneldeck/internal/core/cache"
	"github.com/paneldeck/paneldeck/internal/telemetry"
	"golang.org/x/sync/singleflight"
)

// ResponseCache serves encoded responses for identical normalized requests and
// coalesces concurrent computations of the same key. A nil *ResponseCache computes
// every request.
//
// Entries are never invalidated by writes to the collections; they only expire.
type ResponseCache struct {
	store   cache.Store
	group   singleflight.Group
	metrics *telemetry.Metrics
}

// NewResponseCache wraps store. metrics may be nil.
func NewResponseCache(store cache.Store, metrics *telemetry.Metrics) *ResponseCache {
	return &ResponseCache{store: store, metrics: metrics}
}

// Do returns the encoded response for key, calling compute on a miss.
// hit reports whether the body came from the store.
func (c *ResponseCache) Do(ctx context.Context, key string, compute func(context.Context) (Response, error)) (body []byte, hit bool, err error) {
	if c == nil {
		resp, err := compute(ctx)
		if err != nil {
			return nil, false, err
		}
		body, err := encode(resp)
		return body, false, err
	}

	cached, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		// A broken cache must not fail the request.
		slog.Warn("[Cache] Lookup failed, computing response", "error", err)
		c.metrics.ObserveCache("error")
	case ok:
		c.metrics.ObserveCache("hit")
		return cached, true, nil
	default:
		c.metrics.ObserveCache("miss")
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		resp, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		body, err := encode(resp)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, body); err != nil {
			slog.Warn("[Cache] Store failed", "error", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.([]byte), false, nil
}

func encode(resp Response) ([]byte, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	return body, nil
}
