// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

package resolver

import (
	"context"
	"time"

	"github.com/hoptrace/hoptrace/cache"
)

const defaultResolveCacheTTL = 60 * time.Second

type cachedResolver struct {
	inner Resolver
	ttl   time.Duration
}

// NewCached wraps a Resolver with an in-memory cache so repeated traces to
// the same destination skip the lookup. A non-positive ttl falls back to the
// default.
func NewCached(inner Resolver, ttl time.Duration) Resolver {
	if ttl <= 0 {
		ttl = defaultResolveCacheTTL
	}
	return &cachedResolver{inner: inner, ttl: ttl}
}

func (c *cachedResolver) Resolve(ctx context.Context, destination string) (string, error) {
	if destination == "" {
		return "", nil
	}
	return cache.DoWithTTL("resolve:"+destination, func() (string, error) {
		return c.inner.Resolve(ctx, destination)
	}, c.ttl)
}
