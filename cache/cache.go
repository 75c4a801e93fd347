// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package cache memoizes expensive lookups (resolved addresses, the source
// public IP) in an in-memory store.
package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultExpire = 5 * time.Minute
	defaultPurge  = 30 * time.Second
)

// Store is the process-wide key:value store backing Do and DoWithTTL.
var Store = cache.New(defaultExpire, defaultPurge)

// Do returns the cached value for 'key', computing and caching it with 'fn'
// on a miss. Values computed without error never expire; errors are not
// cached.
func Do[T any](key string, fn func() (T, error)) (T, error) {
	return DoWithTTL[T](key, fn, cache.NoExpiration)
}

// DoWithTTL is Do with an explicit expiration for newly computed values.
func DoWithTTL[T any](key string, fn func() (T, error), ttl time.Duration) (T, error) {
	if x, found := Store.Get(key); found {
		return x.(T), nil
	}

	res, err := fn()
	if err == nil {
		Store.Set(key, res, ttl)
	}
	return res, err
}

// Flush drops every cached entry.
func Flush() {
	Store.Flush()
}
