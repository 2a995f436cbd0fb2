// Package cache provides the storage interface used to reuse computed
// layouts and rendered artifacts.
//
// # Overview
//
// Replaying a layout script is cheap, but rendering PNG and PDF output is
// not. The pipeline stores both the flattened layout and every rendered
// artifact under content-addressed keys built by a [Keyer]:
//
//	layout:<sha256(script hash, options)>
//	artifact:<sha256(layout hash, format, options)>
//
// Because keys are derived from content, entries never need invalidation;
// they only expire.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (--no-cache)
//
// All backends are safe for concurrent use.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// reported as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)
