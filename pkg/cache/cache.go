// Package cache stores rendered artifacts keyed by the content of the
// diagram that produced them.
//
// Three backends implement [Cache]:
//   - [FileCache] for the CLI, one JSON envelope per entry under a directory
//   - [RedisCache] for preview servers sharing a cache
//   - [NullCache] when caching is disabled
//
// Keys come from a [Keyer] so callers never build key strings by hand:
//
//	key := keyer.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{Format: "svg"})
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered artifacts are kept.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and whether the key was present.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// NullCache stores nothing. It backs --no-cache and hosts without a usable
// cache directory.
type NullCache struct{}

var _ Clearer = (*NullCache)(nil)

// NewNullCache returns a cache where every Get misses.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Clear(context.Context) error                              { return nil }
func (*NullCache) Close() error                                             { return nil }
