// Package cache provides key-value caching for parsed molecules and rendered
// artifacts.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache
//
// Keys are built by a [Keyer] so every entry point (CLI, API) produces the
// same key for the same notation, element table and parser options.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil). Backends return an error only for
// infrastructure failures; callers treat those as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Default time-to-live values. Parses are deterministic for a given key, so
// these only bound disk and memory use.
const (
	TTLMolecule = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
