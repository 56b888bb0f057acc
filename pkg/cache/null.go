package cache

import (
	"context"
	"time"
)

// NullCache drops every write and misses every read. The CLI uses it for
// --no-cache and for the "none" backend.
type NullCache struct{}

var (
	_ Cache   = (*NullCache)(nil)
	_ Clearer = (*NullCache)(nil)
)

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// Clear reports zero removed entries.
func (*NullCache) Clear(context.Context) (int, error) { return 0, nil }
