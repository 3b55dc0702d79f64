// Package cache stores rendered artifacts between runs.
//
// # Backends
//
//   - [NullCache]: never stores anything (--no-cache, tests)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the preview server
//
// All backends implement [Cache] and are safe for concurrent use.
//
// # Keys
//
// Keys are produced by a [Keyer]. [DefaultKeyer] hashes the scene
// configuration and the render options with SHA-256, so the same scene at
// the same scale reuses its SVG, PNG, PDF or JSON output:
//
//	k := cache.NewDefaultKeyer()
//	sceneHash := cache.HashJSON(cfg)
//	key := k.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "svg", Scale: 10})
//
// [ScopedKeyer] prefixes every key, which keeps the server's entries apart
// from the CLI's when both share a Redis instance.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	ArtifactTTL = 7 * 24 * time.Hour
	SceneTTL    = 24 * time.Hour
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns the cache used for --no-cache runs.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
