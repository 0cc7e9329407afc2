// Package cache stores rendered artifacts keyed by tree content and render
// options.
//
// Three backends implement [Cache]:
//   - [FileCache]: entries as JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [MemoryCache]: an in-process map, for the service without Redis
//
// [NullCache] disables caching. Keys come from a [Keyer]; [DefaultKeyer]
// hashes the render options so that any option change yields a new key.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long rendered outputs stay cached.
const TTLArtifact = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry. A ttl of zero means the entry
// does not expire.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts lists everything besides the tree that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Layout   string  `json:"layout"`
	Gradient bool    `json:"gradient"`
	Border   bool    `json:"border"`
	Angled   bool    `json:"angled"`
	Title    string  `json:"title,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered format of the tree whose
	// document hashes to treeHash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}
