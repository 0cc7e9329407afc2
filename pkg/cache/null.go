package cache

import (
	"context"
	"time"
)

// NullCache stands in for the artifact cache when caching is off. Reason
// records why (a --no-cache flag, `enabled = false` in the config, an
// unusable cache directory) so callers can report it.
//
// The pipeline runner does not consult a NullCache at all: every format is
// rendered and nothing is reported as a cache miss.
type NullCache struct {
	Reason string
}

// NewNullCache returns a NullCache with no recorded reason.
func NewNullCache() Cache { return Disabled("") }

// Disabled returns a NullCache that remembers reason.
func Disabled(reason string) Cache { return NullCache{Reason: reason} }

// IsDisabled reports whether c is a NullCache, and its reason.
func IsDisabled(c Cache) (string, bool) {
	switch n := c.(type) {
	case NullCache:
		return n.Reason, true
	case *NullCache:
		return n.Reason, n != nil
	}
	return "", false
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
