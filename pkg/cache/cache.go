// Package cache implements the content-addressed image cache.
//
// Rendered diagrams are stored keyed by a SHA-1 hash of their source text, so
// identical source always resolves to the same entry regardless of which
// document it appeared in. There is no eviction: entries are invalidated only
// by the source text changing, which produces a new key.
//
// Caching is an optimization, never a correctness requirement. When no usable
// cache root can be determined, [Open] degrades to a [NullCache] and every
// lookup is a miss.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
)

// appDir is the subdirectory of the platform cache home used by default.
const appDir = "renderfig"

// Cache stores rendered diagram bytes keyed by a content hash.
//
// Implementations must tolerate concurrent use from a single pipeline; the
// pipeline itself is sequential, but the HTTP service shares one cache across
// requests.
type Cache interface {
	// Get retrieves the entry for key, reporting whether it exists.
	Get(ctx context.Context, key string) (data []byte, mimeType string, ok bool, err error)

	// Set stores an entry unconditionally, overwriting any previous one.
	Set(ctx context.Context, key string, data []byte, mimeType string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Hash computes the SHA-1 content hash of data as a 40-character hex string.
// This is the cache key for diagram source and the default basis for asset
// filenames.
func Hash(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// DefaultRoot returns the platform cache directory for renderfig
// (e.g. ~/.cache/renderfig on Linux). Returns false when no cache home can be
// determined, in which case caching should be disabled.
func DefaultRoot() (string, bool) {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		return "", false
	}
	return filepath.Join(base, appDir), true
}

// Open resolves a cache from configuration: disabled caching or an
// undeterminable root yields a NullCache, never an error. An explicit dir
// takes precedence over the platform default.
func Open(enabled bool, dir string) Cache {
	if !enabled {
		return NewNullCache()
	}
	if dir == "" {
		root, ok := DefaultRoot()
		if !ok {
			return NewNullCache()
		}
		dir = root
	}
	c, err := NewDirCache(dir)
	if err != nil {
		return NewNullCache()
	}
	return c
}
