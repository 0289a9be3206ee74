package cache

import "context"

// NullCache is a no-op cache that never stores anything. It is the cache used
// when caching is disabled or no usable cache root exists, making "caching
// off" a first-class state instead of a nil check at every call site.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get always returns a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	return nil, "", false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, mimeType string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
