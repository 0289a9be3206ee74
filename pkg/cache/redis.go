package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces renderfig entries in a shared Redis instance.
const keyPrefix = "fig:"

// RedisCache is a Redis-backed cache for the HTTP service, where multiple
// instances share rendered artifacts. Data and MIME type are stored under
// separate keys so the type never has to be inferred.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance at addr and verifies the
// connection with a ping.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves the data and MIME type stored for key.
// A missing data or MIME key is a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key+":data").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, "", false, nil
	}
	if err != nil {
		return nil, "", false, err
	}

	mimeType, err := c.client.Get(ctx, keyPrefix+key+":mime").Result()
	if errors.Is(err, redis.Nil) {
		return nil, "", false, nil
	}
	if err != nil {
		return nil, "", false, err
	}

	return data, mimeType, true, nil
}

// Set stores data and MIME type under the namespaced key. Entries never
// expire; like the directory cache, invalidation happens through new content
// hashes.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, mimeType string) error {
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, keyPrefix+key+":data", data, 0)
	pipe.Set(ctx, keyPrefix+key+":mime", mimeType, 0)
	_, err := pipe.Exec(ctx)
	return err
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
