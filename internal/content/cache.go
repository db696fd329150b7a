package content

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/graciegould/snaglet/internal/logger"
)

const cacheKey = "public_content:list"

// RedisCache decorates a Store with a short-TTL cache of the public
// list. Only public documents ever enter the cache — credentials and
// claims stay request-scoped and are never stored. Redis trouble is
// not fatal: misses and errors fall through to the inner store.
type RedisCache struct {
	client *goredis.Client
	inner  Store
	ttl    time.Duration
}

func NewRedisCache(client *goredis.Client, inner Store, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
	}
}

func (c *RedisCache) ListPublic(ctx context.Context) ([]Document, error) {

	val, err := c.client.Get(ctx, cacheKey).Result()
	if err == nil {
		var docs []Document
		if err := json.Unmarshal([]byte(val), &docs); err == nil {
			return docs, nil
		}
		// Unreadable entry: drop it and refill below.
		_ = c.client.Del(ctx, cacheKey).Err()
	} else if err != goredis.Nil {
		logger.Warn("content cache read failed", map[string]any{
			"error": err.Error(),
		})
	}

	docs, err := c.inner.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(docs); err == nil {
		if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
			logger.Warn("content cache write failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	return docs, nil
}
