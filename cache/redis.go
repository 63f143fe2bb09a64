package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pagecache:"

type redisCache struct {
	client *redis.Client
}

// NewRedisCache returns a PageCache backed by a shared Redis instance.
func NewRedisCache(addr, password string) PageCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	body, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

func (c *redisCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, keyPrefix+key, body, ttl).Err(); err != nil {
		log.Printf("page cache set failed: %v", err)
	}
}

func (c *redisCache) Clear(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.client.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("page cache clear failed: %v", err)
	}
}
