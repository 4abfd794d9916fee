package musiccache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lyrics-fetcher/pkg/redis"
)

const redisKeyPrefix = "lyrics:"

// RedisCache 把条目以 JSON 存到 redis，过期交给 redis 处理
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client, err := redis.NewClient(addr, password, db)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, artist, title string) (Entry, bool, error) {
	data, err := c.client.GetBytes(ctx, redisKeyPrefix+Key(artist, title))
	if err != nil {
		return Entry{}, false, err
	}
	if data == nil {
		return Entry{}, false, nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode cached lyrics: %w", err)
	}
	return entry, true, nil
}

func (c *RedisCache) Put(ctx context.Context, artist, title string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.SetWithExpiration(ctx, redisKeyPrefix+Key(artist, title), data, c.ttl)
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
