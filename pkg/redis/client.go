package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const pingTimeout = 5 * time.Second

// Client 歌词缓存使用的 redis 客户端包装
type Client struct {
	rdb *redis.Client
}

// NewClient 创建客户端并检查连通性
func NewClient(addr string, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	client := &Client{rdb: rdb}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		rdb.Close()
		return nil, err
	}

	return client, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// SetWithExpiration expiration 为 0 时永久保存
func (c *Client) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

// GetBytes 键不存在时返回 nil
func (c *Client) GetBytes(ctx context.Context, key string) ([]byte, error) {
	result := c.rdb.Get(ctx, key)
	if result.Err() == redis.Nil {
		return nil, nil
	}
	return result.Bytes()
}

func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	return c.rdb.Del(ctx, keys...).Result()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
