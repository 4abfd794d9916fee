package musiccache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"

	keyFormat = "%s:%s"
)

// Entry 缓存的原始 LRC 及其来源
type Entry struct {
	LRC    string `json:"lrc"`
	Source string `json:"source"`
}

// Cache 已成功解析过的歌词缓存
type Cache interface {
	Get(ctx context.Context, artist, title string) (Entry, bool, error)
	Put(ctx context.Context, artist, title string, entry Entry) error
	Close() error
}

// Config 缓存配置
type Config struct {
	Backend string
	Dir     string
	TTL     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New 根据后端类型创建缓存
func New(cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendNone:
		return Nop{}, nil
	case BackendFile:
		return NewFileCache(cfg.Dir, cfg.TTL)
	case BackendRedis:
		return NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}

// Key 大小写和首尾空白不影响命中
func Key(artist, title string) string {
	return fmt.Sprintf(keyFormat,
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(artist)))
}

// Nop 不缓存
type Nop struct{}

func (Nop) Get(context.Context, string, string) (Entry, bool, error) { return Entry{}, false, nil }
func (Nop) Put(context.Context, string, string, Entry) error         { return nil }
func (Nop) Close() error                                             { return nil }
