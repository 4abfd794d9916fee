package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"lyrics-fetcher/internal/config"
	"lyrics-fetcher/internal/lyrics"
	"lyrics-fetcher/pkg/lrclib"
	"lyrics-fetcher/pkg/music"
	"lyrics-fetcher/pkg/musiccache"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const sentryFlushTimeout = 2 * time.Second

// SetupLogging 日志写到 stderr，stdout 只留给 JSON 结果
func SetupLogging(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

type App struct {
	cfg      *config.Config
	resolver *lyrics.Resolver
	cache    musiccache.Cache
	sentry   bool
}

// New 根据配置组装提供商、缓存和解析器。缓存不可用时降级为不缓存
func New(cfg *config.Config) (*App, error) {
	SetupLogging(cfg.App.LogLevel)

	manager, err := music.CreateManager(cfg.Providers.Order, music.FactoryOptions{
		LRCLib: lrclib.Options{
			BaseURL:            cfg.LRCLib.BaseURL,
			UserAgent:          cfg.LRCLib.UserAgent,
			Timeout:            cfg.LRCLib.Timeout,
			InsecureSkipVerify: cfg.LRCLib.InsecureSkipVerify,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lyrics providers: %w", err)
	}

	cache, err := musiccache.New(musiccache.Config{
		Backend:       cfg.App.CacheBackend,
		Dir:           cfg.App.CacheDir,
		TTL:           cfg.App.CacheTTL,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.App.CacheBackend).Msg("Lyrics cache unavailable, continuing without cache")
		cache = musiccache.Nop{}
	}

	a := &App{cfg: cfg, cache: cache}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Warn().Err(err).Msg("sentry.Init failed, error reporting disabled")
		} else {
			a.sentry = true
		}
	}

	a.resolver = lyrics.NewResolver(manager, lyrics.Options{
		Cache:           cache,
		DisableFallback: !cfg.App.Fallback,
		Report:          a.report,
	})

	log.Debug().
		Strs("providers", manager.GetProviderNames()).
		Str("cache_backend", cfg.App.CacheBackend).
		Bool("fallback", cfg.App.Fallback).
		Msg("Lyrics fetcher initialized")

	return a, nil
}

// NewWithResolver 用现成的解析器创建 App（测试和嵌入使用）
func NewWithResolver(cfg *config.Config, resolver *lyrics.Resolver) *App {
	return &App{cfg: cfg, resolver: resolver, cache: musiccache.Nop{}}
}

// Lyrics 为一次查询生成结果，每次调用带独立的 request_id
func (a *App) Lyrics(ctx context.Context, artist, title string) lyrics.Result {
	logger := log.With().
		Str("request_id", uuid.NewString()).
		Str("artist", artist).
		Str("title", title).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Info().Msg("Fetching lyrics")
	result := a.resolver.Resolve(ctx, artist, title)
	logger.Info().
		Bool("success", result.Success).
		Str("source", result.Source).
		Int("lines_count", len(result.Synced)).
		Msg("Lyrics resolved")
	return result
}

// Run 获取歌词并向 w 写入一行 JSON
func (a *App) Run(ctx context.Context, artist, title string, w io.Writer) error {
	result := a.Lyrics(ctx, artist, title)
	if err := WriteResult(w, result); err != nil {
		a.report(err)
		return err
	}
	return nil
}

// WriteResult 把结果编码为单行 JSON
func WriteResult(w io.Writer, result lyrics.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode lyrics result: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write lyrics result: %w", err)
	}
	return nil
}

// SentryEnabled HTTP 模式据此决定是否安装 sentry 中间件
func (a *App) SentryEnabled() bool {
	return a.sentry
}

func (a *App) report(err error) {
	if err == nil || !a.sentry {
		return
	}
	sentry.CaptureException(err)
}

// Close 释放缓存连接并发送未完成的 sentry 事件
func (a *App) Close() error {
	var errs []error
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.sentry {
		sentry.Flush(sentryFlushTimeout)
	}
	return errors.Join(errs...)
}
