package lyrics

import (
	"context"
	"fmt"

	"lyrics-fetcher/pkg/musiccache"

	"github.com/rs/zerolog"
)

// Retriever 远程歌词来源，只返回 LRC 文本或错误
type Retriever interface {
	GetSyncedLyrics(ctx context.Context, artist, title string) (lrc string, source string, err error)
}

// Options 解析器的可选行为
type Options struct {
	Cache           musiccache.Cache
	DisableFallback bool
	Report          func(error) // 上报意外错误（例如 sentry）
}

// Resolver 按 缓存 → 远程+解析 → 占位歌词 的顺序生成结果，从不返回错误
type Resolver struct {
	retriever Retriever
	cache     musiccache.Cache
	fallback  bool
	report    func(error)
}

func NewResolver(retriever Retriever, opts Options) *Resolver {
	cache := opts.Cache
	if cache == nil {
		cache = musiccache.Nop{}
	}
	report := opts.Report
	if report == nil {
		report = func(error) {}
	}
	return &Resolver{
		retriever: retriever,
		cache:     cache,
		fallback:  !opts.DisableFallback,
		report:    report,
	}
}

// Resolve 获取并解析歌词。任何失败都转换成占位结果（或在关闭回退时转换成 NotFound）
func (r *Resolver) Resolve(ctx context.Context, artist, title string) (result Result) {
	logger := zerolog.Ctx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic while resolving lyrics for '%s - %s': %v", artist, title, rec)
			logger.Error().Err(err).Msg("Unexpected failure, using fallback lyrics")
			r.report(err)
			result = r.noLyrics(artist, title)
		}
	}()

	if cached, ok := r.fromCache(ctx, artist, title); ok {
		return cached
	}

	if r.retriever == nil {
		logger.Warn().Msg("No lyrics retriever configured")
		return r.noLyrics(artist, title)
	}

	lrc, source, err := r.retriever.GetSyncedLyrics(ctx, artist, title)
	if err != nil {
		logger.Warn().Err(err).Str("artist", artist).Str("title", title).Msg("No synchronized lyrics found")
		return r.noLyrics(artist, title)
	}

	lines := ParseLRC(lrc)
	if len(lines) == 0 {
		logger.Warn().Int("raw_length", len(lrc)).Msg("Parsed lyrics are empty")
		return r.noLyrics(artist, title)
	}

	if source == "" {
		source = SourceLRCLib
	}
	logger.Info().Int("lines_count", len(lines)).Str("source", source).Msg("Parsed synced lyrics")

	if err := r.cache.Put(ctx, artist, title, musiccache.Entry{LRC: lrc, Source: source}); err != nil {
		logger.Warn().Err(err).Msg("Failed to store lyrics in cache")
	}

	return newResult(lines, source, lrc)
}

func (r *Resolver) fromCache(ctx context.Context, artist, title string) (Result, bool) {
	logger := zerolog.Ctx(ctx)

	entry, ok, err := r.cache.Get(ctx, artist, title)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read lyrics cache")
		return Result{}, false
	}
	if !ok {
		return Result{}, false
	}

	lines := ParseLRC(entry.LRC)
	if len(lines) == 0 {
		logger.Warn().Msg("Cached lyrics are empty, ignoring cache entry")
		return Result{}, false
	}

	source := entry.Source
	if source == "" {
		source = SourceLRCLib
	}
	logger.Info().Str("source", source).Msg("Cache HIT")
	return newResult(lines, source, entry.LRC), true
}

func (r *Resolver) noLyrics(artist, title string) Result {
	if !r.fallback {
		return NotFound()
	}
	return Fallback(artist, title)
}
