package music

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Provider 歌词提供商类型
type Provider string

const (
	// ProviderLRCLib LRCLib /get 精确查询
	ProviderLRCLib Provider = "lrclib"
	// ProviderLRCLibSearch LRCLib /search 模糊查询
	ProviderLRCLibSearch Provider = "lrclib-search"
	// ProviderNetEase 网易云音乐
	ProviderNetEase Provider = "netease"
)

// ErrNoProviders 没有可用的提供商
var ErrNoProviders = errors.New("no lyrics providers available")

// Manager 按优先级依次尝试各提供商
type Manager struct {
	providers []LyricsAPI
	logger    zerolog.Logger
}

// NewManager 创建新的提供商管理器，providers 的顺序即优先级
func NewManager(providers []LyricsAPI) *Manager {
	logger := log.With().Str("component", "music-manager").Logger()

	if len(providers) == 0 {
		logger.Warn().Msg("No lyrics providers configured")
	} else {
		logger.Debug().
			Int("provider_count", len(providers)).
			Str("primary_provider", providers[0].GetProviderName()).
			Msg("Lyrics provider manager initialized")
	}

	return &Manager{
		providers: providers,
		logger:    logger,
	}
}

// GetSyncedLyrics 返回第一个成功提供商的歌词及其来源标记
func (m *Manager) GetSyncedLyrics(ctx context.Context, artist, title string) (string, string, error) {
	if len(m.providers) == 0 {
		return "", "", ErrNoProviders
	}

	var lastErr error
	for i, provider := range m.providers {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}

		m.logger.Info().
			Str("title", title).
			Str("artist", artist).
			Str("provider", provider.GetProviderName()).
			Int("attempt", i+1).
			Int("total_providers", len(m.providers)).
			Msg("Trying to get lyrics")

		lrc, err := provider.GetSyncedLyrics(ctx, artist, title)
		if err == nil && strings.TrimSpace(lrc) == "" {
			err = fmt.Errorf("provider %s returned empty lyrics", provider.GetProviderName())
		}
		if err != nil {
			m.logger.Warn().
				Str("provider", provider.GetProviderName()).
				Err(err).
				Msg("Provider failed")
			lastErr = err
			continue
		}

		m.logger.Info().
			Str("provider", provider.GetProviderName()).
			Msg("Successfully got lyrics")
		return lrc, provider.Source(), nil
	}

	return "", "", fmt.Errorf("all providers failed to get lyrics for '%s - %s', last error: %w", title, artist, lastErr)
}

// GetProviderNames 获取所有提供商名称
func (m *Manager) GetProviderNames() []string {
	names := make([]string, len(m.providers))
	for i, provider := range m.providers {
		names[i] = provider.GetProviderName()
	}
	return names
}
