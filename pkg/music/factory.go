package music

import (
	"fmt"
	"strings"

	"lyrics-fetcher/pkg/lrclib"
	"lyrics-fetcher/pkg/netease"

	"github.com/rs/zerolog/log"
)

// FactoryOptions 创建提供商所需的配置
type FactoryOptions struct {
	LRCLib         lrclib.Options
	NetEaseBaseURL string
}

type factory struct {
	opts   FactoryOptions
	lrclib *lrclib.Client // get 和 search 共用一个客户端
}

func (f *factory) lrclibClient() *lrclib.Client {
	if f.lrclib == nil {
		f.lrclib = lrclib.NewClient(f.opts.LRCLib)
	}
	return f.lrclib
}

func (f *factory) create(provider Provider) (LyricsAPI, error) {
	switch provider {
	case ProviderLRCLib:
		return lrclib.NewGetProvider(f.lrclibClient()), nil
	case ProviderLRCLibSearch:
		return lrclib.NewSearchProvider(f.lrclibClient()), nil
	case ProviderNetEase:
		return netease.NewClient(f.opts.NetEaseBaseURL, f.opts.LRCLib.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown lyrics provider: %s", provider)
	}
}

// CreateManager 按名称顺序创建提供商管理器，未知的名称会被跳过
func CreateManager(names []string, opts FactoryOptions) (*Manager, error) {
	f := &factory{opts: opts}

	var providers []LyricsAPI
	for _, name := range names {
		providerType, err := GetProviderByName(name)
		if err != nil {
			log.Warn().Err(err).Msg("Skipping lyrics provider")
			continue
		}
		provider, err := f.create(providerType)
		if err != nil {
			log.Warn().Err(err).Str("provider", name).Msg("Failed to create lyrics provider")
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	return NewManager(providers), nil
}

// GetAvailableProviders 获取所有可用的提供商
func GetAvailableProviders() []Provider {
	return []Provider{
		ProviderLRCLib,
		ProviderLRCLibSearch,
		ProviderNetEase,
	}
}

// GetProviderByName 根据名称获取提供商
func GetProviderByName(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lrclib", "lrclib.net":
		return ProviderLRCLib, nil
	case "lrclib-search", "lrclib_search":
		return ProviderLRCLibSearch, nil
	case "netease", "网易云", "163":
		return ProviderNetEase, nil
	default:
		return "", fmt.Errorf("unknown provider name: %s", name)
	}
}
