package lrclib

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL   = "https://lrclib.net/api"
	DefaultUserAgent = "SpotifyKaraoke/1.0"
	DefaultTimeout   = 10 * time.Second

	// Source lrclib 歌词的来源标记
	Source = "lrclib.net"
)

// ErrNoSyncedLyrics 服务端有回复但没有同步歌词
var ErrNoSyncedLyrics = errors.New("no synced lyrics")

// Options LRCLib 客户端配置
type Options struct {
	BaseURL            string
	UserAgent          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Client LRCLib客户端
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	requestTimeout time.Duration
	logger         zerolog.Logger
}

// LRCLibResponse LRCLib API响应结构
type LRCLibResponse struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLibSearchResponse LRCLib API搜索响应（列表）
type LRCLibSearchResponse []LRCLibResponse

// NewClient 创建新的LRCLib客户端，未设置的选项使用默认值
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	logger := log.With().Str("component", "lrclib").Logger()
	if opts.InsecureSkipVerify {
		logger.Warn().Msg("TLS certificate verification is disabled for LRCLib requests")
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: opts.InsecureSkipVerify,
					MinVersion:         tls.VersionTLS12,
				},
			},
		},
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		userAgent:      opts.UserAgent,
		requestTimeout: opts.Timeout,
		logger:         logger,
	}
}

// GetSynced 通过 /get 精确查询，只发一次请求
func (c *Client) GetSynced(ctx context.Context, artist, title string) (string, error) {
	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)
	params.Set("album_name", "")

	var lrcResponse LRCLibResponse
	if err := c.getJSON(ctx, "/get", params, &lrcResponse); err != nil {
		return "", err
	}

	if strings.TrimSpace(lrcResponse.SyncedLyrics) == "" {
		return "", fmt.Errorf("%w for '%s - %s'", ErrNoSyncedLyrics, title, artist)
	}

	c.logger.Info().
		Str("track", lrcResponse.TrackName).
		Str("artist", lrcResponse.ArtistName).
		Msg("Found synced lyrics")
	return lrcResponse.SyncedLyrics, nil
}

// SearchSynced 通过 /search 查询，从结果中挑选最匹配且有同步歌词的一条
func (c *Client) SearchSynced(ctx context.Context, artist, title string) (string, error) {
	params := url.Values{}
	params.Set("track_name", title)
	params.Set("artist_name", artist)

	var lrcResponses LRCLibSearchResponse
	if err := c.getJSON(ctx, "/search", params, &lrcResponses); err != nil {
		return "", err
	}

	c.logger.Info().
		Int("results", len(lrcResponses)).
		Str("title", title).
		Str("artist", artist).
		Msg("Search finished")

	bestMatch := findBestMatch(lrcResponses, title, artist)
	if bestMatch == nil {
		return "", fmt.Errorf("%w in search results for '%s - %s'", ErrNoSyncedLyrics, title, artist)
	}

	c.logger.Info().
		Str("track", bestMatch.TrackName).
		Str("artist", bestMatch.ArtistName).
		Msg("Selected synced lyrics from search")
	return bestMatch.SyncedLyrics, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	c.logger.Debug().Str("url", reqURL).Msg("Requesting")

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// findBestMatch 标题+歌手匹配优先，其次只匹配标题，最后取任意一条；只考虑有同步歌词的结果
func findBestMatch(responses LRCLibSearchResponse, targetTitle, targetArtist string) *LRCLibResponse {
	var exactMatch, titleMatch, anyMatch *LRCLibResponse

	for i := range responses {
		response := &responses[i]
		if strings.TrimSpace(response.SyncedLyrics) == "" {
			continue
		}

		switch {
		case containsIgnoreCase(response.TrackName, targetTitle) && containsIgnoreCase(response.ArtistName, targetArtist):
			if exactMatch == nil {
				exactMatch = response
			}
		case containsIgnoreCase(response.TrackName, targetTitle):
			if titleMatch == nil {
				titleMatch = response
			}
		default:
			if anyMatch == nil {
				anyMatch = response
			}
		}
	}

	switch {
	case exactMatch != nil:
		return exactMatch
	case titleMatch != nil:
		return titleMatch
	default:
		return anyMatch
	}
}

// containsIgnoreCase 忽略大小写检查包含关系
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
