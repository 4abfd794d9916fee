package netease

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://music.163.com"
	DefaultTimeout = 10 * time.Second

	// Source 网易云歌词的来源标记
	Source = "music.163.com"
)

// ErrNoLyrics 找到了歌曲但没有 LRC 歌词
var ErrNoLyrics = errors.New("no lyrics")

// NeteaseSearchResponse 网易云搜索API响应
type NeteaseSearchResponse struct {
	Result struct {
		Songs []struct {
			ID      int    `json:"id"`
			Name    string `json:"name"`
			Artists []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"songs"`
	} `json:"result"`
}

// NeteaseLyricResponse 网易云歌词API响应
type NeteaseLyricResponse struct {
	Lrc struct {
		Lyric string `json:"lyric"`
	} `json:"lrc"`
}

// Client 网易云音乐客户端
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	logger     zerolog.Logger
}

// NewClient 创建新的网易云音乐客户端，cookie 从 NETEASE_COOKIE 读取
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		cookie:     os.Getenv("NETEASE_COOKIE"),
		logger:     log.With().Str("component", "netease").Logger(),
	}
}

// GetProviderName 获取提供商名称
func (c *Client) GetProviderName() string {
	return "NetEase Cloud Music"
}

func (c *Client) Source() string {
	return Source
}

// GetSyncedLyrics 搜索歌曲后获取其 LRC 歌词
func (c *Client) GetSyncedLyrics(ctx context.Context, artist, title string) (string, error) {
	songID, err := c.SearchSong(ctx, title, artist)
	if err != nil {
		return "", err
	}
	lyric, err := c.GetLyrics(ctx, songID)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(lyric) == "" {
		return "", fmt.Errorf("%w for song %s", ErrNoLyrics, songID)
	}
	return lyric, nil
}

// SearchSong 搜索歌曲，返回歌曲ID
func (c *Client) SearchSong(ctx context.Context, title, artist string) (string, error) {
	params := url.Values{}
	params.Set("s", title)
	params.Set("type", "1")
	params.Set("limit", "100")
	searchURL := fmt.Sprintf("%s/api/search/get/web?%s", c.baseURL, params.Encode())
	c.logger.Debug().Str("url", searchURL).Msg("Searching for song")

	var searchResp NeteaseSearchResponse
	if err := c.getJSON(ctx, searchURL, &searchResp); err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}

	if len(searchResp.Result.Songs) == 0 {
		return "", fmt.Errorf("no songs found for '%s'", title)
	}

	songID := c.findBestMatch(searchResp, artist, title)
	if songID == 0 {
		return "", fmt.Errorf("no matching song found for '%s' by '%s'", title, artist)
	}

	return strconv.Itoa(songID), nil
}

// GetLyrics 获取歌词
func (c *Client) GetLyrics(ctx context.Context, songID string) (string, error) {
	params := url.Values{}
	params.Set("os", "pc")
	params.Set("id", songID)
	params.Set("lv", "-1")
	params.Set("kv", "-1")
	params.Set("tv", "-1")
	lyricURL := fmt.Sprintf("%s/api/song/lyric?%s", c.baseURL, params.Encode())
	c.logger.Debug().Str("url", lyricURL).Msg("Fetching lyrics")

	var lyricResp NeteaseLyricResponse
	if err := c.getJSON(ctx, lyricURL, &lyricResp); err != nil {
		return "", fmt.Errorf("lyric request failed: %w", err)
	}

	return lyricResp.Lrc.Lyric, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// 设置Cookie
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// findBestMatch 找到最佳匹配的歌曲
func (c *Client) findBestMatch(resp NeteaseSearchResponse, targetArtist, targetTitle string) int {
	for _, song := range resp.Result.Songs {
		if !containsIgnoreCase(song.Name, targetTitle) {
			continue
		}

		// artists 可能有多个，只要一个满足就算
		for _, artist := range song.Artists {
			if containsIgnoreCase(artist.Name, targetArtist) {
				c.logger.Info().Str("song", song.Name).Str("artist", artist.Name).Int("id", song.ID).Msg("Found matching song")
				return song.ID
			}
		}
	}

	// 如果没有找到完全匹配的，返回第一个匹配标题的
	first := resp.Result.Songs[0]
	if containsIgnoreCase(first.Name, targetTitle) {
		c.logger.Info().Str("song", first.Name).Int("id", first.ID).Msg("Using first matching song")
		return first.ID
	}

	return 0
}

// normalizeString 标准化字符串（转小写，去空格）
func normalizeString(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// containsIgnoreCase 忽略大小写和空格的包含关系检查
func containsIgnoreCase(s1, s2 string) bool {
	norm1, norm2 := normalizeString(s1), normalizeString(s2)
	return strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1)
}
