package music

import (
	"context"
)

// LyricsAPI 歌词提供商通用接口
type LyricsAPI interface {
	// GetProviderName 获取提供商名称（用于日志）
	GetProviderName() string

	// Source 结果中的来源标记，例如 "lrclib.net"
	Source() string

	// GetSyncedLyrics 根据歌手和标题获取 LRC 格式的同步歌词
	GetSyncedLyrics(ctx context.Context, artist, title string) (string, error)
}
