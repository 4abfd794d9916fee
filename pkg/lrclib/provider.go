package lrclib

import "context"

// GetProvider 使用 /get 接口的歌词提供商（默认）
type GetProvider struct {
	client *Client
}

func NewGetProvider(client *Client) *GetProvider {
	return &GetProvider{client: client}
}

func (p *GetProvider) GetProviderName() string { return "LRCLib" }

func (p *GetProvider) Source() string { return Source }

func (p *GetProvider) GetSyncedLyrics(ctx context.Context, artist, title string) (string, error) {
	return p.client.GetSynced(ctx, artist, title)
}

// SearchProvider 使用 /search 接口的歌词提供商
type SearchProvider struct {
	client *Client
}

func NewSearchProvider(client *Client) *SearchProvider {
	return &SearchProvider{client: client}
}

func (p *SearchProvider) GetProviderName() string { return "LRCLib Search" }

func (p *SearchProvider) Source() string { return Source }

func (p *SearchProvider) GetSyncedLyrics(ctx context.Context, artist, title string) (string, error) {
	return p.client.SearchSynced(ctx, artist, title)
}
