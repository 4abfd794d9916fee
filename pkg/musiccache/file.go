package musiccache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"lyrics-fetcher/pkg/fileutil"
)

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// FileCache 每首歌一个 JSON 文件
type FileCache struct {
	dir string
	ttl time.Duration // 0 表示永不过期
}

func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("file cache requires a cache directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

func (c *FileCache) path(artist, title string) string {
	return filepath.Join(c.dir, sanitizeFilename(Key(artist, title))+".json")
}

func (c *FileCache) Get(_ context.Context, artist, title string) (Entry, bool, error) {
	p := c.path(artist, title)

	info, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return Entry{}, false, nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read cache file %s: %w", p, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("failed to decode cache file %s: %w", p, err)
	}
	return entry, true, nil
}

func (c *FileCache) Put(_ context.Context, artist, title string, entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return fileutil.WriteFileOverwrite(c.path(artist, title), data, 0644)
}

func (c *FileCache) Close() error { return nil }

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "-")
}
