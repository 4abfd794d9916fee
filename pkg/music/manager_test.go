package music

import (
	"context"
	"errors"
	"testing"
)

// mockProvider 模拟歌词提供商
type mockProvider struct {
	name   string
	source string
	lyrics string
	err    error
	calls  int
}

func (m *mockProvider) GetProviderName() string {
	return m.name
}

func (m *mockProvider) Source() string {
	return m.source
}

func (m *mockProvider) GetSyncedLyrics(ctx context.Context, artist, title string) (string, error) {
	m.calls++
	return m.lyrics, m.err
}

func TestGetSyncedLyrics(t *testing.T) {
	// 测试成功情况
	t.Run("Success", func(t *testing.T) {
		provider := &mockProvider{name: "TestProvider", source: "test.source", lyrics: "[00:10.00]Test lyrics"}

		manager := NewManager([]LyricsAPI{provider})
		lyrics, source, err := manager.GetSyncedLyrics(context.Background(), "Test Artist", "Test Song")

		if err != nil {
			t.Fatalf("Expected success, got error: %v", err)
		}
		if lyrics != "[00:10.00]Test lyrics" {
			t.Errorf("Expected '[00:10.00]Test lyrics', got '%s'", lyrics)
		}
		if source != "test.source" {
			t.Errorf("Expected source 'test.source', got '%s'", source)
		}
	})

	// 测试第一个失败、回退到第二个提供商
	t.Run("FailoverSuccess", func(t *testing.T) {
		failProvider := &mockProvider{name: "FailProvider", source: "fail", err: errors.New("not found")}
		emptyProvider := &mockProvider{name: "EmptyProvider", source: "empty", lyrics: "  \n"}
		successProvider := &mockProvider{name: "SuccessProvider", source: "ok", lyrics: "[00:10.00]Test lyrics"}

		manager := NewManager([]LyricsAPI{failProvider, emptyProvider, successProvider})
		_, source, err := manager.GetSyncedLyrics(context.Background(), "Test Artist", "Test Song")

		if err != nil {
			t.Fatalf("Expected success with failover, got error: %v", err)
		}
		if source != "ok" {
			t.Errorf("Expected source 'ok', got '%s'", source)
		}
		if failProvider.calls != 1 || emptyProvider.calls != 1 || successProvider.calls != 1 {
			t.Errorf("unexpected call counts: %d %d %d", failProvider.calls, emptyProvider.calls, successProvider.calls)
		}
	})

	// 成功后不再尝试后面的提供商
	t.Run("StopsAtFirstSuccess", func(t *testing.T) {
		first := &mockProvider{name: "First", lyrics: "[00:01.00]a"}
		second := &mockProvider{name: "Second", lyrics: "[00:01.00]b"}

		manager := NewManager([]LyricsAPI{first, second})
		lyrics, _, err := manager.GetSyncedLyrics(context.Background(), "a", "b")
		if err != nil || lyrics != "[00:01.00]a" {
			t.Fatalf("unexpected result %q, %v", lyrics, err)
		}
		if second.calls != 0 {
			t.Errorf("second provider should not be called, got %d calls", second.calls)
		}
	})

	// 测试所有提供商都失败
	t.Run("AllFail", func(t *testing.T) {
		notFound := errors.New("not found")
		manager := NewManager([]LyricsAPI{
			&mockProvider{name: "A", err: errors.New("boom")},
			&mockProvider{name: "B", err: notFound},
		})

		_, _, err := manager.GetSyncedLyrics(context.Background(), "Test Artist", "Test Song")
		if err == nil {
			t.Fatal("Expected error when all providers fail")
		}
		if !errors.Is(err, notFound) {
			t.Errorf("Expected last error to be wrapped, got %v", err)
		}
	})

	t.Run("NoProviders", func(t *testing.T) {
		_, _, err := NewManager(nil).GetSyncedLyrics(context.Background(), "a", "b")
		if !errors.Is(err, ErrNoProviders) {
			t.Errorf("Expected ErrNoProviders, got %v", err)
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		provider := &mockProvider{name: "P", lyrics: "[00:01.00]a"}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewManager([]LyricsAPI{provider}).GetSyncedLyrics(ctx, "a", "b")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if provider.calls != 0 {
			t.Errorf("provider should not be called after cancel")
		}
	})
}

func TestGetProviderNames(t *testing.T) {
	manager := NewManager([]LyricsAPI{&mockProvider{name: "A"}, &mockProvider{name: "B"}})
	names := manager.GetProviderNames()
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestGetProviderByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Provider
		wantErr bool
	}{
		{"lrclib", ProviderLRCLib, false},
		{" LRCLib.net ", ProviderLRCLib, false},
		{"lrclib_search", ProviderLRCLibSearch, false},
		{"netease", ProviderNetEase, false},
		{"网易云", ProviderNetEase, false},
		{"spotify", "", true},
	}
	for _, tt := range tests {
		got, err := GetProviderByName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("GetProviderByName(%q) error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("GetProviderByName(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}

func TestCreateManager(t *testing.T) {
	manager, err := CreateManager([]string{"bogus", "lrclib", "netease", "lrclib-search"}, FactoryOptions{})
	if err != nil {
		t.Fatalf("CreateManager failed: %v", err)
	}
	names := manager.GetProviderNames()
	want := []string{"LRCLib", "NetEase Cloud Music", "LRCLib Search"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("provider %d = %q; want %q", i, names[i], want[i])
		}
	}

	if _, err := CreateManager([]string{"bogus"}, FactoryOptions{}); !errors.Is(err, ErrNoProviders) {
		t.Errorf("expected ErrNoProviders, got %v", err)
	}
	if _, err := CreateManager(nil, FactoryOptions{}); !errors.Is(err, ErrNoProviders) {
		t.Errorf("expected ErrNoProviders for empty list, got %v", err)
	}
}

func TestGetAvailableProviders(t *testing.T) {
	for _, p := range GetAvailableProviders() {
		if _, err := GetProviderByName(string(p)); err != nil {
			t.Errorf("provider %q is not resolvable by name: %v", p, err)
		}
	}
}
