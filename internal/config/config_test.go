package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

var envKeys = []string{
	"LYRICS_CACHE_BACKEND", "LYRICS_CACHE_DIR", "LYRICS_CACHE_TTL", "LYRICS_FALLBACK", "LYRICS_LOG_LEVEL",
	"LYRICS_LRCLIB_URL", "LYRICS_USER_AGENT", "LYRICS_TIMEOUT", "LYRICS_INSECURE_TLS", "LYRICS_PROVIDERS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "LYRICS_SERVER_ADDR", "PORT", "GIN_MODE",
	"SENTRY_DSN", "SENTRY_ENVIRONMENT", "LYRICS_CONFIG",
}

// clearEnv 空值等同于未设置
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load(filepath.Join(t.TempDir(), "missing.toml"))

	if cfg.LRCLib.BaseURL != DefaultLRCLibURL {
		t.Errorf("BaseURL = %q", cfg.LRCLib.BaseURL)
	}
	if cfg.LRCLib.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.LRCLib.UserAgent)
	}
	if cfg.LRCLib.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.LRCLib.Timeout)
	}
	if cfg.LRCLib.InsecureSkipVerify {
		t.Error("TLS verification should be enabled by default")
	}
	if !cfg.App.Fallback {
		t.Error("fallback should be enabled by default")
	}
	if cfg.App.CacheBackend != "none" {
		t.Errorf("CacheBackend = %q", cfg.App.CacheBackend)
	}
	if !reflect.DeepEqual(cfg.Providers.Order, []string{"lrclib"}) {
		t.Errorf("Providers = %v", cfg.Providers.Order)
	}
	if cfg.Server.Addr != ":8080" || cfg.Server.Mode != "release" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Sentry.DSN != "" {
		t.Error("sentry should be disabled by default")
	}
}

func TestLoadTomlFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[app]
cache_backend = "file"
cache_dir = "/tmp/lyrics-test"
cache_ttl = "1h"
fallback = false
log_level = "debug"

[lrclib]
base_url = "http://localhost:9999/api"
user_agent = "test/1.0"
timeout = "3s"
insecure_skip_verify = true

[providers]
order = ["lrclib", "netease"]

[redis]
addr = "redis:6379"
db = 2

[server]
addr = ":9000"
mode = "debug"

[sentry]
dsn = "https://key@example.com/1"
environment = "staging"
`)

	cfg := Load(path)

	if cfg.App.CacheBackend != "file" || cfg.App.CacheDir != "/tmp/lyrics-test" || cfg.App.CacheTTL != time.Hour {
		t.Errorf("App = %+v", cfg.App)
	}
	if cfg.App.Fallback {
		t.Error("fallback = false in file should disable fallback")
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.App.LogLevel)
	}
	want := LRCLibConfig{BaseURL: "http://localhost:9999/api", UserAgent: "test/1.0", Timeout: 3 * time.Second, InsecureSkipVerify: true}
	if cfg.LRCLib != want {
		t.Errorf("LRCLib = %+v; want %+v", cfg.LRCLib, want)
	}
	if !reflect.DeepEqual(cfg.Providers.Order, []string{"lrclib", "netease"}) {
		t.Errorf("Providers = %v", cfg.Providers.Order)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.Mode != "debug" {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Sentry.DSN != "https://key@example.com/1" || cfg.Sentry.Environment != "staging" {
		t.Errorf("Sentry = %+v", cfg.Sentry)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[app]
fallback = false

[lrclib]
timeout = "3s"
`)
	t.Setenv("LYRICS_FALLBACK", "true")
	t.Setenv("LYRICS_TIMEOUT", "5s")
	t.Setenv("LYRICS_PROVIDERS", " lrclib-search , ,netease ")
	t.Setenv("LYRICS_INSECURE_TLS", "1")
	t.Setenv("REDIS_DB", "4")
	t.Setenv("PORT", "3001")
	t.Setenv("SENTRY_DSN", "https://key@example.com/2")

	cfg := Load(path)

	if !cfg.App.Fallback {
		t.Error("LYRICS_FALLBACK should override the file")
	}
	if cfg.LRCLib.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.LRCLib.Timeout)
	}
	if !reflect.DeepEqual(cfg.Providers.Order, []string{"lrclib-search", "netease"}) {
		t.Errorf("Providers = %v", cfg.Providers.Order)
	}
	if !cfg.LRCLib.InsecureSkipVerify {
		t.Error("LYRICS_INSECURE_TLS=1 should disable verification")
	}
	if cfg.Redis.DB != 4 {
		t.Errorf("Redis.DB = %d", cfg.Redis.DB)
	}
	if cfg.Server.Addr != ":3001" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.Sentry.DSN != "https://key@example.com/2" {
		t.Errorf("Sentry.DSN = %q", cfg.Sentry.DSN)
	}
}

func TestLoadServerAddrPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3001")
	t.Setenv("LYRICS_SERVER_ADDR", "127.0.0.1:7000")

	cfg := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadInvalidValuesKeepDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[lrclib]
timeout = "soon"
`)
	t.Setenv("LYRICS_CACHE_TTL", "-1h")
	t.Setenv("LYRICS_FALLBACK", "maybe")
	t.Setenv("REDIS_DB", "abc")

	cfg := Load(path)

	if cfg.LRCLib.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.LRCLib.Timeout)
	}
	if cfg.App.CacheTTL != DefaultCacheTTL {
		t.Errorf("CacheTTL = %v", cfg.App.CacheTTL)
	}
	if !cfg.App.Fallback {
		t.Error("invalid LYRICS_FALLBACK should keep the default")
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("Redis.DB = %d", cfg.Redis.DB)
	}
}

func TestLoadBrokenFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "[app\nbroken = ")

	cfg := Load(path)
	if cfg.LRCLib.BaseURL != DefaultLRCLibURL || !cfg.App.Fallback {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestGetConfigPath(t *testing.T) {
	clearEnv(t)

	t.Setenv("LYRICS_CONFIG", "/etc/lyrics.toml")
	if got := getConfigPath(); got != "/etc/lyrics.toml" {
		t.Errorf("getConfigPath() = %q", got)
	}

	t.Setenv("LYRICS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := getConfigPath(); got != filepath.Join("/xdg", "lyrics", "config.toml") {
		t.Errorf("getConfigPath() = %q", got)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList(" a, ,b,"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("splitList = %v", got)
	}
	if got := splitList(" , "); got != nil {
		t.Errorf("splitList of blanks = %v", got)
	}
}
