package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLRCLibURL    = "https://lrclib.net/api"
	DefaultUserAgent    = "SpotifyKaraoke/1.0"
	DefaultTimeout      = 10 * time.Second
	DefaultCacheTTL     = 7 * 24 * time.Hour
	DefaultServerAddr   = ":8080"
	DefaultCacheBackend = "none"
)

func getDefaultCacheDir() string {
	// 优先使用 XDG_CACHE_HOME 环境变量
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "lyrics")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "lyrics_cache"
	}

	return filepath.Join(homeDir, ".cache", "lyrics")
}

// TomlConfig TOML配置文件结构
type TomlConfig struct {
	App struct {
		CacheBackend string `toml:"cache_backend"`
		CacheDir     string `toml:"cache_dir"`
		CacheTTL     string `toml:"cache_ttl"`
		Fallback     *bool  `toml:"fallback"`
		LogLevel     string `toml:"log_level"`
	} `toml:"app"`

	LRCLib struct {
		BaseURL            string `toml:"base_url"`
		UserAgent          string `toml:"user_agent"`
		Timeout            string `toml:"timeout"`
		InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	} `toml:"lrclib"`

	Providers struct {
		Order []string `toml:"order"`
	} `toml:"providers"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`

	Server struct {
		Addr string `toml:"addr"`
		Mode string `toml:"mode"`
	} `toml:"server"`

	Sentry struct {
		DSN         string `toml:"dsn"`
		Environment string `toml:"environment"`
	} `toml:"sentry"`
}

// AppConfig 应用配置
type AppConfig struct {
	CacheBackend string
	CacheDir     string
	CacheTTL     time.Duration
	Fallback     bool
	LogLevel     string
}

// LRCLibConfig 歌词接口配置
type LRCLibConfig struct {
	BaseURL            string
	UserAgent          string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// ProvidersConfig 提供商按顺序尝试
type ProvidersConfig struct {
	Order []string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ServerConfig HTTP 模式配置
type ServerConfig struct {
	Addr string
	Mode string
}

// SentryConfig DSN 为空时不启用
type SentryConfig struct {
	DSN         string
	Environment string
}

// Config 主配置结构
type Config struct {
	App       AppConfig
	LRCLib    LRCLibConfig
	Providers ProvidersConfig
	Redis     RedisConfig
	Server    ServerConfig
	Sentry    SentryConfig
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		App: AppConfig{
			CacheBackend: DefaultCacheBackend,
			CacheDir:     getDefaultCacheDir(),
			CacheTTL:     DefaultCacheTTL,
			Fallback:     true,
			LogLevel:     "info",
		},
		LRCLib: LRCLibConfig{
			BaseURL:   DefaultLRCLibURL,
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultTimeout,
		},
		Providers: ProvidersConfig{
			Order: []string{"lrclib"},
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			Mode: "release",
		},
	}
}

// getConfigPath 获取配置文件路径
func getConfigPath() string {
	if p := os.Getenv("LYRICS_CONFIG"); p != "" {
		return p
	}

	// 优先使用 XDG_CONFIG_HOME 环境变量
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lyrics", "config.toml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot get user home directory")
		return "config.toml"
	}

	return filepath.Join(homeDir, ".config", "lyrics", "config.toml")
}

// loadTomlConfig 加载TOML配置文件，文件不存在时返回空配置
func loadTomlConfig(configPath string) (*TomlConfig, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Debug().Str("path", configPath).Msg("Config file not found, using defaults")
		return &TomlConfig{}, nil
	}

	var config TomlConfig
	if _, err := toml.DecodeFile(configPath, &config); err != nil {
		return nil, err
	}

	log.Debug().Str("path", configPath).Msg("Loaded config")
	return &config, nil
}

// Load 读取配置：默认值 → TOML 文件 → .env 与环境变量。path 为空时使用默认路径
func Load(path string) *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	if path == "" {
		path = getConfigPath()
	}

	tomlConfig, err := loadTomlConfig(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to load config file, using default configuration")
		tomlConfig = &TomlConfig{}
	}

	config := Default()
	config.applyToml(tomlConfig)
	config.applyEnv()
	return config
}

func (c *Config) applyToml(t *TomlConfig) {
	if t.App.CacheBackend != "" {
		c.App.CacheBackend = t.App.CacheBackend
	}
	if t.App.CacheDir != "" {
		c.App.CacheDir = t.App.CacheDir
	}
	if t.App.CacheTTL != "" {
		c.App.CacheTTL = parseDuration("app.cache_ttl", t.App.CacheTTL, c.App.CacheTTL)
	}
	if t.App.Fallback != nil {
		c.App.Fallback = *t.App.Fallback
	}
	if t.App.LogLevel != "" {
		c.App.LogLevel = t.App.LogLevel
	}

	if t.LRCLib.BaseURL != "" {
		c.LRCLib.BaseURL = t.LRCLib.BaseURL
	}
	if t.LRCLib.UserAgent != "" {
		c.LRCLib.UserAgent = t.LRCLib.UserAgent
	}
	if t.LRCLib.Timeout != "" {
		c.LRCLib.Timeout = parseDuration("lrclib.timeout", t.LRCLib.Timeout, c.LRCLib.Timeout)
	}
	if t.LRCLib.InsecureSkipVerify {
		c.LRCLib.InsecureSkipVerify = true
	}

	if len(t.Providers.Order) > 0 {
		c.Providers.Order = t.Providers.Order
	}

	if t.Redis.Addr != "" {
		c.Redis.Addr = t.Redis.Addr
	}
	if t.Redis.Password != "" {
		c.Redis.Password = t.Redis.Password
	}
	if t.Redis.DB != 0 {
		c.Redis.DB = t.Redis.DB
	}

	if t.Server.Addr != "" {
		c.Server.Addr = t.Server.Addr
	}
	if t.Server.Mode != "" {
		c.Server.Mode = t.Server.Mode
	}

	if t.Sentry.DSN != "" {
		c.Sentry.DSN = t.Sentry.DSN
	}
	if t.Sentry.Environment != "" {
		c.Sentry.Environment = t.Sentry.Environment
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LYRICS_CACHE_BACKEND"); v != "" {
		c.App.CacheBackend = v
	}
	if v := os.Getenv("LYRICS_CACHE_DIR"); v != "" {
		c.App.CacheDir = v
	}
	if v := os.Getenv("LYRICS_CACHE_TTL"); v != "" {
		c.App.CacheTTL = parseDuration("LYRICS_CACHE_TTL", v, c.App.CacheTTL)
	}
	if v := os.Getenv("LYRICS_FALLBACK"); v != "" {
		c.App.Fallback = parseBool("LYRICS_FALLBACK", v, c.App.Fallback)
	}
	if v := os.Getenv("LYRICS_LOG_LEVEL"); v != "" {
		c.App.LogLevel = v
	}

	if v := os.Getenv("LYRICS_LRCLIB_URL"); v != "" {
		c.LRCLib.BaseURL = v
	}
	if v := os.Getenv("LYRICS_USER_AGENT"); v != "" {
		c.LRCLib.UserAgent = v
	}
	if v := os.Getenv("LYRICS_TIMEOUT"); v != "" {
		c.LRCLib.Timeout = parseDuration("LYRICS_TIMEOUT", v, c.LRCLib.Timeout)
	}
	if v := os.Getenv("LYRICS_INSECURE_TLS"); v != "" {
		c.LRCLib.InsecureSkipVerify = parseBool("LYRICS_INSECURE_TLS", v, c.LRCLib.InsecureSkipVerify)
	}

	if v := os.Getenv("LYRICS_PROVIDERS"); v != "" {
		if order := splitList(v); len(order) > 0 {
			c.Providers.Order = order
		}
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			c.Redis.DB = db
		} else {
			log.Warn().Str("value", v).Msg("Invalid REDIS_DB, using default")
		}
	}

	if v := os.Getenv("LYRICS_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.Mode = v
	}

	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.Sentry.DSN = v
	}
	if v := os.Getenv("SENTRY_ENVIRONMENT"); v != "" {
		c.Sentry.Environment = v
	}
}

func parseDuration(name, value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Warn().Str("key", name).Str("value", value).Msg("Invalid duration format, using default")
		return def
	}
	return d
}

func parseBool(name, value string, def bool) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn().Str("key", name).Str("value", value).Msg("Invalid boolean, using default")
		return def
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
