// Package config loads kmapmcp configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/NERVsystems/kmapmcp/pkg/kakao"
	"github.com/NERVsystems/kmapmcp/pkg/tools"
)

const (
	// AppName names the config file and the env prefix
	AppName = "kmapmcp"

	// EnvPrefix prefixes environment overrides, e.g. KMAPMCP_UPSTREAM_BASE_URL
	EnvPrefix = "KMAPMCP"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Tools    ToolsConfig    `mapstructure:"tools"`
	Log      LogConfig      `mapstructure:"log"`
}

// UpstreamConfig describes the local map service.
type UpstreamConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	RateLimit float64       `mapstructure:"rate_limit"` // requests per second, 0 disables
	RateBurst int           `mapstructure:"rate_burst"`
}

// ToolsConfig tunes tool defaults.
type ToolsConfig struct {
	DefaultRadius int `mapstructure:"default_radius"` // meters, category search
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// ClientOptions returns the upstream client options.
func (c *Config) ClientOptions() kakao.Options {
	return kakao.Options{
		BaseURL:   c.Upstream.BaseURL,
		Timeout:   c.Upstream.Timeout,
		UserAgent: c.Upstream.UserAgent,
		RateLimit: c.Upstream.RateLimit,
		RateBurst: c.Upstream.RateBurst,
	}
}

// CatalogOptions returns the tool catalog options.
func (c *Config) CatalogOptions() tools.CatalogOptions {
	return tools.CatalogOptions{DefaultRadius: c.Tools.DefaultRadius}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("upstream.base_url %q is not an http(s) URL", c.Upstream.BaseURL)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream.timeout must be positive, got %s", c.Upstream.Timeout)
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("upstream.rate_limit must not be negative, got %v", c.Upstream.RateLimit)
	}
	if c.Tools.DefaultRadius < 0 || c.Tools.DefaultRadius > tools.MaxRadius {
		return fmt.Errorf("tools.default_radius must be between 0 and %d, got %d", tools.MaxRadius, c.Tools.DefaultRadius)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("upstream.base_url", kakao.DefaultBaseURL)
	v.SetDefault("upstream.timeout", kakao.DefaultTimeout)
	v.SetDefault("upstream.user_agent", kakao.DefaultUserAgent)
	v.SetDefault("upstream.rate_limit", kakao.DefaultRateLimit)
	v.SetDefault("upstream.rate_burst", kakao.DefaultRateBurst)

	v.SetDefault("tools.default_radius", tools.DefaultRadius)

	v.SetDefault("log.level", "info")
}

// Load reads configuration from configPath, or from kmapmcp.yaml in the
// working directory or the user config directory, then applies KMAPMCP_*
// environment overrides. A missing default config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
