// Package config defines the top-level configuration for the Mak'gora client
// tier and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by MAKGORA_* environment variables.
type Config struct {
	Backend  BackendConfig `toml:"backend"`
	Redis    RedisConfig   `toml:"redis"`
	Session  SessionConfig `toml:"session"`
	Watcher  WatcherConfig `toml:"watcher"`
	Server   ServerConfig  `toml:"server"`
	Notify   NotifyConfig  `toml:"notify"`
	CTL      CTLConfig     `toml:"ctl"`
	Mode     string        `toml:"mode"`
	LogLevel string        `toml:"log_level"`
}

// BackendConfig holds the Mak'gora REST backend endpoint parameters.
type BackendConfig struct {
	BaseURL    string   `toml:"base_url"`
	Timeout    duration `toml:"timeout"`
	RetryCount int      `toml:"retry_count"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	// KeyPrefix namespaces every key and pub/sub channel; leave empty for
	// the default "makgora:".
	KeyPrefix string `toml:"key_prefix"`
}

// SessionConfig controls session persistence.
type SessionConfig struct {
	// TTL is how long an idle session survives; it should match the
	// backend's refresh-token lifetime.
	TTL        duration `toml:"ttl"`
	CookieName string   `toml:"cookie_name"`
	// CookieSecure marks the session cookie Secure; disable for local HTTP.
	CookieSecure bool `toml:"cookie_secure"`
}

// WatcherConfig controls the open-vote refresh loop.
type WatcherConfig struct {
	Enabled  bool     `toml:"enabled"`
	Interval duration `toml:"interval"`
	// MaxVotes caps how many open votes are refreshed per cycle.
	MaxVotes int `toml:"max_votes"`
}

// ServerConfig holds HTTP gateway parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
	// RateLimit is requests per IP per minute; 0 disables limiting.
	RateLimit int `toml:"rate_limit"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// CTLConfig holds settings for the makgoractl terminal client.
type CTLConfig struct {
	// StatePath is where makgoractl keeps its session file. Empty means
	// $HOME/.makgora/session.json.
	StatePath string `toml:"state_path"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:    "http://localhost:8080/api",
			Timeout:    duration{15 * time.Second},
			RetryCount: 0,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
		},
		Session: SessionConfig{
			TTL:          duration{7 * 24 * time.Hour},
			CookieName:   "makgora_session",
			CookieSecure: false,
		},
		Watcher: WatcherConfig{
			Enabled:  true,
			Interval: duration{30 * time.Second},
			MaxVotes: 100,
		},
		Server: ServerConfig{
			Enabled:   true,
			Port:      8090,
			RateLimit: 300,
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("config: backend.base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("config: backend.base_url must be an http(s) URL, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout.Duration <= 0 {
		return fmt.Errorf("config: backend.timeout must be positive")
	}

	switch c.Mode {
	case "serve", "watch", "full":
	default:
		return fmt.Errorf("config: unsupported mode %q (want serve, watch or full)", c.Mode)
	}

	if c.Server.Enabled && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}
	if c.Watcher.Enabled && c.Watcher.Interval.Duration < time.Second {
		return fmt.Errorf("config: watcher.interval must be at least 1s")
	}
	if c.Session.TTL.Duration <= 0 {
		return fmt.Errorf("config: session.ttl must be positive")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}

	return nil
}
