package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
mode = "serve"
log_level = "debug"

[backend]
base_url = "https://api.makgora.example/api"
timeout = "20s"

[session]
ttl = "48h"
cookie_name = "mk_sess"

[watcher]
interval = "10s"
max_votes = 25

[server]
port = 9000
cors_origins = ["https://makgora.example"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "serve", cfg.Mode)
	assert.Equal(t, "https://api.makgora.example/api", cfg.Backend.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Backend.Timeout.Duration)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL.Duration)
	assert.Equal(t, "mk_sess", cfg.Session.CookieName)
	assert.Equal(t, 10*time.Second, cfg.Watcher.Interval.Duration)
	assert.Equal(t, 25, cfg.Watcher.MaxVotes)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://makgora.example"}, cfg.Server.CORSOrigins)

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Server.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[backend]
base_url = "http://from-file:8080/api"
`)

	t.Setenv("MAKGORA_BACKEND_BASE_URL", "http://from-env:8080/api")
	t.Setenv("MAKGORA_REDIS_PASSWORD", "hunter2")
	t.Setenv("MAKGORA_SERVER_PORT", "7777")
	t.Setenv("MAKGORA_WATCHER_INTERVAL", "45s")
	t.Setenv("MAKGORA_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8080/api", cfg.Backend.BaseURL)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Watcher.Interval.Duration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"non-http base url", func(c *Config) { c.Backend.BaseURL = "ftp://example" }},
		{"zero timeout", func(c *Config) { c.Backend.Timeout.Duration = 0 }},
		{"unknown mode", func(c *Config) { c.Mode = "battle" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"sub-second watcher interval", func(c *Config) { c.Watcher.Interval.Duration = 100 * time.Millisecond }},
		{"zero session ttl", func(c *Config) { c.Session.TTL.Duration = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestRedactedConfigMasksSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.Redis.Password = "hunter2"
	cfg.Notify.TelegramToken = "123:abc"
	cfg.Notify.DiscordWebhookURL = "https://discord.example/webhook"

	red := RedactedConfig(&cfg)

	assert.Equal(t, "***", red.Redis.Password)
	assert.Equal(t, "***", red.Notify.TelegramToken)
	assert.Equal(t, "***", red.Notify.DiscordWebhookURL)

	// The original stays intact.
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}
