package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MAKGORA_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MAKGORA_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Backend ──
	setStr(&cfg.Backend.BaseURL, "MAKGORA_BACKEND_BASE_URL")
	setDuration(&cfg.Backend.Timeout, "MAKGORA_BACKEND_TIMEOUT")
	setInt(&cfg.Backend.RetryCount, "MAKGORA_BACKEND_RETRY_COUNT")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "MAKGORA_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MAKGORA_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MAKGORA_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MAKGORA_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MAKGORA_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MAKGORA_REDIS_TLS_ENABLED")
	setStr(&cfg.Redis.KeyPrefix, "MAKGORA_REDIS_KEY_PREFIX")

	// ── Session ──
	setDuration(&cfg.Session.TTL, "MAKGORA_SESSION_TTL")
	setStr(&cfg.Session.CookieName, "MAKGORA_SESSION_COOKIE_NAME")
	setBool(&cfg.Session.CookieSecure, "MAKGORA_SESSION_COOKIE_SECURE")

	// ── Watcher ──
	setBool(&cfg.Watcher.Enabled, "MAKGORA_WATCHER_ENABLED")
	setDuration(&cfg.Watcher.Interval, "MAKGORA_WATCHER_INTERVAL")
	setInt(&cfg.Watcher.MaxVotes, "MAKGORA_WATCHER_MAX_VOTES")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "MAKGORA_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "MAKGORA_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "MAKGORA_SERVER_CORS_ORIGINS")
	setInt(&cfg.Server.RateLimit, "MAKGORA_SERVER_RATE_LIMIT")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "MAKGORA_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "MAKGORA_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "MAKGORA_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "MAKGORA_NOTIFY_EVENTS")

	// ── CTL ──
	setStr(&cfg.CTL.StatePath, "MAKGORA_CTL_STATE_PATH")

	// ── Top-level ──
	setStr(&cfg.Mode, "MAKGORA_MODE")
	setStr(&cfg.LogLevel, "MAKGORA_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
