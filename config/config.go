package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3000

	// Mode is the gin mode: "debug", "release", "test"; default: "release".
	Mode string

	// Environment is reported by /health and /version.
	// default: "development"
	Environment string
}

// ExtractorConfig controls the metadata extraction pipeline.
type ExtractorConfig struct {
	// Timeout bounds the page fetch per extraction.
	Timeout time.Duration // default: 15s

	// UserAgent is the browser-like UA sent on page fetches.
	// Empty means the extractor's built-in Chrome string.
	UserAgent string

	// MaxBodyBytes caps how much of a fetched page is read.
	MaxBodyBytes int64 // default: 10 MB
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-identity rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per identity. The default
	// expresses the historical 10-requests-per-minute budget.
	RequestsPerSecond float64 // default: 0.167

	// Burst is the maximum burst size per identity.
	Burst int // default: 10
}

// CacheConfig controls the extraction response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached records.
	MaxEntries int // default: 1000
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        envOr("PREVIEW_HOST", "0.0.0.0"),
			Port:        envIntOr("PREVIEW_PORT", 3000),
			Mode:        envOr("PREVIEW_MODE", "release"),
			Environment: envOr("PREVIEW_ENV", "development"),
		},
		Extractor: ExtractorConfig{
			Timeout:      envDurationOr("PREVIEW_FETCH_TIMEOUT", 15*time.Second),
			UserAgent:    os.Getenv("PREVIEW_USER_AGENT"),
			MaxBodyBytes: int64(envIntOr("PREVIEW_MAX_BODY_BYTES", 10<<20)),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("PREVIEW_AUTH_ENABLED", false),
			APIKeys: envSliceOr("PREVIEW_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("PREVIEW_RATE_RPS", 10.0/60.0),
			Burst:             envIntOr("PREVIEW_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("PREVIEW_CACHE_MAX_ENTRIES", 1000),
		},
		Log: LogConfig{
			Level:  envOr("PREVIEW_LOG_LEVEL", "info"),
			Format: envOr("PREVIEW_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
