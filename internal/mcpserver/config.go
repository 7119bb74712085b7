package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/outdiff/diffconfig"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result paging.
	EditLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	MaxFetchSize    int64
	AllowPrivateIPs bool

	// DiffOptions are the base diff options every tool call starts from,
	// read from the same OUTDIFF_* variables the CLI honours.
	DiffOptions []diffconfig.Option
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OUTDIFF_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OUTDIFF_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OUTDIFF_MCP_CACHE_MAX_SIZE", 16),
		CacheFileTTL:       envDuration("OUTDIFF_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OUTDIFF_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OUTDIFF_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OUTDIFF_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		EditLimit:          envInt("OUTDIFF_MCP_EDIT_LIMIT", 100),
		MaxLimit:           envInt("OUTDIFF_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OUTDIFF_MCP_MAX_INLINE_SIZE", 10*1024*1024)),
		MaxFetchSize:       int64(envInt("OUTDIFF_MCP_MAX_FETCH_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("OUTDIFF_MCP_ALLOW_PRIVATE_IPS", false),
		DiffOptions:        envDiffOptions(),
	}
}

// envDiffOptions loads OUTDIFF_WHITESPACE_MODE and friends. A bad value
// discards the whole set so that a half-applied configuration never leaks
// into results.
func envDiffOptions() []diffconfig.Option {
	f, err := diffconfig.FromEnv(os.LookupEnv)
	if err != nil {
		slog.Warn("invalid diff option env var, using defaults", "error", err)
		return nil
	}
	opts := f.Options()
	if _, err := diffconfig.New(opts...); err != nil {
		slog.Warn("invalid diff option env var, using defaults", "error", err)
		return nil
	}
	return opts
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
