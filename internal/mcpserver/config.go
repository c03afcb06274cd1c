package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/apispec/query"
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

	// Extraction defaults.
	DefaultDialect string
	ToolMode       bool

	// list_paths defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from APISPEC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("APISPEC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("APISPEC_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("APISPEC_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("APISPEC_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("APISPEC_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("APISPEC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		DefaultDialect:     envDialect("APISPEC_DEFAULT_DIALECT"),
		ToolMode:           envBool("APISPEC_TOOL_MODE", false),
		ListLimit:          envInt("APISPEC_LIST_LIMIT", 100),
		MaxLimit:           envInt("APISPEC_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("APISPEC_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("APISPEC_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
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
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
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
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// envDialect returns a registered query dialect name, or the default.
func envDialect(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return query.DefaultDialect
	}
	if _, err := query.Get(v); err != nil {
		slog.Warn("unknown query dialect env var, using default", "key", key, "value", v, "default", query.DefaultDialect)
		return query.DefaultDialect
	}
	return strings.ToLower(v)
}
