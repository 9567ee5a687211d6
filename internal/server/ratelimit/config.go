package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig sets the limit for one endpoint. Path is matched exactly, or
// as a prefix when it ends in "/". Burst defaults to Limit when zero.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads rate limiting settings from RATE_LIMIT_* environment
// variables, falling back to defaults for anything unset or unparseable.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       splitClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       splitClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns per-endpoint limits tiered by cost. Pipeline
// runs and LLM form filling are the most expensive, writes are moderate, and
// exports read every candidate row. Reads fall back to the default limit and
// health checks are never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/candidates", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/candidates/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/candidates/", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		{Path: "/candidates/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},

		{Path: "/export/", Method: "GET", Limit: 20, Window: time.Minute, Burst: 5},
	}
}

func envInt(key string, fallback int) int {
	if parsed, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return parsed
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if parsed, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return parsed
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if parsed, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return parsed
	}
	return fallback
}

// splitClientList turns a comma-separated list of client addresses into a
// lookup map. Blank entries are skipped.
func splitClientList(list string) map[string]bool {
	clients := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			clients[entry] = true
		}
	}
	return clients
}
