package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit applied to one path+method. A path
// ending in "/" matches as a prefix. Burst defaults to Limit when zero.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_*
// environment variables, falling back to sensible defaults.
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

// DefaultEndpointConfigs returns the per-endpoint limits. Campaign
// creation provisions Google resources and sync downloads every new
// resume, so both get the strictest tier. Schedule and outcomes send
// real email. Reads fall through to the default limit and the health
// check is unlimited in the matcher.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/campaigns", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/campaigns/sync", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/jd", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/campaigns/schedule", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/campaigns/outcomes", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
	}
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// splitClientList parses a comma-separated list of client IPs.
func splitClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
