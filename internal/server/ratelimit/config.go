package ratelimit

import (
	"time"

	"github.com/jonathan/profile-card/internal/config"
)

// Rate-limited routes.
const (
	ParsePath = "/api/parse-pdf"
	CardPath  = "/api/generate-card"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the application config.
// Routes without an endpoint entry fall back to DefaultLimit, which is 0
// (unlimited) here.
func FromConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       parseIPList(cfg.Whitelist),
		EndpointConfigs: EndpointConfigs(cfg),
	}
}

// EndpointConfigs returns the per-route limits.
func EndpointConfigs(cfg config.RateLimitConfig) []EndpointConfig {
	return []EndpointConfig{
		// Extraction calls the model and is the expensive route
		{Path: ParsePath, Method: "POST", Limit: cfg.ParsePerMinute, Window: time.Minute},
		{Path: CardPath, Method: "POST", Limit: cfg.CardPerMinute, Window: time.Minute},
	}
}

// parseIPList turns a list of addresses into a lookup set.
func parseIPList(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
