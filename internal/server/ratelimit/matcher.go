package ratelimit

import "strings"

// HealthPath is never rate limited.
const HealthPath = "/health"

// MatchEndpoint returns the configuration that governs method and path: an
// exact entry if one exists, otherwise the longest entry whose path ends in
// "/" and prefixes path. It returns nil when nothing matches, and an empty
// (unlimited) configuration for the health check.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == HealthPath {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) &&
			(prefix == nil || len(c.Path) > len(prefix.Path)) {
			prefix = c
		}
	}
	return prefix
}
