package ratelimit

import "strings"

// MatchEndpoint resolves a request path and method to an endpoint
// configuration. Exact path matches win; configured paths ending in "/"
// match as prefixes. The health check is always unlimited. Returns nil
// when nothing matches, which means the caller's default limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if ec.Path == path {
			return ec
		}
		if prefix == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			prefix = ec
		}
	}
	return prefix
}
