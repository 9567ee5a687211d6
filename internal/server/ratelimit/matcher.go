package ratelimit

import "strings"

// MatchEndpoint resolves a request path and method to its endpoint
// configuration. Exact path matches win over prefix matches; a config path
// ending in "/" matches any request underneath it (so "/candidates/" covers
// "/candidates/{id}" and deeper). Health checks are never limited.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			prefixMatch = config
		}
	}
	return prefixMatch
}
