package server

import (
	"log/slog"
)

// Endpoint is one advertised API route.
type Endpoint struct {
	Method      string
	Path        string
	Description string
}

// Announce logs the public base URL and the endpoints reachable through it.
// It runs after the listener is bound and is independent of request handling.
func Announce(logger *slog.Logger, publicURL string, endpoints []Endpoint) {
	logger.Info("API publicly accessible", "url", publicURL)
	for _, ep := range endpoints {
		logger.Info("endpoint",
			"method", ep.Method,
			"url", publicURL+ep.Path,
			"description", ep.Description)
	}
}
