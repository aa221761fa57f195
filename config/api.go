package config

import (
	"strings"
	"time"
)

// APIConfig contains configuration for the remote DoConnect API.
// The web client owns no data of its own; every question, answer, and
// moderation decision lives behind this API.
type APIConfig struct {
	// BaseURL is the root of the remote API (e.g. "http://localhost:5108/api").
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:5108/api"`

	// Origin is the scheme+host used to resolve relative upload paths
	// (e.g. "/uploads/abc.png") into absolute image URLs. Defaults to the
	// BaseURL host when empty.
	Origin string `env:"ORIGIN"`

	// Timeout bounds every outbound API call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	a.Origin = strings.TrimRight(a.Origin, "/")
	if a.Origin == "" {
		a.Origin = originFromBaseURL(a.BaseURL)
	}
	if a.Timeout <= 0 {
		a.Timeout = 10 * time.Second
	}
}

// originFromBaseURL strips the path from a base URL, leaving scheme+host.
func originFromBaseURL(base string) string {
	idx := strings.Index(base, "://")
	if idx < 0 {
		return base
	}
	rest := base[idx+3:]
	if slash := strings.Index(rest, "/"); slash >= 0 {
		return base[:idx+3] + rest[:slash]
	}
	return base
}
