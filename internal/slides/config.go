package slides

import (
	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/version"
)

// FromConfig builds a client for the configured origin, key and timeout.
func FromConfig(cfg *config.Config) *Client {
	return New(cfg.BaseURL(), cfg.APIKey(),
		WithTimeout(cfg.Timeout()),
		WithUserAgent(version.UserAgent()),
	)
}
