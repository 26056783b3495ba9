// context.go defines the Context interface for extension access to shared
// resources.
//
// Extensions receive Context during Init(), not at construction, because
// they register before config has been loaded.

package extension

import (
	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/slides"
)

// Context provides extensions controlled access to shared resources.
type Context interface {
	// Client returns the 2slides API client built from the loaded config.
	Client() *slides.Client

	// Config returns the loaded user configuration.
	Config() *config.Config
}

type extContext struct {
	client *slides.Client
	cfg    *config.Config
}

// NewContext creates a new extension context.
func NewContext(client *slides.Client, cfg *config.Config) Context {
	return &extContext{client: client, cfg: cfg}
}

func (c *extContext) Client() *slides.Client { return c.client }

func (c *extContext) Config() *config.Config { return c.cfg }
