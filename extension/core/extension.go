// Package core provides the core extension for slides-mcp.
// It registers commands: serve, config, guide, version.
package core

import (
	"github.com/jpl-au/slides-mcp/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Init stores the shared context for serve.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the server and housekeeping commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newServeCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}
