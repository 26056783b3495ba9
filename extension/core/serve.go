// serve.go implements the "slides-mcp serve" command.
//
// Unlike other commands that run and exit, serve blocks handling MCP
// requests over stdio until the client disconnects.

package core

import (
	"context"
	"errors"

	"github.com/jpl-au/slides-mcp/internal/mcp"
	"github.com/spf13/cobra"
)

func (e *Extension) newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

This is also what runs when slides-mcp is started without a subcommand,
which is how most MCP clients launch it:

  {"command": "slides-mcp", "env": {"2SLIDES_API_KEY": "..."}}

Logs go to stderr; stdout carries only JSON-RPC.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if e.ctx == nil {
				return errors.New("serve: extension not initialised")
			}
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return mcp.Serve(ctx, e.ctx.Config())
		},
	}
}
