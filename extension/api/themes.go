package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/extension"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/spf13/cobra"
)

func (e *Extension) newThemesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "themes [flags] <query...>",
		Short: "Search themes",
		Long: `Search the theme catalogue, as the themes_search tool does.

  slides-mcp themes business
  slides-mcp themes --limit 5 minimal dark`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runThemes,
	}
	c.Flags().Int(extension.FlagLimit, 0, "Maximum results (1-100; omit for the remote default)")
	return c
}

func (e *Extension) runThemes(c *cobra.Command, args []string) error {
	req := slides.ThemeSearchRequest{Query: strings.Join(args, " ")}
	if c.Flags().Changed(extension.FlagLimit) {
		limit, _ := c.Flags().GetInt(extension.FlagLimit)
		req.Limit = &limit
	}

	resp, err := e.call(c.Context(), "themes", "search",
		func(ctx context.Context, client *slides.Client) (*slides.Response, error) {
			return client.SearchThemes(ctx, req)
		},
		func(b *log.Builder) {
			b.Detail("query", req.Query)
			if req.Limit != nil {
				b.Detail("limit", *req.Limit)
			}
		})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("themes: %w", err))
	}
	return printResponse(resp)
}
