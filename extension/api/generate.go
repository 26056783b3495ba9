package api

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/extension"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/spf13/cobra"
)

func (e *Extension) newGenerateCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "generate [flags] <content...>",
		Short: "Generate slides",
		Long: `Generate a presentation, as the slides_generate tool does.

The remaining arguments are joined into the content. Use "-" to read the
content from stdin.

  slides-mcp generate --theme t1 --language en "Quarterly review"
  cat notes.md | slides-mcp generate --theme t1 --language en --mode async -`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runGenerate,
	}
	c.Flags().String(extension.FlagTheme, "", "Theme id (see 'slides-mcp themes')")
	c.Flags().String(extension.FlagLanguage, "", "Response language (e.g., en, fr, ja)")
	c.Flags().String(extension.FlagMode, slides.ModeSync, "Generation mode: sync or async")
	return c
}

func (e *Extension) runGenerate(c *cobra.Command, args []string) error {
	theme, _ := c.Flags().GetString(extension.FlagTheme)
	language, _ := c.Flags().GetString(extension.FlagLanguage)
	mode, _ := c.Flags().GetString(extension.FlagMode)

	input := strings.Join(args, " ")
	if input == "-" {
		data, err := io.ReadAll(c.InOrStdin())
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("read stdin: %w", err))
		}
		input = strings.TrimSpace(string(data))
	}

	req := slides.GenerateRequest{
		ThemeID:          theme,
		UserInput:        input,
		ResponseLanguage: language,
		Mode:             &mode,
	}
	resp, err := e.call(c.Context(), "generate", "generate",
		func(ctx context.Context, client *slides.Client) (*slides.Response, error) {
			return client.Generate(ctx, req)
		},
		func(b *log.Builder) {
			b.Detail("theme_id", theme).Detail("mode", mode)
		})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("generate: %w", err))
	}
	return printResponse(resp)
}
