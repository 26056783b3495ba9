// guide.go implements the "slides-mcp guide" command.
//
// Guides are embedded in the binary. A terminal gets glamour rendering;
// a pipe or redirect gets the raw markdown, which is what an LLM wants when
// the guide is loaded as context.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/guide"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the slides-mcp usage guide",
		Long: `Outputs the slides-mcp guide for LLMs and humans.

  slides-mcp guide                  # main guide
  slides-mcp guide slides_generate  # one tool in detail
  slides-mcp guide config           # configuration reference`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}
			fmt.Fprint(cmd.Out(), render(content))
			return nil
		},
	}
}

// render formats markdown for the terminal, or returns it unchanged when
// stdout is not one.
func render(content string) string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return content
	}
	rendered, err := glamour.Render(content, "dark")
	if err != nil {
		return content
	}
	return rendered
}
