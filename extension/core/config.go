// config.go implements the "slides-mcp config" command.
//
// Config cascades like git: local (.slides-mcp/config.yaml) wins over global
// (~/.slides-mcp/config.yaml). Writes go back to the file that was read;
// --local forces the local file even before it exists.

package core

import (
	"fmt"

	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/extension"
	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  slides-mcp config                     # show config
  slides-mcp config api.timeout         # show one value
  slides-mcp config api.timeout 120     # set a value

Keys: ` + fmt.Sprint(config.ValidKeys()) + `

Configuration locations:
  Global: ~/.slides-mcp/config.yaml
  Local:  .slides-mcp/config.yaml

Uses local config if it exists, otherwise global.
The ` + config.APIKeyEnv + ` environment variable overrides api.key.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.slides-mcp/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		if cmd.JSON() {
			return cmd.PrintJSON(cfg.All())
		}
		all := cfg.All()
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}
		if err := cfg.Save(); err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", err))
		}
		// api.key is echoed masked
		shown, _ := cfg.Get(args[0])
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": shown, "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], shown, scopeName)
	}
	return nil
}
