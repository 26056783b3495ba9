/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE loads .env and the config, then hands extensions a
// shared API client. Commands listed in noClientCommands skip that step so
// they keep working when the config file itself is broken.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/spf13/cobra"
)

// serveCmdName is the subcommand run when none is given, so MCP clients
// can launch the bare binary.
const serveCmdName = "serve"

var rootCmd *cobra.Command

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "slides-mcp",
		Short: "MCP server for the 2slides presentation API",
		Long: `An MCP (Model Context Protocol) server that exposes 2slides as three tools:
slides_generate, jobs_get and themes_search.

Run without a subcommand to serve over stdio. Set ` + config.APIKeyEnv + ` (or api.key)
to authenticate.`,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, _ []string) error {
			serve, _, err := c.Find([]string{serveCmdName})
			if err != nil || serve == c || serve.RunE == nil {
				return c.Help()
			}
			serve.SetContext(c.Context())
			return serve.RunE(serve, nil)
		},
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			if output != "" && !slices.Contains(validOutputFormats, output) {
				return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
			}

			if err := config.LoadEnv(EnvFile()); err != nil {
				return PrintJSONError(err)
			}

			if noClientCommands[topLevelCmdName(c)] {
				return nil
			}
			if err := initExtensions(); err != nil {
				if JSON() {
					_ = PrintJSON(map[string]string{"error": err.Error()})
					c.SilenceErrors = true
				}
				return fmt.Errorf("initialise extensions: %w", err)
			}
			return nil
		},
	}
	bindFlags(root)
	return root
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "slides-mcp config api.key", returns "config".
func topLevelCmdName(c *cobra.Command) string {
	for c.HasParent() && c.Parent().HasParent() {
		c = c.Parent()
	}
	return c.Name()
}

// Run builds a fresh command tree and executes it with args.
// Each call starts from default flag values.
func Run(args ...string) error {
	rootCmd = newRootCmd()
	registerExtensions(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

// Execute runs the CLI with os.Args and exits 1 on error.
// The audit log, when enabled, is opened during initialisation and closed
// here before exit.
func Execute() {
	err := Run(os.Args[1:]...)
	log.Close()
	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command built by the last Run.
func RootCmd() *cobra.Command {
	return rootCmd
}
