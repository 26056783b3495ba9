/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Extensions register during init() but are not initialised until a command
// runs. The config is loaded once per run and the resulting client is shared
// by every extension through the Context.

package cmd

import (
	"fmt"
	"os"

	"github.com/jpl-au/slides-mcp/extension"
	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/spf13/cobra"
)

// noClientCommands lists commands that run without loading config.
// config must work even when the file it edits fails validation.
var noClientCommands = map[string]bool{
	"config":  true,
	"guide":   true,
	"version": true,
	"help":    true,
}

var extContext extension.Context

// initExtensions loads config, opens the audit log when enabled, and
// injects the shared context into all Initializable extensions.
func initExtensions() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Audit() {
		if err := log.Open(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		} else if wd, err := os.Getwd(); err == nil {
			log.SetProject(wd)
		}
	}

	extContext = extension.NewContext(slides.FromConfig(cfg), cfg)
	for _, ext := range extension.All() {
		if init, ok := ext.(extension.Initializable); ok {
			if err := init.Init(extContext); err != nil {
				return fmt.Errorf("init extension %s: %w", ext.Name(), err)
			}
		}
	}
	return nil
}

// registerExtensions adds commands from all registered extensions to root.
func registerExtensions(root *cobra.Command) {
	for _, ext := range extension.All() {
		root.AddCommand(ext.Commands()...)
	}
}
