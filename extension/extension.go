// Package extension provides the plugin architecture for slides-mcp CLI
// commands. Extensions group related commands and register at init time,
// so new command sets can be added without touching the root command.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for slides-mcp extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions receive the shared Context before any of their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}
