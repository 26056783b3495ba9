// Package all imports all built-in slides-mcp extensions.
// Import this package to register every command.
package all

import (
	// Each registers itself via init()
	_ "github.com/jpl-au/slides-mcp/extension/api"
	_ "github.com/jpl-au/slides-mcp/extension/core"
)
