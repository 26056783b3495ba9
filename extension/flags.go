// flags.go defines constants for all CLI flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag.

package extension

// Flag name constants for CLI commands.
const (
	// Boolean flags

	FlagLocal = "local" // Use local scope config

	// String flags

	FlagLanguage = "language" // Response language for generation
	FlagMode     = "mode"     // Generation mode (sync, async)
	FlagTheme    = "theme"    // Theme id for generation

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
