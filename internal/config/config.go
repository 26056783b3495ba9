// Package config provides reading and writing of slides-mcp configuration.
// Supports both global (~/.slides-mcp/config.yaml) and local
// (.slides-mcp/config.yaml). Reading: uses local if it exists, otherwise
// global. Writing: defaults to global, use --local for local.
//
// The API key is normally supplied through the 2SLIDES_API_KEY environment
// variable, which always wins over api.key in a config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// APIKeyEnv is the environment variable holding the 2slides bearer token.
const APIKeyEnv = "2SLIDES_API_KEY"

// DefaultBaseURL is the 2slides API origin.
const DefaultBaseURL = "https://2slides.com"

// DefaultLogLevel is used when log.level is not configured.
const DefaultLogLevel = "info"

// Validation bounds for configuration values.
const (
	MinTimeout = 0    // seconds; 0 disables the client timeout
	MaxTimeout = 3600 // one hour is far beyond any sane generation call
)

// MaskedSecretValue replaces the API key in user-facing output.
const MaskedSecretValue = "**********"

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.slides-mcp/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .slides-mcp/config.yaml
	ScopeLocal
)

// API holds settings for the remote 2slides API.
type API struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Key     string `yaml:"key,omitempty"`
	Timeout *int   `yaml:"timeout,omitempty"`
}

// Log holds logging options.
type Log struct {
	Level string `yaml:"level,omitempty"`
	Audit *bool  `yaml:"audit,omitempty"`
}

// Telemetry holds OpenTelemetry export options.
type Telemetry struct {
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Config contains configuration for slides-mcp.
type Config struct {
	API       API       `yaml:"api,omitempty"`
	Log       Log       `yaml:"log,omitempty"`
	Telemetry Telemetry `yaml:"telemetry,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.API.BaseURL != "" {
		if err := validateBaseURL(c.API.BaseURL); err != nil {
			return err
		}
	}
	if c.API.Timeout != nil {
		v := *c.API.Timeout
		if v < MinTimeout || v > MaxTimeout {
			return fmt.Errorf("%w: api.timeout must be between %d and %d, got %d",
				ErrInvalidValue, MinTimeout, MaxTimeout, v)
		}
	}
	if c.Log.Level != "" {
		if _, err := parseLevel(c.Log.Level); err != nil {
			return err
		}
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: api.base_url must be an absolute http(s) URL, got %q", ErrInvalidValue, raw)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log.level must be debug, info, warn or error, got %q", ErrInvalidValue, s)
	}
}

// BaseURL returns the API origin without a trailing slash.
func (c *Config) BaseURL() string {
	if c.API.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.API.BaseURL, "/")
}

// APIKey returns the bearer token: the environment first, then api.key.
func (c *Config) APIKey() string {
	if v := os.Getenv(APIKeyEnv); v != "" {
		return v
	}
	return c.API.Key
}

// Timeout returns the HTTP client timeout. Zero means no timeout.
func (c *Config) Timeout() time.Duration {
	if c.API.Timeout == nil {
		return 0
	}
	return time.Duration(*c.API.Timeout) * time.Second
}

// LogLevel returns the configured slog level (defaults to info).
func (c *Config) LogLevel() slog.Level {
	if c.Log.Level == "" {
		return slog.LevelInfo
	}
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Audit returns whether the SQLite audit log is enabled (defaults to false).
func (c *Config) Audit() bool {
	if c.Log.Audit == nil {
		return false
	}
	return *c.Log.Audit
}

// TelemetryEndpoint returns the OTLP/HTTP endpoint, or "" when disabled.
func (c *Config) TelemetryEndpoint() string {
	return c.Telemetry.Endpoint
}

// LocalPath returns the path to the local config file.
func LocalPath() string {
	return filepath.Join(".slides-mcp", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.slides-mcp/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".slides-mcp", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// The file may hold an API key, so it is written 0600.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
