// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by the config command, where settings are addressed by
// dotted keys (e.g., "api.timeout").
//
// Pointers are used for optional fields so "not set" (nil) is distinct from
// "explicitly set to zero/false".

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jpl-au/slides-mcp/internal/duration"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"api.base_url", "api.key", "api.timeout",
		"log.level", "log.audit",
		"telemetry.endpoint",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
// The API key is never returned in clear text.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api.base_url":
		return c.BaseURL(), nil
	case "api.key":
		return mask(c.APIKey()), nil
	case "api.timeout":
		return strconv.Itoa(int(c.Timeout().Seconds())), nil
	case "log.level":
		if c.Log.Level == "" {
			return DefaultLogLevel, nil
		}
		return strings.ToLower(c.Log.Level), nil
	case "log.audit":
		return strconv.FormatBool(c.Audit()), nil
	case "telemetry.endpoint":
		return c.TelemetryEndpoint(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "api.base_url":
		if err := validateBaseURL(value); err != nil {
			return err
		}
		c.API.BaseURL = value
	case "api.key":
		c.API.Key = value
	case "api.timeout":
		n, err := duration.Seconds(value)
		if err != nil || n < MinTimeout || n > MaxTimeout {
			return fmt.Errorf("%w: api.timeout must be between %d and %d seconds (e.g. 120, 90s, 2m)", ErrInvalidValue, MinTimeout, MaxTimeout)
		}
		c.API.Timeout = &n
	case "log.level":
		if _, err := parseLevel(value); err != nil {
			return err
		}
		c.Log.Level = strings.ToLower(value)
	case "log.audit":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: log.audit must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Log.Audit = &b
	case "telemetry.endpoint":
		c.Telemetry.Endpoint = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map, with the API key masked.
func (c *Config) All() map[string]string {
	all := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		all[k] = v
	}
	return all
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "api.base_url":
		return c.API.BaseURL != ""
	case "api.key":
		return c.API.Key != ""
	case "api.timeout":
		return c.API.Timeout != nil
	case "log.level":
		return c.Log.Level != ""
	case "log.audit":
		return c.Log.Audit != nil
	case "telemetry.endpoint":
		return c.Telemetry.Endpoint != ""
	default:
		return false
	}
}

// mask hides a secret while still showing whether one is configured.
func mask(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return ""
	}
	return MaskedSecretValue
}
