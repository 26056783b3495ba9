package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points both config scopes at a fresh temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(APIKeyEnv, "")
	t.Chdir(dir)
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ScopeGlobal, cfg.Scope())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL())
	assert.Equal(t, time.Duration(0), cfg.Timeout())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.False(t, cfg.Audit())
	assert.Empty(t, cfg.APIKey())
	assert.Empty(t, cfg.TelemetryEndpoint())
}

func TestLoad_LocalWinsOverGlobal(t *testing.T) {
	dir := isolate(t)

	global := filepath.Join(dir, ".slides-mcp", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(global), 0755))
	require.NoError(t, os.WriteFile(global, []byte("api:\n  base_url: https://global.example\n"), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://global.example", cfg.BaseURL())

	sub := filepath.Join(dir, "project")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, ".slides-mcp"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, LocalPath()), []byte("api:\n  base_url: https://local.example/\n"), 0600))
	t.Chdir(sub)

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, cfg.Scope())
	assert.Equal(t, "https://local.example", cfg.BaseURL(), "trailing slash trimmed")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "api: [\n"},
		{"relative base url", "api:\n  base_url: /api\n"},
		{"ftp base url", "api:\n  base_url: ftp://2slides.com\n"},
		{"negative timeout", "api:\n  timeout: -1\n"},
		{"huge timeout", "api:\n  timeout: 99999\n"},
		{"bad level", "log:\n  level: loud\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			require.NoError(t, os.MkdirAll(".slides-mcp", 0755))
			require.NoError(t, os.WriteFile(LocalPath(), []byte(tc.yaml), 0600))

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAPIKey_EnvOverridesConfig(t *testing.T) {
	isolate(t)

	cfg := &Config{API: API{Key: "from-file"}}
	assert.Equal(t, "from-file", cfg.APIKey())

	t.Setenv(APIKeyEnv, "from-env")
	assert.Equal(t, "from-env", cfg.APIKey())
}

func TestSetGet(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"api.base_url", "https://staging.2slides.com", "https://staging.2slides.com"},
		{"api.key", "sk-secret", MaskedSecretValue},
		{"api.timeout", "30", "30"},
		{"api.timeout", "2m", "120"},
		{"log.level", "DEBUG", "debug"},
		{"log.audit", "true", "true"},
		{"telemetry.endpoint", "localhost:4318", "localhost:4318"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			isolate(t)
			cfg := &Config{}

			require.NoError(t, cfg.Set(tc.key, tc.value))
			assert.True(t, cfg.IsSet(tc.key))

			got, err := cfg.Get(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSet_Errors(t *testing.T) {
	cfg := &Config{}

	assert.ErrorIs(t, cfg.Set("api.nope", "x"), ErrUnknownKey)
	assert.ErrorIs(t, cfg.Set("api.timeout", "soon"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("api.timeout", "-5"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("api.base_url", "2slides.com"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("log.audit", "yes"), ErrInvalidValue)
	assert.ErrorIs(t, cfg.Set("log.level", "trace"), ErrInvalidValue)

	_, err := cfg.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestAll_MasksKey(t *testing.T) {
	isolate(t)
	cfg := &Config{API: API{Key: "sk-secret"}}

	all := cfg.All()
	assert.Len(t, all, len(ValidKeys()))
	assert.Equal(t, MaskedSecretValue, all["api.key"])
	for _, v := range all {
		assert.NotContains(t, v, "sk-secret")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolate(t)

	cfg, err := LoadScope(ScopeLocal)
	require.NoError(t, err)
	require.NoError(t, cfg.Set("api.timeout", "45"))
	require.NoError(t, cfg.Set("log.audit", "true"))
	require.NoError(t, cfg.Save())

	info, err := os.Stat(LocalPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, loaded.Scope())
	assert.Equal(t, 45*time.Second, loaded.Timeout())
	assert.True(t, loaded.Audit())
}

func TestLoadEnv(t *testing.T) {
	isolate(t)

	require.NoError(t, LoadEnv(), "missing .env is not an error")

	require.NoError(t, os.WriteFile(EnvFile, []byte(APIKeyEnv+"=from-dotenv\n"), 0600))
	t.Setenv(APIKeyEnv, "")
	os.Unsetenv(APIKeyEnv)

	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-dotenv", (&Config{}).APIKey())
}

func TestLoadEnv_DoesNotOverride(t *testing.T) {
	isolate(t)
	t.Setenv(APIKeyEnv, "already-set")

	require.NoError(t, os.WriteFile(EnvFile, []byte(APIKeyEnv+"=from-dotenv\n"), 0600))
	require.NoError(t, LoadEnv())
	assert.Equal(t, "already-set", os.Getenv(APIKeyEnv))
}
