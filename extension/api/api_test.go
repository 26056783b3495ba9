package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/extension/api"
	_ "github.com/jpl-au/slides-mcp/extension/all"
	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
)

type seen struct {
	Method   string
	Path     string
	RawQuery string
	Auth     string
	Body     map[string]any
}

type origin struct {
	mu     sync.Mutex
	reqs   []seen
	status int
	body   string
}

func (o *origin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := seen{Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery, Auth: r.Header.Get("Authorization")}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &s.Body)
	}
	o.mu.Lock()
	o.reqs = append(o.reqs, s)
	o.mu.Unlock()
	w.WriteHeader(o.status)
	_, _ = io.WriteString(w, o.body)
}

func (o *origin) requests() []seen {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]seen(nil), o.reqs...)
}

// setup isolates HOME and the working directory, points a local config at
// a stub origin and captures command output.
func setup(t *testing.T, status int, body string, extra string) (*origin, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.APIKeyEnv, "cli-key")
	t.Chdir(dir)

	o := &origin{status: status, body: body}
	srv := httptest.NewServer(o)
	t.Cleanup(srv.Close)

	require.NoError(t, os.MkdirAll(".slides-mcp", 0o755))
	cfg := "api:\n  base_url: " + srv.URL + "\n" + extra
	require.NoError(t, os.WriteFile(filepath.Join(".slides-mcp", "config.yaml"), []byte(cfg), 0o600))

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(os.Stdout) })
	return o, &buf
}

func TestGenerate(t *testing.T) {
	o, buf := setup(t, http.StatusOK, `{"jobId":"j1"}`, "")

	require.NoError(t, cmd.Run("generate", "--theme", "t1", "--language", "en", "Quarterly", "review"))
	assert.Equal(t, "{\n  \"jobId\": \"j1\"\n}\n", buf.String())

	reqs := o.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, slides.GeneratePath, reqs[0].Path)
	assert.Equal(t, "Bearer cli-key", reqs[0].Auth)
	assert.Equal(t, map[string]any{
		"themeId":          "t1",
		"userInput":        "Quarterly review",
		"responseLanguage": "en",
		"mode":             "sync",
	}, reqs[0].Body)
}

func TestGenerate_Stdin(t *testing.T) {
	o, _ := setup(t, http.StatusOK, `{"jobId":"j1"}`, "")

	root := func() error {
		return cmd.Run("generate", "--theme", "t1", "--language", "fr", "--mode", "async", "-")
	}
	// Run builds the tree, so stdin is swapped at the process level.
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, _ = io.WriteString(w, "  Notes from stdin\n")
	require.NoError(t, w.Close())
	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = old })

	require.NoError(t, root())
	reqs := o.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "Notes from stdin", reqs[0].Body["userInput"])
	assert.Equal(t, "async", reqs[0].Body["mode"])
}

func TestGenerate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing theme", []string{"generate", "--language", "en", "x"}},
		{"missing language", []string{"generate", "--theme", "t1", "x"}},
		{"bad mode", []string{"generate", "--theme", "t1", "--language", "en", "--mode", "fast", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := setup(t, http.StatusOK, `{}`, "")
			err := cmd.Run(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, slides.ErrInvalidArgument)
			assert.Empty(t, o.requests())
		})
	}
}

func TestJob_RemoteError(t *testing.T) {
	o, buf := setup(t, http.StatusNotFound, `{"error":"not found"}`, "")

	err := cmd.Run("job", "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrRemote)
	assert.Equal(t, "{\n  \"error\": \"not found\"\n}\n", buf.String())

	reqs := o.requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/v1/jobs/missing", reqs[0].Path)
}

func TestJob_JSONOutput(t *testing.T) {
	_, buf := setup(t, http.StatusOK, `{"status":"success","downloadUrl":"https://x/y.pptx"}`, "")

	require.NoError(t, cmd.Run("job", "j1", "-o", "json"))

	var got struct {
		Status int            `json:"status"`
		Body   map[string]any `json:"body"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "success", got.Body["status"])
}

func TestThemes(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		query string
	}{
		{"no limit", []string{"themes", "business"}, "query=business"},
		{"limit", []string{"themes", "--limit", "5", "minimal", "dark"}, "limit=5&query=minimal+dark"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := setup(t, http.StatusOK, `{"themes":[]}`, "")
			require.NoError(t, cmd.Run(tt.args...))
			reqs := o.requests()
			require.Len(t, reqs, 1)
			assert.Equal(t, slides.ThemeSearchPath, reqs[0].Path)
			assert.Equal(t, tt.query, reqs[0].RawQuery)
		})
	}
}

func TestThemes_LimitOutOfRange(t *testing.T) {
	o, _ := setup(t, http.StatusOK, `{}`, "")

	err := cmd.Run("themes", "--limit", "101", "business")
	assert.ErrorIs(t, err, slides.ErrInvalidArgument)
	assert.Empty(t, o.requests())
}

func TestInvalidConfig(t *testing.T) {
	o, _ := setup(t, http.StatusOK, `{}`, "log:\n  level: loud\n")

	err := cmd.Run("job", "j1")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
	assert.Empty(t, o.requests())
}

func TestAuditLog(t *testing.T) {
	_, _ = setup(t, http.StatusNotFound, `{"error":"not found"}`, "log:\n  audit: true\n")
	t.Cleanup(log.Close)

	err := cmd.Run("job", "missing")
	require.ErrorIs(t, err, api.ErrRemote)
	require.True(t, log.Enabled())
	path := log.DBPath()
	log.Close()

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var source, action, detail string
	var status, success int
	err = db.QueryRow(`SELECT source, action, status, success, detail FROM log`).
		Scan(&source, &action, &status, &success, &detail)
	require.NoError(t, err)
	assert.Equal(t, "api:job", source)
	assert.Equal(t, "get", action)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 0, success)
	assert.JSONEq(t, `{"job_id":"missing"}`, detail)
}
