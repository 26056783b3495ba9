// Package mcp implements the Model Context Protocol server that exposes the
// 2slides API to LLM clients as three tools: slides_generate, jobs_get and
// themes_search.
package mcp

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/jpl-au/slides-mcp/internal/config"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/jpl-au/slides-mcp/internal/telemetry"
	"github.com/jpl-au/slides-mcp/internal/version"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is advertised to clients during initialisation.
const ServerName = "slides-mcp"

// instructions is sent to clients that surface server-level guidance.
const instructions = `Use themes_search to find a themeId, then slides_generate to create a deck.
In async mode, poll jobs_get every 20 seconds until the job status is success; the result includes the downloadUrl.`

// Options configures the server built by NewServer.
type Options struct {
	// Client performs the remote API calls. Required.
	Client *slides.Client
	// Logger receives per-call operational logs. Defaults to slog.Default().
	Logger *slog.Logger
	// Observer records metrics and spans. Nil disables both.
	Observer *telemetry.Observer
}

// NewServer builds an MCP server with the three 2slides tools registered.
// Arguments are validated before a handler body runs; failures reach the
// client as JSON-RPC errors and no request is sent.
func NewServer(opts Options) *server.MCPServer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := server.NewMCPServer(
		ServerName,
		version.Short(),
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(observe(logger, opts.Observer)),
	)

	h := &handlers{client: opts.Client}
	s.AddTools(tools(h)...)
	return s
}

// Serve starts the MCP server over stdio and blocks until the client
// disconnects or the process is signalled.
//
// A missing API key is only a warning: the server still starts and every
// call comes back as the remote's authentication error.
func Serve(ctx context.Context, cfg *config.Config) error {
	// Log to stderr; stdout is reserved for MCP JSON-RPC messages
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	if cfg.APIKey() == "" {
		slog.Warn("missing API key; calls will be rejected by 2slides",
			"env", config.APIKeyEnv,
			"hint", "create .env and set "+config.APIKeyEnv+"=...")
	}

	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryEndpoint(), version.Short())
	if err != nil {
		slog.Warn("telemetry export disabled", "error", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "error", err)
		}
	}()

	obs, err := telemetry.NewGlobalObserver()
	if err != nil {
		slog.Warn("telemetry instruments unavailable", "error", err)
		obs = nil
	}

	s := NewServer(Options{
		Client:   slides.FromConfig(cfg),
		Logger:   logger,
		Observer: obs,
	})

	slog.Info("slides-mcp MCP server ready",
		"version", version.Short(),
		"transport", "stdio",
		"api", cfg.BaseURL())

	err = server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		slog.Info("server stopped")
		return nil
	}
	return err
}

// handlers provides MCP tool handlers with access to the API client.
// It holds no mutable state; concurrent calls share it freely.
type handlers struct {
	client *slides.Client
}
