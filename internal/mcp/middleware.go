package mcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jpl-au/slides-mcp/internal/telemetry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type requestIDKey struct{}

// requestID returns the id assigned to the current tool call, or "".
func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// observe assigns each call a request id, then logs, counts and traces it.
// Argument values are never logged; userInput can be large and private.
func observe(logger *slog.Logger, obs *telemetry.Observer) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			tool := req.Params.Name
			id := uuid.NewString()
			ctx = context.WithValue(ctx, requestIDKey{}, id)

			ctx, inv := obs.Start(ctx, tool, id)
			start := time.Now()
			logger.DebugContext(ctx, "tool call", "tool", tool, "request_id", id)

			res, err := next(ctx, req)

			isError := res != nil && res.IsError
			inv.End(isError, err)

			attrs := []any{
				"tool", tool,
				"request_id", id,
				"duration", time.Since(start),
			}
			switch {
			case err != nil:
				logger.WarnContext(ctx, "tool failed", append(attrs, "error", err)...)
			case isError:
				logger.InfoContext(ctx, "tool returned remote error", attrs...)
			default:
				logger.InfoContext(ctx, "tool done", attrs...)
			}
			return res, err
		}
	}
}
