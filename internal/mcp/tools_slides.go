// tools_slides.go implements the handlers behind the three tools.
//
// Each handler makes exactly one HTTP call. A transport failure or a body
// that is not JSON is returned as a Go error; any status the remote sends
// back with a JSON body becomes a tool result, flagged isError outside 2xx.

package mcp

import (
	"context"
	"fmt"

	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) slidesGenerate(ctx context.Context, req slides.GenerateRequest) (*mcp.CallToolResult, error) {
	req = req.WithDefaults()
	resp, err := h.client.Generate(ctx, req)
	audit(ctx, ToolSlidesGenerate, "generate", resp, err).
		Detail("theme_id", req.ThemeID).
		Detail("mode", req.ModeName()).
		Write(err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ToolSlidesGenerate, err)
	}
	return remoteResult(resp)
}

func (h *handlers) jobsGet(ctx context.Context, req slides.JobLookupRequest) (*mcp.CallToolResult, error) {
	resp, err := h.client.Job(ctx, req)
	audit(ctx, ToolJobsGet, "get", resp, err).
		Detail("job_id", req.JobID).
		Write(err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ToolJobsGet, err)
	}
	return remoteResult(resp)
}

func (h *handlers) themesSearch(ctx context.Context, req slides.ThemeSearchRequest) (*mcp.CallToolResult, error) {
	resp, err := h.client.SearchThemes(ctx, req)
	b := audit(ctx, ToolThemesSearch, "search", resp, err).Detail("query", req.Query)
	if req.Limit != nil {
		b.Detail("limit", *req.Limit)
	}
	b.Write(err)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ToolThemesSearch, err)
	}
	return remoteResult(resp)
}

// audit starts an audit entry for tool. resp may be nil when err is set.
func audit(ctx context.Context, tool, action string, resp *slides.Response, err error) *log.Builder {
	b := log.Event("mcp:"+tool, action).RequestID(requestID(ctx))
	if err == nil && resp != nil {
		b.Status(resp.StatusCode)
	}
	return b
}
