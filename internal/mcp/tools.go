// tools.go declares the three tools and their input schemas.
//
// The schema is what clients see in tools/list; the matching request type
// in internal/slides enforces the same constraints before the handler runs.

package mcp

import (
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolSlidesGenerate = "slides_generate"
	ToolJobsGet        = "jobs_get"
	ToolThemesSearch   = "themes_search"
)

// tools returns the full tool set in registration order.
func tools(h *handlers) []server.ServerTool {
	return []server.ServerTool{
		{Tool: slidesGenerateTool(), Handler: typed(ToolSlidesGenerate, h.slidesGenerate)},
		{Tool: jobsGetTool(), Handler: typed(ToolJobsGet, h.jobsGet)},
		{Tool: themesSearchTool(), Handler: typed(ToolThemesSearch, h.themesSearch)},
	}
}

func slidesGenerateTool() mcp.Tool {
	return mcp.NewTool(ToolSlidesGenerate,
		mcp.WithDescription("Generate slides with 2slides. Returns job info including jobId and downloadUrl when ready. Optional 'mode' can be 'sync' (default) or 'async'."),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("themeId", mcp.Required(), mcp.MinLength(1),
			mcp.Description("Theme id (find one with themes_search)")),
		mcp.WithString("userInput", mcp.Required(), mcp.MinLength(1),
			mcp.Description("Content or topic for the presentation")),
		mcp.WithString("responseLanguage", mcp.Required(), mcp.MinLength(1),
			mcp.Description("Language for the generated slides (e.g., en, fr, ja)")),
		mcp.WithString("mode", mcp.Enum(slides.Modes...), mcp.DefaultString(slides.ModeSync),
			mcp.Description("sync waits for the deck; async returns a jobId to poll with jobs_get")),
	)
}

func jobsGetTool() mcp.Tool {
	return mcp.NewTool(ToolJobsGet,
		mcp.WithDescription("Get job status/result by jobId from 2slides. Please check every 20 seconds until the status is success."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("jobId", mcp.Required(), mcp.MinLength(1),
			mcp.Description("Job id returned by slides_generate")),
	)
}

func themesSearchTool() mcp.Tool {
	return mcp.NewTool(ToolThemesSearch,
		mcp.WithDescription("Search 2slides themes by query. Optional limit (max 100)."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString("query", mcp.Required(), mcp.MinLength(1),
			mcp.Description("Search terms (e.g., business, minimal, education)")),
		mcp.WithNumber("limit", integer(), mcp.Min(slides.MinThemeLimit), mcp.Max(slides.MaxThemeLimit),
			mcp.Description("Maximum number of themes to return (1-100)")),
	)
}

// integer narrows a number property to JSON Schema "integer".
func integer() mcp.PropertyOption {
	return func(schema map[string]any) {
		schema["type"] = "integer"
	}
}
