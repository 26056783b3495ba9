package api

import (
	"context"
	"fmt"

	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/spf13/cobra"
)

func (e *Extension) newJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "job <jobId>",
		Short: "Show a generation job",
		Long: `Show the status and result of a generation job, as the jobs_get tool does.

  slides-mcp job 8a1f...`,
		Args: cobra.ExactArgs(1),
		RunE: e.runJob,
	}
}

func (e *Extension) runJob(c *cobra.Command, args []string) error {
	req := slides.JobLookupRequest{JobID: args[0]}
	resp, err := e.call(c.Context(), "job", "get",
		func(ctx context.Context, client *slides.Client) (*slides.Response, error) {
			return client.Job(ctx, req)
		},
		func(b *log.Builder) {
			b.Detail("job_id", req.JobID)
		})
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("job: %w", err))
	}
	return printResponse(resp)
}
