// Package api provides CLI mirrors of the three MCP tools: generate, job
// and themes. They share the client and argument validation with the MCP
// server, which makes them a quick way to check a key or a theme id from a
// shell.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jpl-au/slides-mcp/cmd"
	"github.com/jpl-au/slides-mcp/extension"
	"github.com/jpl-au/slides-mcp/internal/log"
	"github.com/jpl-au/slides-mcp/internal/progress"
	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/spf13/cobra"
)

// ErrRemote is returned after printing a non-2xx response body.
var ErrRemote = errors.New("2slides returned an error")

func init() {
	extension.Register(&Extension{})
}

// Extension implements the api extension.
type Extension struct {
	client *slides.Client
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "api".
func (e *Extension) Name() string { return "api" }

// Init takes the shared client from the context.
func (e *Extension) Init(ctx extension.Context) error {
	e.client = ctx.Client()
	return nil
}

// Commands returns generate, job and themes.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newGenerateCmd(),
		e.newJobCmd(),
		e.newThemesCmd(),
	}
}

// waitLabels is shown on a terminal while a command waits on the remote.
var waitLabels = map[string]string{
	"generate": "Generating slides",
	"job":      "Fetching job",
	"themes":   "Searching themes",
}

// call runs one API operation and writes its audit entry. detail adds
// operation-specific fields to the entry.
func (e *Extension) call(ctx context.Context, command, action string,
	do func(context.Context, *slides.Client) (*slides.Response, error),
	detail func(*log.Builder),
) (*slides.Response, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%s: extension not initialised", command)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	b := log.Event("api:"+command, action).RequestID(uuid.NewString())
	sp := progress.NewSpinner(waitLabels[command])
	sp.Start()
	resp, err := do(ctx, e.client)
	sp.Stop()
	if resp != nil {
		b.Status(resp.StatusCode)
	}
	if detail != nil {
		detail(b)
	}
	b.Write(err)
	return resp, err
}

// envelope is the --output json form of a response.
type envelope struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// printResponse writes the remote body and reports a non-2xx status as
// ErrRemote. Human output is the body indented by two spaces.
func printResponse(resp *slides.Response) error {
	if cmd.JSON() {
		if err := cmd.PrintJSON(envelope{Status: resp.StatusCode, Body: resp.Body}); err != nil {
			return err
		}
	} else {
		text, err := resp.Indent()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.Out(), text)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: status %d", ErrRemote, resp.StatusCode)
	}
	return nil
}
