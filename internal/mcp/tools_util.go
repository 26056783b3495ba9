// tools_util.go holds the plumbing shared by every tool: decoding the
// argument map into a typed request, validating it, and turning a remote
// response into an MCP result.
//
// Decoding is strict. A string where a number is expected, a fractional
// limit or a missing required field fails the call before the handler body
// runs, so no HTTP request is made for arguments the schema would reject.

package mcp

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/jpl-au/slides-mcp/internal/slides"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// validator is implemented by the request types in internal/slides.
type validator interface {
	Validate() error
}

// typed adapts a handler taking a decoded request into an mcp-go handler.
// Decode and validation failures are returned as Go errors wrapping
// slides.ErrInvalidArgument; the runtime reports them as JSON-RPC errors.
func typed[T validator](tool string, fn func(context.Context, T) (*mcp.CallToolResult, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args T
		if err := decodeArgs(req.GetArguments(), &args); err != nil {
			return nil, fmt.Errorf("%s: %w", tool, err)
		}
		if err := args.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", tool, err)
		}
		return fn(ctx, args)
	}
}

// decodeArgs copies the argument map into out without type coercion.
// Unknown keys are ignored.
func decodeArgs(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: wholeNumbers,
		Result:     out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("%w: %v", slides.ErrInvalidArgument, err)
	}
	return nil
}

// maxExactInt is the largest integer a float64 represents exactly.
const maxExactInt = 1 << 53

// wholeNumbers rejects fractional JSON numbers bound for integer fields.
// JSON numbers arrive as float64 and mapstructure would otherwise truncate.
func wholeNumbers(_ reflect.Type, to reflect.Type, data any) (any, error) {
	f, ok := data.(float64)
	if !ok || to.Kind() != reflect.Int {
		return data, nil
	}
	if f != math.Trunc(f) || math.Abs(f) > maxExactInt {
		return nil, fmt.Errorf("expected an integer, got %v", f)
	}
	return int(f), nil
}

// remoteResult wraps the pretty-printed response body. Any status outside
// 2xx sets isError; the body text is passed through either way.
func remoteResult(resp *slides.Response) (*mcp.CallToolResult, error) {
	text, err := resp.Indent()
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}
