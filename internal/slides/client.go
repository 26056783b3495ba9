// Package slides is a thin client for the 2slides presentation API.
//
// Each operation makes exactly one HTTP request and returns the status code
// and the raw JSON body. Non-2xx statuses are not errors at this layer: the
// remote's error body is data the caller relays. Only transport failures and
// bodies that are not JSON are returned as errors. There is no retry.
package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidArgument marks arguments rejected before any request is made.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedResponse is returned when the response body is not JSON.
	ErrMalformedResponse = errors.New("malformed response")
)

// API paths, relative to the configured origin.
const (
	GeneratePath     = "/api/v1/slides/generate"
	JobsPath         = "/api/v1/jobs/"
	ThemeSearchPath  = "/api/v1/themes/search"
	defaultUserAgent = "slides-mcp"
)

// Client calls the 2slides API. It is safe for concurrent use; all fields
// are fixed at construction.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded. The
// timeout is set on a copy, so a shared client passed to WithHTTPClient is
// left as it was.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the API at baseURL authenticating with apiKey.
// An empty key is allowed; the remote will reject the calls.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
		http:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// HasKey reports whether a bearer token is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// Response is the remote status and JSON body, passed through unchanged.
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Indent returns the body as JSON indented by two spaces. Key order,
// number text (1.50 stays 1.50) and \uXXXX escapes are kept as the remote
// sent them; only whitespace changes.
func (r *Response) Indent() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return buf.String(), nil
}

// Generate starts a slide generation job. Mode defaults to sync.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.baseURL+GeneratePath, body)
}

// Job fetches the status of a generation job.
func (c *Client) Job(ctx context.Context, req JobLookupRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, c.baseURL+JobsPath+url.PathEscape(req.JobID), nil)
}

// SearchThemes searches the theme catalogue.
func (c *Client) SearchThemes(ctx context.Context, req ThemeSearchRequest) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("query", req.Query)
	if req.Limit != nil {
		q.Set("limit", strconv.Itoa(*req.Limit))
	}
	return c.do(ctx, http.MethodGet, c.baseURL+ThemeSearchPath+"?"+q.Encode(), nil)
}

// do sends one request and reads the whole body. The body must be JSON
// whatever the status.
func (c *Client) do(ctx context.Context, method, target string, body []byte) (*Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, redactQuery(target), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: status %d: body is not JSON", ErrMalformedResponse, resp.StatusCode)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// redactQuery drops the query string so search terms stay out of errors.
func redactQuery(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}
