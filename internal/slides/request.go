// request.go defines the argument types for the three 2slides operations.
//
// The same structs back the MCP tools and the CLI mirrors, so the
// constraints live here in one Validate method per type rather than in
// each caller. Field tags carry the wire names used by the 2slides API and
// by MCP tool arguments.

package slides

import (
	"fmt"
	"slices"
)

// Generation modes accepted by the generate endpoint.
const (
	ModeSync  = "sync"
	ModeAsync = "async"
)

// Modes lists the accepted generation modes, default first.
var Modes = []string{ModeSync, ModeAsync}

// Bounds for theme search results.
const (
	MinThemeLimit = 1
	MaxThemeLimit = 100
)

// GenerateRequest is the body of POST /api/v1/slides/generate.
type GenerateRequest struct {
	ThemeID          string `json:"themeId" mapstructure:"themeId"`
	UserInput        string `json:"userInput" mapstructure:"userInput"`
	ResponseLanguage string `json:"responseLanguage" mapstructure:"responseLanguage"`
	// Mode is nil when omitted. An explicit empty string is invalid.
	Mode *string `json:"mode,omitempty" mapstructure:"mode"`
}

// Validate checks required fields and, when present, the mode enum.
func (r GenerateRequest) Validate() error {
	if err := required("themeId", r.ThemeID); err != nil {
		return err
	}
	if err := required("userInput", r.UserInput); err != nil {
		return err
	}
	if err := required("responseLanguage", r.ResponseLanguage); err != nil {
		return err
	}
	if r.Mode != nil && !slices.Contains(Modes, *r.Mode) {
		return fmt.Errorf("%w: mode must be one of %v, got %q", ErrInvalidArgument, Modes, *r.Mode)
	}
	return nil
}

// WithDefaults returns a copy with mode set to sync when omitted.
func (r GenerateRequest) WithDefaults() GenerateRequest {
	if r.Mode == nil {
		mode := ModeSync
		r.Mode = &mode
	}
	return r
}

// ModeName returns the mode, or sync when omitted.
func (r GenerateRequest) ModeName() string {
	if r.Mode == nil {
		return ModeSync
	}
	return *r.Mode
}

// JobLookupRequest identifies a job for GET /api/v1/jobs/{jobId}.
type JobLookupRequest struct {
	JobID string `json:"jobId" mapstructure:"jobId"`
}

// Validate checks that a job id was supplied.
func (r JobLookupRequest) Validate() error {
	return required("jobId", r.JobID)
}

// ThemeSearchRequest holds the query parameters for GET /api/v1/themes/search.
// A nil Limit leaves the parameter off the request.
type ThemeSearchRequest struct {
	Query string `json:"query" mapstructure:"query"`
	Limit *int   `json:"limit,omitempty" mapstructure:"limit"`
}

// Validate checks the query and, when present, that limit is within bounds.
// Out-of-range limits are rejected, never clamped.
func (r ThemeSearchRequest) Validate() error {
	if err := required("query", r.Query); err != nil {
		return err
	}
	if r.Limit != nil && (*r.Limit < MinThemeLimit || *r.Limit > MaxThemeLimit) {
		return fmt.Errorf("%w: limit must be between %d and %d, got %d",
			ErrInvalidArgument, MinThemeLimit, MaxThemeLimit, *r.Limit)
	}
	return nil
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidArgument, field)
	}
	return nil
}
