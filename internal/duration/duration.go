// Package duration parses the timeout values accepted on the command line
// and in config: a bare number of seconds, or a number with an s, m or h
// suffix.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d+)([smh]?)$`)

// Parse parses "90", "90s", "2m" or "1h".
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration %q (use seconds, or 90s, 2m, 1h)", s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	switch matches[2] {
	case "", "s":
		return time.Duration(num) * time.Second, nil
	case "m":
		return time.Duration(num) * time.Minute, nil
	default:
		return time.Duration(num) * time.Hour, nil
	}
}

// Seconds parses s and returns whole seconds.
func Seconds(s string) (int, error) {
	d, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return int(d / time.Second), nil
}
