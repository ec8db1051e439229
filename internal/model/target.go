package model

import (
	"errors"
	"net/url"
	"strings"
)

// TargetURL errors.
var (
	// ErrEmptyTargetURL is returned when the submitted URL is empty or
	// whitespace-only.
	ErrEmptyTargetURL = errors.New("target URL cannot be empty")
)

// TargetURL is an immutable value object representing the page address
// submitted for analysis.
//
// Validation is deliberately minimal: only an empty (or whitespace-only)
// submission is rejected client-side. Anything else is passed to the
// analysis service verbatim. The service owns the definition of a
// fetchable URL, and second-guessing it would reject inputs it accepts.
type TargetURL struct {
	raw string
}

// NewTargetURL creates a TargetURL from user input.
// Surrounding whitespace is trimmed; whitespace-only input counts as empty.
func NewTargetURL(raw string) (TargetURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TargetURL{}, ErrEmptyTargetURL
	}
	return TargetURL{raw: trimmed}, nil
}

// MustNewTargetURL creates a TargetURL or panics if invalid.
// Use only for known-valid URLs in tests or initialization.
func MustNewTargetURL(raw string) TargetURL {
	t, err := NewTargetURL(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the trimmed URL as submitted.
func (t TargetURL) String() string {
	return t.raw
}

// IsZero returns true if this is a zero value (empty) TargetURL.
func (t TargetURL) IsZero() bool {
	return t.raw == ""
}

// Equals returns true if two TargetURL values are equal.
func (t TargetURL) Equals(other TargetURL) bool {
	return t.raw == other.raw
}

// Host returns the hostname portion of the target, used to match per-site
// configuration overrides. Best effort: inputs without a scheme are parsed
// as if prefixed with "https://"; if no host can be extracted, the raw
// value is returned so config lookup still has a stable key.
func (t TargetURL) Host() string {
	candidate := t.raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return t.raw
	}
	return u.Hostname()
}
