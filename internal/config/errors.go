package config

import "errors"

// Validation errors returned by Config.Validate. They are package-level
// sentinels so command code can branch with errors.Is while the messages
// stay user-ready; Validate stops at the first violation because fixing
// one usually changes the rest.
var (
	// ErrNoEndpoint: no analysis service endpoint is configured, so there
	// is nowhere to send the request.
	ErrNoEndpoint = errors.New("no analysis endpoint specified: set endpoint in the config file or use --endpoint")

	// ErrInvalidEndpoint: the endpoint is not an absolute http or https URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint: must be an absolute http or https URL")

	// ErrInvalidTimeout: the request timeout is zero or negative, which
	// would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrConflictingReportFormats: --json and --markdown were both given;
	// a run produces exactly one report format.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize: the response body cap is negative. Zero means
	// use the default, so only negatives are rejected.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)
