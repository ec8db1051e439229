package client

import "errors"

// Analysis service errors.
// These errors are returned when a request to the accessibility analysis
// service fails before a usable result is decoded.
//
// Design decision: We define specific error types rather than wrapping all
// errors generically. The user-facing message is the same for every failure,
// but logs and tests need to tell the failure modes apart (e.g., service
// down vs. service returning garbage).
var (
	// ErrServiceUnreachable is returned when the HTTP request could not be
	// completed at the transport level. This usually means the analysis
	// service is not running, the endpoint is wrong, or the network is down.
	ErrServiceUnreachable = errors.New("analysis service unreachable")

	// ErrUnexpectedStatus is returned when the analysis service responds
	// with a non-2xx status code. The status line is included in the error
	// message for diagnostics.
	ErrUnexpectedStatus = errors.New("analysis service returned unexpected status")

	// ErrMalformedResponse is returned when the analysis service responds
	// with 2xx but the body cannot be decoded as an analysis result.
	ErrMalformedResponse = errors.New("analysis service returned malformed response")
)
