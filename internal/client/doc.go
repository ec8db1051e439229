// Package client provides HTTP access to the remote accessibility
// analysis service.
//
// This package owns the wire contract: it builds the POST request to
// /api/analyze-url, decodes the JSON response into model.RawResult, and
// maps every failure onto one of three error types (ErrServiceUnreachable,
// ErrUnexpectedStatus, ErrMalformedResponse) so callers can log precise
// diagnostics while presenting a uniform failure to the user.
//
// Design decision: The client returns raw results rather than transformed
// ones. Transformation is a pure function in the model package, and keeping
// it out of the client means the wire layer can be tested with httptest
// servers without dragging in categorization rules.
//
// The package is designed to be used with dependency injection - create a
// Client and pass it to the analyzer rather than using global state.
package client
