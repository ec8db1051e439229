// Package analyzer orchestrates accessibility analysis requests.
//
// The Analyzer sits between the CLI and the service client: it
// validates the target URL, drives the Idle -> Loading -> Succeeded or
// Failed lifecycle, transforms raw service responses into
// model.AnalysisResult values, and pushes outcome notifications to a
// notify.Notifier.
//
// Design decision: Validation lives here rather than in the config
// layer so a missing URL produces the "URL Required" notification
// instead of a configuration error. Everything after validation fails
// uniformly: the user sees one generic failure message while the
// specific cause (transport, status, decode) is kept for the logs.
package analyzer
