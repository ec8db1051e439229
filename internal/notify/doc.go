// Package notify delivers user-facing notifications for analysis outcomes.
//
// The orchestrator reports success and failure through the Notifier
// interface without knowing how notifications are displayed. The terminal
// implementation prints colored single-line messages to stderr; NopNotifier
// supports quiet operation.
package notify
