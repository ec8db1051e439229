package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/notify"
)

// Notification text shown to the user. Titles are stable identifiers
// that downstream notification sinks may key on; don't change them
// without checking the report writers and shell integrations.
const (
	// titleURLRequired is the notification title for a missing target URL.
	titleURLRequired = "URL Required"

	// titleAnalysisFailed is the notification title for every analysis
	// failure after validation. Transport, status, and decode failures
	// all use it; the distinction lives only in the logs.
	titleAnalysisFailed = "Analysis Failed"

	// titleAnalysisComplete is the notification title for a successful
	// analysis.
	titleAnalysisComplete = "Analysis Complete"

	// descURLRequired tells the user what to do about a missing URL.
	descURLRequired = "Please enter a URL to analyze"

	// descAnalysisFailed is deliberately generic. The real cause goes
	// to the log, not the user.
	descAnalysisFailed = "Failed to analyze the URL. Please try again."
)

// Service is the interface the orchestrator needs from the analysis
// service client.
//
// Design decision: We accept an interface rather than *client.Client
// because:
//  1. Tests can use an in-memory fake without a running HTTP server
//  2. The orchestrator only cares about one operation
//  3. It keeps the dependency direction pointing at the model package
type Service interface {
	// AnalyzeURL submits the target for analysis and returns the raw result.
	AnalyzeURL(ctx context.Context, target model.TargetURL) (*model.RawResult, error)
}

// State represents the lifecycle of the current analysis request.
type State int

const (
	// StateIdle means no analysis has been requested yet.
	StateIdle State = iota

	// StateLoading means an analysis request is in flight.
	StateLoading

	// StateSucceeded means the last analysis completed and a result
	// is available.
	StateSucceeded

	// StateFailed means the last analysis failed and no result is
	// available.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Analyzer orchestrates a single accessibility analysis request:
// validate the target, call the service, transform the response, and
// notify the user of the outcome.
//
// An Analyzer runs one analysis at a time and is not safe for
// concurrent use. Callers that want parallel analyses should create
// one Analyzer per target.
type Analyzer struct {
	// service performs the actual analysis request.
	service Service

	// notifier receives user-facing outcome notifications.
	notifier notify.Notifier

	// logger is used for structured diagnostic logging. Unlike the
	// notifier, it sees the real failure causes.
	logger *slog.Logger

	// state tracks the lifecycle of the current request.
	state State

	// result holds the transformed result of the last successful
	// analysis, or nil.
	result *model.AnalysisResult

	// err holds the failure of the last analysis, or nil.
	err error
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithNotifier sets the notification sink for user-facing outcomes.
// If not set, notifications are discarded.
func WithNotifier(notifier notify.Notifier) Option {
	return func(a *Analyzer) {
		a.notifier = notifier
	}
}

// WithLogger sets a custom logger for diagnostics.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates a new Analyzer that submits requests through the given
// service.
func New(service Service, opts ...Option) *Analyzer {
	a := &Analyzer{
		service: service,
		state:   StateIdle,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.notifier == nil {
		a.notifier = notify.NopNotifier{}
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Analyze validates rawURL, submits it to the analysis service, and
// returns the transformed result.
//
// The request walks a fixed lifecycle: Idle -> Loading -> Succeeded or
// Failed. Validation failures never start the lifecycle: an empty URL
// leaves the current state (and any previous result) untouched, emits
// the "URL Required" notification, and makes no network call.
//
// Every post-validation failure surfaces to the user as the same
// generic "Analysis Failed" notification. The underlying cause
// (unreachable service, bad status, malformed body) is preserved in
// the returned error and the log, never in the notification.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*model.AnalysisResult, error) {
	target, err := model.NewTargetURL(rawURL)
	if err != nil {
		a.notifier.Notify(titleURLRequired, descURLRequired, true)
		a.logger.Debug("analysis rejected before submission", "reason", err)
		return nil, err
	}

	// Entering Loading discards the previous outcome so accessors
	// never pair a stale result with the new request.
	a.state = StateLoading
	a.result = nil
	a.err = nil

	a.logger.Info("analysis started", "target", target.String())

	raw, err := a.service.AnalyzeURL(ctx, target)
	if err != nil {
		a.state = StateFailed
		a.err = err
		a.notifier.Notify(titleAnalysisFailed, descAnalysisFailed, true)
		a.logger.Error("analysis failed",
			"target", target.String(),
			"error", err,
		)
		return nil, err
	}

	result := model.NewAnalysisResult(*raw)
	result.URL = target.String()
	result.AnalyzedAt = time.Now()

	a.state = StateSucceeded
	a.result = result

	a.notifier.Notify(titleAnalysisComplete, successDescription(raw), false)
	a.logger.Info("analysis complete",
		"target", target.String(),
		"score", result.Score,
		"band", result.Band.String(),
		"issues", result.TotalIssues(),
	)

	return result, nil
}

// successDescription builds the success notification text: the
// server-supplied message when present, otherwise a count-based
// summary.
func successDescription(raw *model.RawResult) string {
	if raw.Message != "" {
		return raw.Message
	}
	return fmt.Sprintf("Found %d accessibility issues", len(raw.Issues))
}

// State returns the lifecycle state of the current request.
func (a *Analyzer) State() State {
	return a.state
}

// Result returns the transformed result of the last successful
// analysis, or nil if there is none.
func (a *Analyzer) Result() *model.AnalysisResult {
	return a.result
}

// Err returns the failure of the last analysis, or nil.
func (a *Analyzer) Err() error {
	return a.err
}
