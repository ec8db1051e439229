package model

import (
	"math"
	"time"
)

// AnalysisResult is the normalized, presentation-ready view of one analysis.
//
// Design decision: We keep a separate normalized result rather than handing
// the raw service payload to presentation code because:
// 1. It guarantees kind and severity are always closed enum values, never
//    whatever code the backend happened to send
// 2. It can be serialized to JSON for tools that want structured output
// 3. It pins down the suggestion list once, so every output format agrees
type AnalysisResult struct {
	// URL is the analyzed page address as submitted.
	URL string `json:"url"`

	// AnalyzedAt is when the analysis completed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Score is the overall accessibility score in [0,100].
	Score int `json:"score"`

	// Band is the qualitative tier for Score.
	Band ScoreBand `json:"band"`

	// BandText is the human-readable band.
	BandText string `json:"band_text"`

	// === Severity Summary ===

	// HighCount is the number of high severity issues.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity issues.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity issues.
	LowCount int `json:"low_count"`

	// === Kind Summary ===

	// ErrorCount is the number of error-kind issues.
	ErrorCount int `json:"error_count"`

	// WarningCount is the number of warning-kind issues.
	WarningCount int `json:"warning_count"`

	// InfoCount is the number of info-kind issues.
	InfoCount int `json:"info_count"`

	// === Issues ===

	// Issues contains all categorized issues, in the order the service
	// reported them.
	Issues []Issue `json:"issues,omitempty"`

	// Suggestions are remediation sentences derived from the set of issue
	// codes present, in fixed priority order, deduplicated.
	Suggestions []string `json:"suggestions,omitempty"`

	// Message is the optional summary supplied by the service.
	Message string `json:"message,omitempty"`
}

// Issue represents a single categorized issue in the result.
type Issue struct {
	// Code is the issue code as reported by the service.
	// This maps to issueMetaMapping in severity.go.
	Code string `json:"code"`

	// Kind is the display bucket (error, warning, info).
	Kind IssueKind `json:"kind"`

	// KindText is the human-readable kind.
	KindText string `json:"kind_text"`

	// Severity is the remediation priority.
	Severity Severity `json:"severity"`

	// SeverityText is the human-readable severity.
	SeverityText string `json:"severity_text"`

	// Title is a short description of the issue category.
	Title string `json:"title"`

	// Description provides detail about this occurrence.
	// Carried verbatim from the service.
	Description string `json:"description,omitempty"`

	// Element is the offending markup fragment or selector.
	// Carried verbatim from the service.
	Element string `json:"element,omitempty"`
}

// NewAnalysisResult normalizes a raw service payload.
// It is a pure function: identical input yields identical output. Envelope
// fields that depend on the caller (URL, AnalyzedAt) are left zero and
// stamped by the orchestrator.
func NewAnalysisResult(raw RawResult) *AnalysisResult {
	result := &AnalysisResult{
		Score:   normalizeScore(raw.Score),
		Message: raw.Message,
	}
	result.Band = BandForScore(result.Score)
	result.BandText = result.Band.String()

	for _, issue := range raw.Issues {
		result.addIssue(issue)
	}
	result.countIssues()

	result.Suggestions = BuildSuggestions(raw.Issues)

	return result
}

// normalizeScore rounds the wire score to the nearest integer and clamps it
// to [0,100]. The service is expected to stay in range; clamping keeps the
// invariant when it does not.
func normalizeScore(raw float64) int {
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// addIssue categorizes one raw issue and appends it to the result.
func (r *AnalysisResult) addIssue(raw RawIssue) {
	meta := GetIssueMeta(raw.Type)
	r.Issues = append(r.Issues, Issue{
		Code:         raw.Type,
		Kind:         meta.Kind,
		KindText:     meta.Kind.String(),
		Severity:     meta.Severity,
		SeverityText: meta.Severity.String(),
		Title:        meta.Title,
		Description:  raw.Description,
		Element:      raw.Element,
	})
}

// countIssues tallies issues by severity and by kind.
func (r *AnalysisResult) countIssues() {
	for _, issue := range r.Issues {
		switch issue.Severity {
		case SeverityHigh:
			r.HighCount++
		case SeverityMedium:
			r.MediumCount++
		case SeverityLow:
			r.LowCount++
		}
		switch issue.Kind {
		case KindError:
			r.ErrorCount++
		case KindWarning:
			r.WarningCount++
		case KindInfo:
			r.InfoCount++
		}
	}
}

// TotalIssues returns the total number of issues.
func (r *AnalysisResult) TotalIssues() int {
	return len(r.Issues)
}

// HasIssues returns true if there are any issues.
func (r *AnalysisResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// IssuesBySeverity returns issues filtered by severity.
func (r *AnalysisResult) IssuesBySeverity(severity Severity) []Issue {
	var result []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			result = append(result, issue)
		}
	}
	return result
}

// Tier returns the display tier for the result's score band.
func (r *AnalysisResult) Tier() Tier {
	return r.Band.Tier()
}
