package model

// RawResult is the analysis service's response payload, decoded as-is.
// Nothing in this struct is trusted beyond JSON well-formedness;
// normalization into an AnalysisResult happens in NewAnalysisResult.
type RawResult struct {
	// Score is the overall accessibility score. The service reports a JSON
	// number; values outside [0,100] are normalized during transformation.
	Score float64 `json:"score"`

	// Issues are the findings in the order the service reported them.
	Issues []RawIssue `json:"issues"`

	// Message is an optional human-readable summary from the service.
	Message string `json:"message,omitempty"`
}

// RawIssue is a single finding as reported by the analysis service.
type RawIssue struct {
	// Type is the opaque issue code, e.g. "MISSING_ALT_TEXT".
	// This maps to issueMetaMapping in severity.go.
	Type string `json:"type"`

	// Description explains the specific occurrence.
	Description string `json:"description"`

	// Element is the offending markup fragment or selector.
	Element string `json:"element"`
}
