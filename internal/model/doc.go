// Package model defines the core data structures used throughout a11yscan.
//
// This package contains the following main types:
//   - RawResult / RawIssue: The analysis service's wire payload, decoded as-is
//   - AnalysisResult / Issue: The normalized, presentation-ready result
//   - IssueMeta with its classification table: issue code to (kind, title, severity)
//   - ScoreBand / Tier: Qualitative tiers derived from the numeric score
//   - TargetURL: Validated value object for the submitted page address
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (client, analyzer, report) need to use these
// types, so centralizing them prevents import cycles.
//
// Normalization (NewAnalysisResult) and suggestion synthesis (BuildSuggestions)
// are pure functions over the wire payload: identical input always yields an
// identical result, which keeps every output format in agreement.
package model
