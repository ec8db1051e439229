package model

// Severity represents the remediation priority of an accessibility issue.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the report-facing lowercase representation when needed.
type Severity int

const (
	// SeverityLow indicates issues with limited user impact.
	// Examples: missing ARIA labels on controls that already expose visible text.
	// These are worth fixing but rarely lock anyone out of the content.
	SeverityLow Severity = iota

	// SeverityMedium indicates issues that degrade the experience for part of
	// the audience. Examples: low color contrast, missing heading structure.
	SeverityMedium

	// SeverityHigh indicates issues that block assistive-technology users
	// outright. Examples: form inputs without labels, images without
	// alternative text. These should be treated as release blockers.
	SeverityHigh
)

// String returns the lowercase representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// IssueKind buckets an issue for display purposes: a hard error, a warning,
// or an informational note. Kind and severity are related but distinct axes;
// both come from the same classification table.
type IssueKind int

const (
	// KindInfo marks advisory issues that deserve review but rarely block users.
	KindInfo IssueKind = iota

	// KindWarning marks issues that degrade accessibility without making
	// content unreachable.
	KindWarning

	// KindError marks violations that make content unusable with assistive
	// technology.
	KindError
)

// String returns the lowercase representation of the issue kind.
func (k IssueKind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// IssueMeta contains display metadata for an issue code: the kind bucket,
// a short human-readable title, and the remediation priority.
type IssueMeta struct {
	Kind     IssueKind
	Title    string
	Severity Severity
}

// issueMetaMapping maps issue codes reported by the analysis service to their
// display metadata. This centralized mapping ensures every report categorizes
// the same code the same way.
//
// Design decision: We use a map rather than embedding metadata in each issue
// record because:
// 1. It keeps the whole classification in one reviewable place
// 2. The service can introduce codes without breaking the client (unknown
//    codes fall back to a generic triple)
// 3. It makes it easy to generate classification documentation
var issueMetaMapping = map[string]IssueMeta{
	// ERROR - hard barriers for assistive technology
	"INPUT_MISSING_LABEL": {
		Kind:     KindError,
		Title:    "Missing Input Labels",
		Severity: SeverityHigh,
	},
	"MISSING_ALT_TEXT": {
		Kind:     KindError,
		Title:    "Missing Alt Text",
		Severity: SeverityHigh,
	},

	// WARNING - degraded experience
	"LOW_CONTRAST": {
		Kind:     KindWarning,
		Title:    "Low Color Contrast",
		Severity: SeverityMedium,
	},
	"MISSING_HEADING": {
		Kind:     KindWarning,
		Title:    "Missing Heading Structure",
		Severity: SeverityMedium,
	},

	// INFO - advisory
	"MISSING_ARIA_LABEL": {
		Kind:     KindInfo,
		Title:    "Missing ARIA Labels",
		Severity: SeverityLow,
	},
}

// GetSeverity returns the severity level for an issue code.
// Returns SeverityLow if the code is not in the mapping.
func GetSeverity(code string) Severity {
	if meta, ok := issueMetaMapping[code]; ok {
		return meta.Severity
	}
	return SeverityLow
}

// GetIssueMeta returns the full display metadata for an issue code.
// Unknown codes resolve to a generic informational triple rather than an
// error: the service adds detection rules faster than clients ship.
func GetIssueMeta(code string) IssueMeta {
	if meta, ok := issueMetaMapping[code]; ok {
		return meta
	}
	return IssueMeta{
		Kind:     KindInfo,
		Title:    "Accessibility Issue",
		Severity: SeverityLow,
	}
}
