package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nao1215/a11yscan/internal/model"
)

// SimpleWriter renders the terminal report: a score banner, issues
// grouped by severity, and the suggestion list.
//
// Design decision: Output is plain ASCII unless WithColor opts in.
// A report piped into a file or a pager must not leave escape codes
// behind, and dumb terminals still get something readable.
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether sections with no issues are shown.
	showEmpty bool

	// verbose adds issue descriptions and the per-kind counts.
	verbose bool

	// colored enables ANSI color for the score and severity headers.
	colored bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty also prints severity sections that hold no issues.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose adds issue descriptions and per-kind counts to the report.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithColor enables ANSI color output. Callers should only enable this
// when writing to an interactive terminal.
func WithColor(colored bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.colored = colored
	}
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the analysis result in human-readable format.
func (w *SimpleWriter) Write(result *model.AnalysisResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)
	w.writeIssues(&sb, result)
	w.writeSuggestions(&sb, result)
	w.writeFooter(&sb)

	return w.out.Write([]byte(sb.String()))
}

// rule writes a full-width separator line built from ch.
func rule(sb *strings.Builder, ch string) {
	sb.WriteString(strings.Repeat(ch, 70))
	sb.WriteString("\n")
}

// sectionHeading writes a titled section divider.
func sectionHeading(sb *strings.Builder, title string) {
	rule(sb, "-")
	sb.WriteString(title)
	sb.WriteString("\n")
	rule(sb, "-")
	sb.WriteString("\n")
}

// paint applies the given color when color output is enabled.
func (w *SimpleWriter) paint(c *color.Color, s string) string {
	if !w.colored {
		return s
	}
	return c.Sprint(s)
}

// tierColor maps a display tier onto a terminal color.
func tierColor(tier model.Tier) *color.Color {
	switch tier {
	case model.TierHigh:
		return color.New(color.FgGreen)
	case model.TierMid:
		return color.New(color.FgYellow)
	case model.TierLow:
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// writeHeader writes the report header with target and score information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.AnalysisResult) {
	sb.WriteString("\n")
	rule(sb, "=")
	sb.WriteString("                       ACCESSIBILITY REPORT\n")
	rule(sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Target URL:   %s\n", result.URL))
	if !result.AnalyzedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Analyzed At:  %s\n", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	}

	scoreText := fmt.Sprintf("%d/100 (%s)", result.Score, displayLabel(result.Band.String()))
	sb.WriteString(fmt.Sprintf("Score:        %s\n", w.paint(tierColor(result.Tier()), scoreText)))

	if result.Message != "" {
		sb.WriteString(fmt.Sprintf("Message:      %s\n", result.Message))
	}

	sb.WriteString("\n")
}

// writeSummary writes the issue summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.AnalysisResult) {
	sectionHeading(sb, "ISSUE SUMMARY")

	sb.WriteString(fmt.Sprintf("  HIGH:     %d\n", result.HighCount))
	sb.WriteString(fmt.Sprintf("  MEDIUM:   %d\n", result.MediumCount))
	sb.WriteString(fmt.Sprintf("  LOW:      %d\n", result.LowCount))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  TOTAL:    %d issues\n", result.TotalIssues()))
	sb.WriteString("\n")

	if w.verbose {
		sb.WriteString(fmt.Sprintf("  ERRORS:   %d\n", result.ErrorCount))
		sb.WriteString(fmt.Sprintf("  WARNINGS: %d\n", result.WarningCount))
		sb.WriteString(fmt.Sprintf("  INFO:     %d\n", result.InfoCount))
		sb.WriteString("\n")
	}
}

// writeIssues writes all issues grouped by severity.
func (w *SimpleWriter) writeIssues(sb *strings.Builder, result *model.AnalysisResult) {
	if !result.HasIssues() && !w.showEmpty {
		return
	}

	sectionHeading(sb, "ISSUES")

	// High severity leads.
	for _, severity := range []model.Severity{model.SeverityHigh, model.SeverityMedium, model.SeverityLow} {
		issues := result.IssuesBySeverity(severity)
		if len(issues) == 0 && !w.showEmpty {
			continue
		}

		w.writeIssuesForSeverity(sb, severity, issues)
	}
}

// writeIssuesForSeverity writes issues of a specific severity level.
func (w *SimpleWriter) writeIssuesForSeverity(sb *strings.Builder, severity model.Severity, issues []model.Issue) {
	header := fmt.Sprintf("[%s] %s", severityMarker(severity), displayLabel(severity.String()))
	sb.WriteString(w.paint(severityColor(severity), header))
	sb.WriteString("\n")

	if len(issues) == 0 {
		sb.WriteString("  No issues\n\n")
		return
	}

	for _, issue := range issues {
		sb.WriteString(fmt.Sprintf("  * %s (%s)\n", issue.Title, issue.KindText))
		if issue.Element != "" {
			sb.WriteString(fmt.Sprintf("    Element: %s\n", issue.Element))
		}
		if w.verbose && issue.Description != "" {
			sb.WriteString(fmt.Sprintf("    Description: %s\n", issue.Description))
		}
	}
	sb.WriteString("\n")
}

// severityMarker returns the bracketed marker shown next to each
// severity heading.
func severityMarker(severity model.Severity) string {
	switch severity {
	case model.SeverityHigh:
		return "!!"
	case model.SeverityMedium:
		return "!"
	case model.SeverityLow:
		return "-"
	default:
		return "?"
	}
}

// severityColor maps a severity onto a terminal color.
func severityColor(severity model.Severity) *color.Color {
	switch severity {
	case model.SeverityHigh:
		return color.New(color.FgRed)
	case model.SeverityMedium:
		return color.New(color.FgYellow)
	case model.SeverityLow:
		return color.New(color.FgCyan)
	default:
		return color.New(color.Reset)
	}
}

// writeSuggestions writes the suggestion list.
func (w *SimpleWriter) writeSuggestions(sb *strings.Builder, result *model.AnalysisResult) {
	if len(result.Suggestions) == 0 && !w.showEmpty {
		return
	}

	sectionHeading(sb, "SUGGESTIONS")

	if len(result.Suggestions) == 0 {
		sb.WriteString("  No suggestions\n")
	} else {
		for i, suggestion := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, suggestion))
		}
	}
	sb.WriteString("\n")
}

// writeFooter closes the report with the tool's provenance lines.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	rule(sb, "=")
	sb.WriteString("Report generated by a11yscan\n")
	sb.WriteString("https://github.com/nao1215/a11yscan\n")
	rule(sb, "=")
}
