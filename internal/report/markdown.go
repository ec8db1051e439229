package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/a11yscan/internal/model"
)

// severityOrder drives every severity-grouped section, highest impact
// first. The emoji doubles as the summary-row marker and the group heading.
var severityOrder = []struct {
	level model.Severity
	emoji string
}{
	{model.SeverityHigh, "🔴"},
	{model.SeverityMedium, "🟡"},
	{model.SeverityLow, "🔵"},
}

// MarkdownWriter renders an AnalysisResult as a GitHub-flavored Markdown
// document, built with nao1215/markdown so tables, alerts, and the mermaid
// chart stay well-formed without hand-assembled strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the document: header table, summary with chart and alert,
// issues grouped by severity, suggestions, footer.
func (w *MarkdownWriter) Write(result *model.AnalysisResult) (int, error) {
	md := markdown.NewMarkdown(w.out)

	w.header(md, result)
	w.summary(md, result)
	w.issues(md, result)
	w.suggestions(md, result)
	w.footer(md)

	return len(md.String()), md.Build()
}

// header emits the title and the property table identifying the analysis.
func (w *MarkdownWriter) header(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H1("Accessibility Report")
	md.PlainText("")

	rows := [][]string{
		{"Target URL", "`" + result.URL + "`"},
		{"Score", strconv.Itoa(result.Score) + "/100"},
		{"Rating", bandLabel(result.Band)},
	}
	if !result.AnalyzedAt.IsZero() {
		rows = append(rows, []string{"Analyzed At", result.AnalyzedAt.Format("2006-01-02 15:04:05 MST")})
	}
	if result.Message != "" {
		rows = append(rows, []string{"Message", result.Message})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// bandLabel renders a score band with its traffic-light marker.
func bandLabel(band model.ScoreBand) string {
	switch band {
	case model.BandExcellent:
		return "✅ Excellent"
	case model.BandGood:
		return "🟡 Good"
	default:
		return "🔴 Needs Improvement"
	}
}

// summary emits the per-severity count table, a distribution chart when
// there is anything to chart, and a severity-keyed alert.
func (w *MarkdownWriter) summary(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Issue Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(severityOrder)+1)
	for _, group := range severityOrder {
		rows = append(rows, []string{
			group.emoji + " " + displayLabel(group.level.String()),
			strconv.Itoa(len(result.IssuesBySeverity(group.level))),
		})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(result.TotalIssues()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if result.HasIssues() {
		w.distributionChart(md, result)
	}
	w.alert(md, result)
}

// distributionChart emits a mermaid pie chart of issue counts per severity.
// Zero-count severities are omitted; mermaid renders them as empty labels.
func (w *MarkdownWriter) distributionChart(md *markdown.Markdown, result *model.AnalysisResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Issue Severity Distribution"),
		piechart.WithShowData(true),
	)

	for _, group := range severityOrder {
		if n := len(result.IssuesBySeverity(group.level)); n > 0 {
			chart.LabelAndIntValue(displayLabel(group.level.String()), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// alert emits one GitHub alert keyed to the worst severity present.
func (w *MarkdownWriter) alert(md *markdown.Markdown, result *model.AnalysisResult) {
	switch {
	case result.HighCount > 0:
		md.Cautionf(
			"High severity accessibility barriers detected! %d issue(s) block some users entirely.",
			result.HighCount,
		)
	case result.MediumCount > 0:
		md.Warningf(
			"Medium severity issues detected. %d issue(s) degrade the experience for assistive technology users.",
			result.MediumCount,
		)
	case result.TotalIssues() > 0:
		md.Note("Only low severity advisory issues detected.")
	default:
		md.Tip("No accessibility issues detected.")
	}
	md.PlainText("")
}

// issues emits one table per severity group that has entries, followed by
// collapsible descriptions.
func (w *MarkdownWriter) issues(md *markdown.Markdown, result *model.AnalysisResult) {
	md.H2("Issues")
	md.PlainText("")

	if !result.HasIssues() {
		md.PlainText("No accessibility issues detected.")
		md.PlainText("")
		return
	}

	for _, group := range severityOrder {
		grouped := result.IssuesBySeverity(group.level)
		if len(grouped) == 0 {
			continue
		}

		md.PlainText("### " + group.emoji + " " + displayLabel(group.level.String()))
		md.PlainText("")
		w.issueTable(md, grouped)
	}
}

// issueTable emits the table for one severity group. Elements are markup
// fragments and can be long; they are truncated to keep the table readable,
// with the full description available in the Details blocks below it.
func (w *MarkdownWriter) issueTable(md *markdown.Markdown, issues []model.Issue) {
	rows := make([][]string, len(issues))
	for i, issue := range issues {
		element := issue.Element
		if element == "" {
			element = "-"
		}
		rows[i] = []string{issue.Title, issue.KindText, truncateString(element, 50)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Title", "Kind", "Element"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, issue := range issues {
		if issue.Description != "" {
			md.Details(issue.Title, issue.Description)
		}
	}
	md.PlainText("")
}

// suggestions emits the remediation list. The transform always produces at
// least the generic suggestions, but a re-rendered stored result may carry
// none, so the empty case is skipped rather than rendered as a bare heading.
func (w *MarkdownWriter) suggestions(md *markdown.Markdown, result *model.AnalysisResult) {
	if len(result.Suggestions) == 0 {
		return
	}

	md.H2("Suggestions")
	md.PlainText("")
	md.BulletList(result.Suggestions...)
	md.PlainText("")
}

func (w *MarkdownWriter) footer(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [a11yscan](https://github.com/nao1215/a11yscan)*")
}

// truncateString shortens s to at most maxLen characters, marking the cut
// with an ellipsis when room allows.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
