package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/report"
)

// Constants for score direction labels.
const (
	scoreDirectionWorsened  = "worsened"
	scoreDirectionImproved  = "improved"
	scoreDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares two saved JSON analysis reports.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <before.json> <after.json>",
		Short: "Compare two saved analysis reports",
		Long: `Compare displays differences between two saved analysis reports.

Reports are produced by 'a11yscan analyze --json --output <file>'. The
comparison shows:
- The change in accessibility score and rating
- New issues that appeared since the earlier report
- Resolved issues that are no longer present

Both reports must refer to the same URL.

Examples:
  # Save a report, fix the page, save another, then compare
  a11yscan analyze --json -o before.json https://example.com
  a11yscan analyze --json -o after.json https://example.com
  a11yscan compare before.json after.json

  # Output comparison in JSON format
  a11yscan compare --json before.json after.json

  # Output comparison in Markdown format
  a11yscan compare --markdown before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}

	previous, err := loadSavedReport(args[0])
	if err != nil {
		return err
	}
	current, err := loadSavedReport(args[1])
	if err != nil {
		return err
	}

	// Comparing reports for different pages would produce a meaningless
	// issue diff, so refuse early.
	if previous.Result.URL != current.Result.URL {
		return fmt.Errorf("reports refer to different URLs: %s vs %s",
			previous.Result.URL, current.Result.URL)
	}

	comparison := compareResults(previous, current)

	if jsonOutput {
		return outputComparisonJSON(comparison)
	}
	if markdownOutput {
		return outputComparisonMarkdown(comparison)
	}
	return outputComparisonText(comparison)
}

// loadSavedReport reads a JSON report file written by 'analyze --json'.
func loadSavedReport(path string) (*report.Envelope, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user running the command
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var saved report.Envelope
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse report file %s: %w", path, err)
	}
	if saved.Result == nil {
		return nil, fmt.Errorf("%s is not a saved analysis report (generate one with 'a11yscan analyze --json --output %s')", path, path)
	}
	return &saved, nil
}

// ComparisonResult holds the result of comparing two analysis reports.
type ComparisonResult struct {
	// TargetURL is the analyzed page address.
	TargetURL string `json:"target_url"`

	// PreviousReport contains metadata about the earlier report.
	PreviousReport ReportMetadata `json:"previous_report"`

	// CurrentReport contains metadata about the later report.
	CurrentReport ReportMetadata `json:"current_report"`

	// NewIssues contains issues that are new in the current report.
	NewIssues []model.Issue `json:"new_issues,omitempty"`

	// ResolvedIssues contains issues that were in the previous report but not in current.
	ResolvedIssues []model.Issue `json:"resolved_issues,omitempty"`

	// UnchangedCount is the number of issues that remain unchanged.
	UnchangedCount int `json:"unchanged_count"`

	// ScoreChange describes the overall change between the reports.
	ScoreChange ScoreChange `json:"score_change"`
}

// ReportMetadata contains metadata about one report for comparison display.
type ReportMetadata struct {
	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Score is the accessibility score in [0,100].
	Score int `json:"score"`

	// BandText is the human-readable score rating.
	BandText string `json:"band"`

	// TotalIssues is the total number of issues in this report.
	TotalIssues int `json:"total_issues"`

	// HighCount is the number of high severity issues.
	HighCount int `json:"high_count"`

	// MediumCount is the number of medium severity issues.
	MediumCount int `json:"medium_count"`

	// LowCount is the number of low severity issues.
	LowCount int `json:"low_count"`
}

// ScoreChange describes the change between two reports.
type ScoreChange struct {
	// Direction is "improved", "worsened", or "unchanged".
	Direction string `json:"direction"`

	// ScoreDelta is the change in the accessibility score.
	ScoreDelta int `json:"score_delta"`

	// HighDelta is the change in high severity issue count.
	HighDelta int `json:"high_delta"`

	// MediumDelta is the change in medium severity issue count.
	MediumDelta int `json:"medium_delta"`

	// LowDelta is the change in low severity issue count.
	LowDelta int `json:"low_delta"`
}

// compareResults compares two saved reports and generates a comparison result.
func compareResults(previous, current *report.Envelope) *ComparisonResult {
	result := &ComparisonResult{
		TargetURL:      current.Result.URL,
		PreviousReport: reportMetadata(previous),
		CurrentReport:  reportMetadata(current),
	}

	// Build issue maps for comparison
	previousIssues := make(map[string]model.Issue)
	currentIssues := make(map[string]model.Issue)

	for _, issue := range previous.Result.Issues {
		previousIssues[issueKey(issue)] = issue
	}
	for _, issue := range current.Result.Issues {
		currentIssues[issueKey(issue)] = issue
	}

	// Find new issues (in current but not in previous)
	for key, issue := range currentIssues {
		if _, exists := previousIssues[key]; !exists {
			result.NewIssues = append(result.NewIssues, issue)
		}
	}

	// Find resolved issues (in previous but not in current)
	for key, issue := range previousIssues {
		if _, exists := currentIssues[key]; !exists {
			result.ResolvedIssues = append(result.ResolvedIssues, issue)
		} else {
			result.UnchangedCount++
		}
	}

	result.ScoreChange = calculateScoreChange(result.PreviousReport, result.CurrentReport)

	return result
}

// reportMetadata extracts display metadata from a saved report.
func reportMetadata(saved *report.Envelope) ReportMetadata {
	analyzedAt := saved.Result.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = saved.GeneratedAt
	}
	return ReportMetadata{
		AnalyzedAt:  analyzedAt,
		Score:       saved.Result.Score,
		BandText:    saved.Result.BandText,
		TotalIssues: saved.Result.TotalIssues(),
		HighCount:   saved.Result.HighCount,
		MediumCount: saved.Result.MediumCount,
		LowCount:    saved.Result.LowCount,
	}
}

// issueKey generates a unique key for an issue for comparison purposes.
// Description is derived from Code, so Code plus Element identifies an
// issue occurrence.
func issueKey(issue model.Issue) string {
	return issue.Code + "|" + issue.Element
}

// calculateScoreChange calculates the change between two reports.
func calculateScoreChange(previous, current ReportMetadata) ScoreChange {
	change := ScoreChange{
		ScoreDelta:  current.Score - previous.Score,
		HighDelta:   current.HighCount - previous.HighCount,
		MediumDelta: current.MediumCount - previous.MediumCount,
		LowDelta:    current.LowCount - previous.LowCount,
	}

	// The accessibility score is the primary signal: higher is better.
	// When the score is unchanged, fall back to a weighted issue count
	// where high severity changes have more weight; lower is better.
	switch {
	case change.ScoreDelta > 0:
		change.Direction = scoreDirectionImproved
	case change.ScoreDelta < 0:
		change.Direction = scoreDirectionWorsened
	default:
		previousWeight := previous.HighCount*50 + previous.MediumCount*10 + previous.LowCount*5
		currentWeight := current.HighCount*50 + current.MediumCount*10 + current.LowCount*5

		if currentWeight < previousWeight {
			change.Direction = scoreDirectionImproved
		} else if currentWeight > previousWeight {
			change.Direction = scoreDirectionWorsened
		} else {
			change.Direction = scoreDirectionUnchanged
		}
	}

	return change
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(result *ComparisonResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(result *ComparisonResult) error {
	fmt.Printf("# Analysis Comparison: %s\n\n", result.TargetURL)

	// Score change summary
	fmt.Println("## Summary")
	fmt.Printf("\n**Status:** %s\n\n", formatScoreDirection(result.ScoreChange.Direction))
	fmt.Printf("**Score:** %d (%s) → %d (%s)\n\n",
		result.PreviousReport.Score, result.PreviousReport.BandText,
		result.CurrentReport.Score, result.CurrentReport.BandText)

	// Report metadata table
	fmt.Println("| Metric | Previous | Current | Change |")
	fmt.Println("|--------|----------|---------|--------|")
	fmt.Printf("| Date | %s | %s | - |\n",
		result.PreviousReport.AnalyzedAt.Format("2006-01-02 15:04"),
		result.CurrentReport.AnalyzedAt.Format("2006-01-02 15:04"))
	fmt.Printf("| Score | %d | %d | %s |\n",
		result.PreviousReport.Score,
		result.CurrentReport.Score,
		formatDelta(result.ScoreChange.ScoreDelta))
	fmt.Printf("| High | %d | %d | %s |\n",
		result.PreviousReport.HighCount,
		result.CurrentReport.HighCount,
		formatDelta(result.ScoreChange.HighDelta))
	fmt.Printf("| Medium | %d | %d | %s |\n",
		result.PreviousReport.MediumCount,
		result.CurrentReport.MediumCount,
		formatDelta(result.ScoreChange.MediumDelta))
	fmt.Printf("| Low | %d | %d | %s |\n",
		result.PreviousReport.LowCount,
		result.CurrentReport.LowCount,
		formatDelta(result.ScoreChange.LowDelta))
	fmt.Printf("| **Total** | **%d** | **%d** | **%s** |\n",
		result.PreviousReport.TotalIssues,
		result.CurrentReport.TotalIssues,
		formatDelta(result.CurrentReport.TotalIssues-result.PreviousReport.TotalIssues))

	// New issues
	if len(result.NewIssues) > 0 {
		fmt.Printf("\n## New Issues (%d)\n\n", len(result.NewIssues))
		for _, issue := range result.NewIssues {
			fmt.Printf("- **[%s]** %s\n", issue.SeverityText, issue.Title)
			if issue.Element != "" {
				fmt.Printf("  - Element: `%s`\n", issue.Element)
			}
		}
	}

	// Resolved issues
	if len(result.ResolvedIssues) > 0 {
		fmt.Printf("\n## Resolved Issues (%d)\n\n", len(result.ResolvedIssues))
		for _, issue := range result.ResolvedIssues {
			fmt.Printf("- ~~**[%s]** %s~~\n", issue.SeverityText, issue.Title)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\n---\n\n*%d issues unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(result *ComparisonResult) error {
	fmt.Printf("Analysis Comparison: %s\n", result.TargetURL)
	fmt.Println(strings.Repeat("=", 60))

	// Score change summary
	fmt.Printf("\nStatus: %s\n", formatScoreDirection(result.ScoreChange.Direction))
	fmt.Printf("Score:  %d (%s) -> %d (%s)\n",
		result.PreviousReport.Score, result.PreviousReport.BandText,
		result.CurrentReport.Score, result.CurrentReport.BandText)

	// Report dates
	fmt.Printf("\nPrevious report: %s\n", result.PreviousReport.AnalyzedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Current report:  %s\n", result.CurrentReport.AnalyzedAt.Format("2006-01-02 15:04:05"))

	// Summary table
	fmt.Println("\nIssue Summary:")
	fmt.Printf("  %-10s  %-10s  %-10s  %-10s\n", "Severity", "Previous", "Current", "Change")
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "High",
		result.PreviousReport.HighCount, result.CurrentReport.HighCount,
		formatDelta(result.ScoreChange.HighDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Medium",
		result.PreviousReport.MediumCount, result.CurrentReport.MediumCount,
		formatDelta(result.ScoreChange.MediumDelta))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Low",
		result.PreviousReport.LowCount, result.CurrentReport.LowCount,
		formatDelta(result.ScoreChange.LowDelta))
	fmt.Println("  " + strings.Repeat("-", 45))
	fmt.Printf("  %-10s  %-10d  %-10d  %-10s\n", "Total",
		result.PreviousReport.TotalIssues, result.CurrentReport.TotalIssues,
		formatDelta(result.CurrentReport.TotalIssues-result.PreviousReport.TotalIssues))

	// New issues
	if len(result.NewIssues) > 0 {
		fmt.Printf("\nNew Issues (%d):\n", len(result.NewIssues))
		for _, issue := range result.NewIssues {
			fmt.Printf("  [+] [%s] %s\n", issue.SeverityText, issue.Title)
			if issue.Element != "" {
				fmt.Printf("      Element: %s\n", issue.Element)
			}
		}
	}

	// Resolved issues
	if len(result.ResolvedIssues) > 0 {
		fmt.Printf("\nResolved Issues (%d):\n", len(result.ResolvedIssues))
		for _, issue := range result.ResolvedIssues {
			fmt.Printf("  [-] [%s] %s\n", issue.SeverityText, issue.Title)
		}
	}

	// Unchanged count
	if result.UnchangedCount > 0 {
		fmt.Printf("\nUnchanged: %d issues\n", result.UnchangedCount)
	}

	return nil
}

// formatScoreDirection formats the score change direction for display.
func formatScoreDirection(direction string) string {
	switch direction {
	case scoreDirectionImproved:
		return "IMPROVED (accessibility increased)"
	case scoreDirectionWorsened:
		return "WORSENED (accessibility decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	} else if delta < 0 {
		return strconv.Itoa(delta)
	}
	return "0"
}
