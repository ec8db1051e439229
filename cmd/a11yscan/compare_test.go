package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/report"
)

// TestNewCompareCmd tests the compare command metadata and flags.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("command metadata", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "compare <before.json> <after.json>" {
			t.Errorf("expected use 'compare <before.json> <after.json>', got %q", cmd.Use)
		}
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
		if cmd.Args == nil {
			t.Error("expected Args validator")
		}
	})

	t.Run("registers the format flags", func(t *testing.T) {
		t.Parallel()

		flags := []struct {
			name      string
			shorthand string
		}{
			{name: "json", shorthand: "j"},
			{name: "markdown", shorthand: "m"},
		}
		for _, want := range flags {
			flag := cmd.Flags().Lookup(want.name)
			if flag == nil {
				t.Errorf("expected %s flag to be registered", want.name)
				continue
			}
			if flag.Shorthand != want.shorthand {
				t.Errorf("%s flag: expected shorthand %q, got %q", want.name, want.shorthand, flag.Shorthand)
			}
		}
	})
}

// savedReport builds a report envelope the way 'analyze --json' writes it.
func savedReport(url string, score float64, analyzedAt time.Time, issues ...model.RawIssue) *report.Envelope {
	result := model.NewAnalysisResult(model.RawResult{Score: score, Issues: issues})
	result.URL = url
	result.AnalyzedAt = analyzedAt
	return report.NewEnvelope(result, "1.0.0")
}

// writeSavedReport writes a report envelope to a file and returns its path.
func writeSavedReport(t *testing.T, dir, name string, saved *report.Envelope) string {
	t.Helper()

	data, err := json.Marshal(saved)
	if err != nil {
		t.Fatalf("failed to marshal report: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write report: %v", err)
	}
	return path
}

// TestLoadSavedReport tests reading saved report files.
func TestLoadSavedReport(t *testing.T) {
	t.Parallel()

	t.Run("loads a valid report", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		path := writeSavedReport(t, tmpDir, "report.json",
			savedReport("https://example.com", 85, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)))

		saved, err := loadSavedReport(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if saved.Result == nil {
			t.Fatal("expected non-nil result")
		}
		if saved.Result.Score != 85 {
			t.Errorf("expected score 85, got %d", saved.Result.Score)
		}
		if saved.Result.URL != "https://example.com" {
			t.Errorf("expected URL 'https://example.com', got %q", saved.Result.URL)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := loadSavedReport(filepath.Join(t.TempDir(), "missing.json"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("returns error for invalid JSON", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		_, err := loadSavedReport(path)
		if err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("returns error for JSON without result", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "empty.json")
		if err := os.WriteFile(path, []byte(`{"hello": 1}`), 0o600); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		_, err := loadSavedReport(path)
		if err == nil {
			t.Fatal("expected error for JSON without result")
		}
		if !strings.Contains(err.Error(), "not a saved analysis report") {
			t.Errorf("expected 'not a saved analysis report' error, got %v", err)
		}
	})
}

// TestCompareResults tests the report diff.
func TestCompareResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		previousScore     float64
		currentScore      float64
		previousIssues    []model.RawIssue
		currentIssues     []model.RawIssue
		wantNewCount      int
		wantResolvedCount int
		wantUnchanged     int
		wantDirection     string
	}{
		{
			name:              "no changes when reports are identical",
			previousScore:     80,
			currentScore:      80,
			previousIssues:    []model.RawIssue{{Type: "LOW_CONTRAST", Element: "<p class=\"subtle\">"}},
			currentIssues:     []model.RawIssue{{Type: "LOW_CONTRAST", Element: "<p class=\"subtle\">"}},
			wantNewCount:      0,
			wantResolvedCount: 0,
			wantUnchanged:     1,
			wantDirection:     "unchanged",
		},
		{
			name:              "detects new issues",
			previousScore:     90,
			currentScore:      75,
			previousIssues:    []model.RawIssue{},
			currentIssues:     []model.RawIssue{{Type: "MISSING_ALT_TEXT", Element: "<img>"}},
			wantNewCount:      1,
			wantResolvedCount: 0,
			wantUnchanged:     0,
			wantDirection:     "worsened",
		},
		{
			name:              "detects resolved issues",
			previousScore:     75,
			currentScore:      90,
			previousIssues:    []model.RawIssue{{Type: "MISSING_ALT_TEXT", Element: "<img>"}},
			currentIssues:     []model.RawIssue{},
			wantNewCount:      0,
			wantResolvedCount: 1,
			wantUnchanged:     0,
			wantDirection:     "improved",
		},
		{
			name:          "handles mixed changes",
			previousScore: 80,
			currentScore:  80,
			previousIssues: []model.RawIssue{
				{Type: "LOW_CONTRAST", Element: "<p>"},
				{Type: "MISSING_ARIA_LABEL", Element: "<button>"},
			},
			currentIssues: []model.RawIssue{
				{Type: "LOW_CONTRAST", Element: "<p>"},
				{Type: "MISSING_ALT_TEXT", Element: "<img>"},
			},
			wantNewCount:      1,
			wantResolvedCount: 1,
			wantUnchanged:     1,
			wantDirection:     "worsened",
		},
		{
			name:              "weighted severity decides ties",
			previousScore:     80,
			currentScore:      80,
			previousIssues:    []model.RawIssue{{Type: "MISSING_ALT_TEXT", Element: "<img>"}},
			currentIssues:     []model.RawIssue{{Type: "MISSING_ARIA_LABEL", Element: "<button>"}},
			wantNewCount:      1,
			wantResolvedCount: 1,
			wantUnchanged:     0,
			wantDirection:     "improved",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			previous := savedReport("https://example.com", tt.previousScore,
				time.Now().Add(-24*time.Hour), tt.previousIssues...)
			current := savedReport("https://example.com", tt.currentScore,
				time.Now(), tt.currentIssues...)

			result := compareResults(previous, current)

			if len(result.NewIssues) != tt.wantNewCount {
				t.Errorf("NewIssues count: got %d, want %d", len(result.NewIssues), tt.wantNewCount)
			}
			if len(result.ResolvedIssues) != tt.wantResolvedCount {
				t.Errorf("ResolvedIssues count: got %d, want %d", len(result.ResolvedIssues), tt.wantResolvedCount)
			}
			if result.UnchangedCount != tt.wantUnchanged {
				t.Errorf("UnchangedCount: got %d, want %d", result.UnchangedCount, tt.wantUnchanged)
			}
			if result.ScoreChange.Direction != tt.wantDirection {
				t.Errorf("ScoreChange.Direction: got %q, want %q", result.ScoreChange.Direction, tt.wantDirection)
			}
		})
	}
}

// TestIssueKey tests issue identity for the diff.
func TestIssueKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		issue model.Issue
		want  string
	}{
		{
			name:  "generates key with all fields",
			issue: model.Issue{Code: "MISSING_ALT_TEXT", Element: "<img src=\"x.png\">"},
			want:  "MISSING_ALT_TEXT|<img src=\"x.png\">",
		},
		{
			name:  "handles empty element",
			issue: model.Issue{Code: "LOW_CONTRAST"},
			want:  "LOW_CONTRAST|",
		},
		{
			name:  "handles empty code",
			issue: model.Issue{Element: "<p>"},
			want:  "|<p>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := issueKey(tt.issue)
			if got != tt.want {
				t.Errorf("issueKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCalculateScoreChange tests direction and delta calculation.
func TestCalculateScoreChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		previous      ReportMetadata
		current       ReportMetadata
		wantDirection string
	}{
		{
			name:          "unchanged when identical",
			previous:      ReportMetadata{Score: 80, HighCount: 1, MediumCount: 2},
			current:       ReportMetadata{Score: 80, HighCount: 1, MediumCount: 2},
			wantDirection: "unchanged",
		},
		{
			name:          "improved when score increases",
			previous:      ReportMetadata{Score: 70},
			current:       ReportMetadata{Score: 85},
			wantDirection: "improved",
		},
		{
			name:          "worsened when score decreases",
			previous:      ReportMetadata{Score: 85},
			current:       ReportMetadata{Score: 70},
			wantDirection: "worsened",
		},
		{
			name:          "improved when score tied but high count drops",
			previous:      ReportMetadata{Score: 80, HighCount: 2},
			current:       ReportMetadata{Score: 80, HighCount: 1, LowCount: 3},
			wantDirection: "improved",
		},
		{
			name:          "worsened when score tied but medium count grows",
			previous:      ReportMetadata{Score: 80, MediumCount: 1},
			current:       ReportMetadata{Score: 80, MediumCount: 3},
			wantDirection: "worsened",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			change := calculateScoreChange(tt.previous, tt.current)
			if change.Direction != tt.wantDirection {
				t.Errorf("Direction: got %q, want %q", change.Direction, tt.wantDirection)
			}
		})
	}
}

// TestCalculateScoreChangeDeltas tests that all deltas are computed.
func TestCalculateScoreChangeDeltas(t *testing.T) {
	t.Parallel()

	previous := ReportMetadata{Score: 70, HighCount: 2, MediumCount: 1, LowCount: 3}
	current := ReportMetadata{Score: 85, HighCount: 1, MediumCount: 2, LowCount: 0}

	change := calculateScoreChange(previous, current)

	if change.ScoreDelta != 15 {
		t.Errorf("ScoreDelta: got %d, want 15", change.ScoreDelta)
	}
	if change.HighDelta != -1 {
		t.Errorf("HighDelta: got %d, want -1", change.HighDelta)
	}
	if change.MediumDelta != 1 {
		t.Errorf("MediumDelta: got %d, want 1", change.MediumDelta)
	}
	if change.LowDelta != -3 {
		t.Errorf("LowDelta: got %d, want -3", change.LowDelta)
	}
}

// TestFormatDelta tests delta formatting.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		delta int
		want  string
	}{
		{name: "positive delta", delta: 5, want: "+5"},
		{name: "negative delta", delta: -3, want: "-3"},
		{name: "zero delta", delta: 0, want: "0"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatDelta(tt.delta)
			if got != tt.want {
				t.Errorf("formatDelta(%d) = %q, want %q", tt.delta, got, tt.want)
			}
		})
	}
}

// TestFormatScoreDirection tests direction label formatting.
func TestFormatScoreDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		direction string
		want      string
	}{
		{"improved", "IMPROVED (accessibility increased)"},
		{"worsened", "WORSENED (accessibility decreased)"},
		{"unchanged", "UNCHANGED"},
		{"unknown", "UNCHANGED"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.direction, func(t *testing.T) {
			t.Parallel()

			got := formatScoreDirection(tt.direction)
			if got != tt.want {
				t.Errorf("formatScoreDirection(%q) = %q, want %q", tt.direction, got, tt.want)
			}
		})
	}
}

// TestOutputComparisonText tests the human-readable comparison output.
func TestOutputComparisonText(t *testing.T) {
	// Note: Not using t.Parallel() because this test captures os.Stdout

	result := &ComparisonResult{
		TargetURL: "https://example.com",
		PreviousReport: ReportMetadata{
			AnalyzedAt:  time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Score:       62,
			BandText:    "needs-improvement",
			TotalIssues: 3,
			HighCount:   2,
			MediumCount: 1,
		},
		CurrentReport: ReportMetadata{
			AnalyzedAt:  time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
			Score:       88,
			BandText:    "good",
			TotalIssues: 1,
			MediumCount: 1,
		},
		NewIssues: []model.Issue{},
		ResolvedIssues: []model.Issue{
			{Code: "MISSING_ALT_TEXT", SeverityText: "high", Title: "Missing Alt Text"},
			{Code: "INPUT_MISSING_LABEL", SeverityText: "high", Title: "Missing Input Labels"},
		},
		UnchangedCount: 1,
		ScoreChange: ScoreChange{
			Direction:  "improved",
			ScoreDelta: 26,
			HighDelta:  -2,
		},
	}

	// Capture output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := outputComparisonText(result)

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("outputComparisonText() error = %v", err)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()

	// Verify key elements are present
	expectedStrings := []string{
		"https://example.com",
		"IMPROVED",
		"62 (needs-improvement) -> 88 (good)",
		"Resolved Issues (2)",
		"Missing Alt Text",
		"Missing Input Labels",
		"Unchanged: 1 issues",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("output missing expected string: %q", expected)
		}
	}
}

// TestOutputComparisonJSON tests the JSON comparison output.
func TestOutputComparisonJSON(t *testing.T) {
	// Note: Not using t.Parallel() because this test captures os.Stdout

	result := &ComparisonResult{
		TargetURL: "https://example.com",
		PreviousReport: ReportMetadata{
			AnalyzedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Score:      90,
		},
		CurrentReport: ReportMetadata{
			AnalyzedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
			Score:      75,
		},
		ScoreChange: ScoreChange{Direction: "worsened", ScoreDelta: -15},
	}

	// Capture output
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := outputComparisonJSON(result)

	w.Close()
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("outputComparisonJSON() error = %v", err)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	output := buf.String()

	// Verify it's valid JSON with expected fields
	if !strings.Contains(output, `"target_url": "https://example.com"`) {
		t.Error("JSON output missing target_url field")
	}
	if !strings.Contains(output, `"direction": "worsened"`) {
		t.Error("JSON output missing score change direction")
	}
}

// TestOutputComparisonMarkdown tests the Markdown comparison output.
func TestOutputComparisonMarkdown(t *testing.T) {
	// Note: Not using t.Parallel() because this test captures os.Stdout

	result := &ComparisonResult{
		TargetURL: "https://example.com",
		PreviousReport: ReportMetadata{
			AnalyzedAt:  time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
			Score:       72,
			BandText:    "good",
			TotalIssues: 2,
			HighCount:   1,
			MediumCount: 1,
		},
		CurrentReport: ReportMetadata{
			AnalyzedAt:  time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
			Score:       91,
			BandText:    "excellent",
			TotalIssues: 1,
			MediumCount: 1,
		},
		NewIssues: []model.Issue{
			{Code: "LOW_CONTRAST", SeverityText: "medium", Title: "Low Color Contrast", Element: "<p class=\"subtle\">"},
		},
		ResolvedIssues: []model.Issue{
			{Code: "MISSING_ALT_TEXT", SeverityText: "high", Title: "Missing Alt Text"},
		},
		UnchangedCount: 1,
		ScoreChange: ScoreChange{
			Direction:  "improved",
			ScoreDelta: 19,
			HighDelta:  -1,
		},
	}

	// Capture output
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	mdErr := outputComparisonMarkdown(result)

	w.Close()
	os.Stdout = oldStdout

	if mdErr != nil {
		t.Fatalf("outputComparisonMarkdown() error = %v", mdErr)
	}

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	r.Close()
	output := buf.String()

	// Verify markdown elements
	expectedStrings := []string{
		"# Analysis Comparison: https://example.com",
		"## Summary",
		"**Status:**",
		"**Score:** 72 (good) → 91 (excellent)",
		"| Metric | Previous | Current | Change |",
		"## New Issues (1)",
		"## Resolved Issues (1)",
		"Low Color Contrast",
		"Element: `<p class=\"subtle\">`",
		"*1 issues unchanged*",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("markdown output missing expected string: %q\nOutput: %s", expected, output)
		}
	}
}

// TestRunCompareCmd tests the compare command end to end on saved files.
func TestRunCompareCmd(t *testing.T) {
	// Note: Not using t.Parallel() because these tests capture os.Stdout

	t.Run("compares two saved reports", func(t *testing.T) {
		tmpDir := t.TempDir()
		before := writeSavedReport(t, tmpDir, "before.json",
			savedReport("https://example.com", 62, time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
				model.RawIssue{Type: "MISSING_ALT_TEXT", Element: "<img>"},
				model.RawIssue{Type: "LOW_CONTRAST", Element: "<p>"}))
		after := writeSavedReport(t, tmpDir, "after.json",
			savedReport("https://example.com", 88, time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
				model.RawIssue{Type: "LOW_CONTRAST", Element: "<p>"}))

		cmd := NewCompareCmd()
		cmd.SetArgs([]string{before, after})

		// Capture output
		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		err := cmd.Execute()

		w.Close()
		os.Stdout = oldStdout

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		output := buf.String()

		if !strings.Contains(output, "IMPROVED") {
			t.Errorf("expected IMPROVED status, got output: %s", output)
		}
		if !strings.Contains(output, "Resolved Issues (1)") {
			t.Errorf("expected one resolved issue, got output: %s", output)
		}
	})

	t.Run("rejects reports for different URLs", func(t *testing.T) {
		tmpDir := t.TempDir()
		before := writeSavedReport(t, tmpDir, "before.json",
			savedReport("https://example.com", 80, time.Now()))
		after := writeSavedReport(t, tmpDir, "after.json",
			savedReport("https://other.example.org", 85, time.Now()))

		cmd := NewCompareCmd()
		cmd.SetArgs([]string{before, after})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for mismatched URLs")
		}
		if !strings.Contains(err.Error(), "different URLs") {
			t.Errorf("expected 'different URLs' error, got %v", err)
		}
	})

	t.Run("returns error for missing report file", func(t *testing.T) {
		cmd := NewCompareCmd()
		cmd.SetArgs([]string{"/nonexistent/before.json", "/nonexistent/after.json"})

		err := cmd.Execute()
		if err == nil {
			t.Error("expected error for missing report files")
		}
	})

	t.Run("outputs JSON with flag", func(t *testing.T) {
		tmpDir := t.TempDir()
		before := writeSavedReport(t, tmpDir, "before.json",
			savedReport("https://example.com", 70, time.Now()))
		after := writeSavedReport(t, tmpDir, "after.json",
			savedReport("https://example.com", 90, time.Now()))

		cmd := NewCompareCmd()
		cmd.SetArgs([]string{"--json", before, after})

		// Capture output
		oldStdout := os.Stdout
		r, w, _ := os.Pipe()
		os.Stdout = w

		err := cmd.Execute()

		w.Close()
		os.Stdout = oldStdout

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		output := buf.String()

		if !strings.Contains(output, `"target_url"`) {
			t.Errorf("expected JSON output, got: %s", output)
		}
		if !strings.Contains(output, `"direction": "improved"`) {
			t.Errorf("expected improved direction in JSON, got: %s", output)
		}
	})
}
