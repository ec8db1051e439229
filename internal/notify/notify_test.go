package notify

import (
	"bytes"
	"strings"
	"testing"
)

// TestTerminalNotifier_Notify tests notification rendering without color.
func TestTerminalNotifier_Notify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		isError     bool
		wantMarker  string
	}{
		{
			name:        "success notification",
			title:       "Analysis Complete",
			description: "Found 3 accessibility issues",
			isError:     false,
			wantMarker:  "✓",
		},
		{
			name:        "failure notification",
			title:       "Analysis Failed",
			description: "Could not analyze the URL. Please try again.",
			isError:     true,
			wantMarker:  "✗",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			n := NewTerminalNotifier(WithWriter(&buf), WithColor(false))
			n.Notify(tt.title, tt.description, tt.isError)

			got := buf.String()
			if !strings.HasPrefix(got, tt.wantMarker+" ") {
				t.Errorf("expected marker %q prefix, got %q", tt.wantMarker, got)
			}
			if !strings.Contains(got, tt.title) {
				t.Errorf("expected output to contain title %q, got %q", tt.title, got)
			}
			if !strings.Contains(got, tt.description) {
				t.Errorf("expected output to contain description %q, got %q", tt.description, got)
			}
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("expected trailing newline, got %q", got)
			}
		})
	}
}

// TestTerminalNotifier_Defaults tests option defaults.
func TestTerminalNotifier_Defaults(t *testing.T) {
	t.Parallel()

	n := NewTerminalNotifier()
	if n.out == nil {
		t.Error("expected default writer to be set")
	}
	if !n.colored {
		t.Error("expected color to default to enabled")
	}
}

// TestNopNotifier tests that the no-op sink accepts calls without effect.
func TestNopNotifier(t *testing.T) {
	t.Parallel()

	var n NopNotifier
	n.Notify("title", "description", true)
	n.Notify("title", "description", false)
}
