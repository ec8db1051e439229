package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Notifier is the sink for user-facing notifications. The orchestrator emits
// exactly one notification per analysis attempt; how it is rendered is the
// sink's business.
//
// Design decision: We keep this a one-method interface so the orchestrator
// stays independent of presentation. The CLI plugs in a TerminalNotifier,
// tests plug in recorders, quiet mode plugs in NopNotifier.
type Notifier interface {
	// Notify delivers one notification. isError selects the failure styling.
	Notify(title, description string, isError bool)
}

// TerminalNotifier renders notifications as single marker-prefixed lines.
// Output goes to stderr by default so reports on stdout stay clean for
// piping.
type TerminalNotifier struct {
	out     io.Writer
	colored bool
}

// TerminalOption configures a TerminalNotifier.
type TerminalOption func(*TerminalNotifier)

// WithWriter redirects notification output. Default is os.Stderr.
func WithWriter(w io.Writer) TerminalOption {
	return func(n *TerminalNotifier) {
		n.out = w
	}
}

// WithColor toggles colored markers. Default is enabled.
func WithColor(enabled bool) TerminalOption {
	return func(n *TerminalNotifier) {
		n.colored = enabled
	}
}

// NewTerminalNotifier creates a TerminalNotifier.
func NewTerminalNotifier(opts ...TerminalOption) *TerminalNotifier {
	n := &TerminalNotifier{
		out:     os.Stderr,
		colored: true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify writes one notification line: marker, title, description.
func (n *TerminalNotifier) Notify(title, description string, isError bool) {
	marker := "✓"
	paint := color.New(color.FgGreen)
	if isError {
		marker = "✗"
		paint = color.New(color.FgRed)
	}

	if !n.colored {
		fmt.Fprintf(n.out, "%s %s: %s\n", marker, title, description)
		return
	}
	fmt.Fprintf(n.out, "%s %s: %s\n", paint.Sprint(marker), paint.Sprint(title), description)
}

// NopNotifier discards all notifications. Used by quiet mode and as a safe
// default when no sink is configured.
type NopNotifier struct{}

// Notify implements Notifier and does nothing.
func (NopNotifier) Notify(title, description string, isError bool) {}
