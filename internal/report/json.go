package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/a11yscan/internal/model"
)

// JSONWriter renders an AnalysisResult as JSON for tool integration.
// Output is compact unless an indent option is given.
type JSONWriter struct {
	baseWriter

	// marshal produces the final byte form; the indent options swap it.
	marshal func(v any) ([]byte, error)
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent switches to indented output with the given per-line prefix
// and per-level indent string.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.marshal = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, prefix, indent)
		}
	}
}

// WithPrettyPrint is WithIndent("", "  "), the form humans read in a
// terminal or a diff.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		marshal:    json.Marshal,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the bare analysis result as JSON.
func (w *JSONWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(result)
}

// writeJSON marshals v and writes it followed by a newline, so compact
// output still terminates cleanly in a terminal or a pipe.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	data, err := w.marshal(v)
	if err != nil {
		return 0, err
	}
	return w.out.Write(append(data, '\n'))
}

// Envelope is the versioned wrapper written by `analyze --json` and read
// back by `a11yscan compare`. The field names are a file-format contract:
// renaming them orphans previously saved reports.
type Envelope struct {
	// Version is the a11yscan version that generated this report.
	Version string `json:"a11yscan_version"`

	// GeneratedAt is when the report file was written. It can differ from
	// AnalysisResult.AnalyzedAt when a stored result is re-rendered.
	GeneratedAt time.Time `json:"generated_at"`

	// Result is the full analysis result.
	Result *model.AnalysisResult `json:"result"`
}

// NewEnvelope wraps result in the versioned envelope, stamped now.
func NewEnvelope(result *model.AnalysisResult, version string) *Envelope {
	return &Envelope{
		Version:     version,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	}
}

// EnvelopeWriter renders each result wrapped in an Envelope.
type EnvelopeWriter struct {
	*JSONWriter

	version string
}

// NewEnvelopeWriter creates an envelope-producing JSON writer carrying the
// given version string.
func NewEnvelopeWriter(output io.Writer, version string, opts ...JSONWriterOption) *EnvelopeWriter {
	return &EnvelopeWriter{
		JSONWriter: NewJSONWriter(output, opts...),
		version:    version,
	}
}

// Write renders the result wrapped in the envelope.
func (w *EnvelopeWriter) Write(result *model.AnalysisResult) (int, error) {
	return w.writeJSON(NewEnvelope(result, w.version))
}
