package report

import (
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/a11yscan/internal/model"
)

// Writer renders one AnalysisResult to some destination. Implementations
// differ only in format (terminal text, JSON, Markdown); the byte count lets
// callers compose them the way io.Writer users expect.
type Writer interface {
	// Write renders the result and reports the bytes written.
	Write(result *model.AnalysisResult) (int, error)
}

// MultiWriter fans one result out to several Writers, e.g. a terminal
// report plus a JSON file in the same run. It is a separate type rather
// than io.MultiWriter because the fan-out happens at the result level,
// before any format-specific encoding.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer writing to every given Writer in order.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the result through each writer, stopping at the first
// failure. The returned count sums everything written up to that point.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	written := 0
	for _, w := range m.writers {
		n, err := w.Write(result)
		written += n
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// baseWriter holds the destination shared by the concrete writers.
type baseWriter struct {
	out io.Writer
}

func newBaseWriter(out io.Writer) baseWriter {
	return baseWriter{out: out}
}

// displayLabel turns an enum slug such as "needs-improvement" into a
// human-readable label ("Needs Improvement"). The caser is built per call;
// cases.Caser is stateful and must not be shared across goroutines.
func displayLabel(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(slug, "-", " "))
}
