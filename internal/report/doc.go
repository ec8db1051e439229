// Package report renders analysis results for people and for tools.
//
// Three formats share the Writer interface: SimpleWriter prints a
// severity-grouped terminal report, JSONWriter emits the result (or, via
// EnvelopeWriter, a versioned envelope that `a11yscan compare` reads back),
// and MarkdownWriter produces a GitHub-flavored document with summary
// tables and a severity chart. The shapes being rendered live in the model
// package; writers only format, so a new format never touches the data.
// MultiWriter composes writers when one run needs several outputs.
package report
