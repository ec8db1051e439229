// Package main provides the entry point for the a11yscan CLI.
//
// a11yscan submits URLs to a remote accessibility analysis service and
// renders the results as terminal, JSON, or Markdown reports.
//
// Usage:
//
//	a11yscan analyze <url>
//	a11yscan compare <before.json> <after.json>
//
// Run a11yscan --help for the full option listing.
package main

// main is the entry point for a11yscan.
func main() {
	Execute()
}
