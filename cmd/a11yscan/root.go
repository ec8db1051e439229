package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd assembles the a11yscan command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "a11yscan",
		Short: "Accessibility analysis client for web pages",
		Long: `a11yscan submits URLs to a remote accessibility analysis service and
reports the issues it finds: missing alt text, low contrast, absent form
labels, broken heading structure, and missing ARIA labels.

The service endpoint defaults to http://localhost:8080 and can be changed
with --endpoint or a .a11yscan configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The verbose flag is persistent so every subcommand shares it.
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Turn on debug-level log output")

	cmd.AddCommand(
		NewAnalyzeCmd(),
		NewCompareCmd(),
		NewInitCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
