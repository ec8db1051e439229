package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/nao1215/a11yscan/internal/analyzer"
	"github.com/nao1215/a11yscan/internal/client"
	"github.com/nao1215/a11yscan/internal/config"
	"github.com/nao1215/a11yscan/internal/log"
	"github.com/nao1215/a11yscan/internal/model"
	"github.com/nao1215/a11yscan/internal/notify"
	"github.com/nao1215/a11yscan/internal/report"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a web page for accessibility issues",
		Long: `Analyze submits a URL to the accessibility analysis service and reports
the issues it finds, grouped by severity, together with an overall score
and remediation suggestions.

Examples:
  # Analyze a page with the default local service
  a11yscan analyze https://example.com

  # Use a hosted analysis service with an API key
  a11yscan analyze -e https://a11y.example.org -k mykey https://example.com

  # Save a JSON report for later comparison
  a11yscan analyze --json -o reports/before.json https://example.com

  # Output a Markdown report
  a11yscan analyze --markdown https://example.com

Configuration file (.a11yscan) example:
  defaults:
    endpoint: "https://a11y.example.org"
    timeout: 60
  sites:
    intranet.example.com:
      apiKey: "internal-key"
      timeout: 180
      headers:
        X-Team: "platform"`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("endpoint", "e", config.DefaultEndpoint,
		"Analysis service base URL")
	cmd.Flags().StringP("api-key", "k", "",
		"API key sent as the X-Api-Key header")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for the analysis request")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .a11yscan in current or home directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable colored output")
	cmd.Flags().BoolP("quiet", "q", false,
		"Suppress progress output and notifications")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnInterrupt(cancel, logger)

	return runAnalyze(ctx, cfg, logger)
}

// setupLogger creates a logger based on verbosity. API keys and other
// credential-bearing attributes are masked by the secure handler.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// cancelOnInterrupt cancels the in-flight analysis when the user hits
// Ctrl-C or the process receives SIGTERM.
func cancelOnInterrupt(cancel context.CancelFunc, logger *slog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("received shutdown signal, cancelling...")
	cancel()
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig assembles a Config from the command line, then layers the
// configuration file underneath: a flag the user set explicitly always
// wins over a file value.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	if cfg.Endpoint, err = flags.GetString("endpoint"); err != nil {
		return nil, err
	}
	if cfg.APIKey, err = flags.GetString("api-key"); err != nil {
		return nil, err
	}
	if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.NoColor, err = flags.GetBool("no-color"); err != nil {
		return nil, err
	}
	if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// The target may be empty; the analyzer checks that so the user gets
	// the "URL Required" notification instead of a config error.
	cfg.Target = args[0]

	if err := loadSiteFile(cfg); err != nil {
		return nil, err
	}
	applySiteConfig(cmd, cfg)

	return cfg, nil
}

// loadSiteFile populates cfg.SiteConfigs from the configuration file.
// A missing file is only an error when the user asked for that file by
// path; otherwise the search quietly yields an empty configuration.
func loadSiteFile(cfg *config.Config) error {
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
		}
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
		return nil
	}

	file, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.SiteConfigs = file
	return nil
}

// applySiteConfig merges config file values into cfg for the target's
// host. Flags the user set explicitly are left untouched.
func applySiteConfig(cmd *cobra.Command, cfg *config.Config) {
	site := resolveSiteConfig(cfg)

	if !cmd.Flags().Changed("endpoint") && site.Endpoint != "" {
		cfg.Endpoint = site.Endpoint
	}
	if !cmd.Flags().Changed("api-key") && site.APIKey != "" {
		cfg.APIKey = site.APIKey
	}
	if !cmd.Flags().Changed("timeout") && site.Timeout > 0 {
		cfg.Timeout = time.Duration(site.Timeout) * time.Second
	}
}

// resolveSiteConfig returns the merged site configuration for the
// target's host. Falls back to defaults when the host has no entry.
func resolveSiteConfig(cfg *config.Config) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	host := ""
	if target, err := model.NewTargetURL(cfg.Target); err == nil {
		host = target.Host()
	}

	return cfg.SiteConfigs.GetSiteConfig(host)
}

// runAnalyze executes the analysis.
func runAnalyze(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	site := resolveSiteConfig(cfg)

	svc := client.New(cfg.Endpoint,
		client.WithTimeout(cfg.Timeout),
		client.WithUserAgent(cfg.UserAgent),
		client.WithMaxBodySize(cfg.MaxBodySize),
		client.WithAPIKey(cfg.APIKey),
		client.WithHeaders(site.Headers),
		client.WithLogger(logger),
	)

	var notifier notify.Notifier = notify.NewTerminalNotifier(
		notify.WithColor(!cfg.NoColor),
	)
	if cfg.Quiet {
		notifier = notify.NopNotifier{}
	}

	// Progress spinner for interactive runs. Verbose mode logs request
	// flow to stderr instead, and the two would fight over the line.
	var s *spinner.Spinner
	if !cfg.Quiet && !cfg.Verbose {
		s = spinner.New(spinner.CharSets[11], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		s.Suffix = fmt.Sprintf(" Analyzing %s...", cfg.Target)
		notifier = &spinnerNotifier{spinner: s, inner: notifier}
		s.Start()
		defer s.Stop()
	}

	a := analyzer.New(svc,
		analyzer.WithNotifier(notifier),
		analyzer.WithLogger(logger),
	)

	result, err := a.Analyze(ctx, cfg.Target)
	if err != nil {
		// The user already saw the notification; the returned error
		// carries the diagnostic detail and the non-zero exit code.
		return err
	}

	if s != nil {
		s.Stop()
	}

	return outputReport(cfg, result)
}

// spinnerNotifier stops the progress spinner before delivering a
// notification so the spinner frame and the notification don't
// overwrite each other on the same terminal line.
type spinnerNotifier struct {
	spinner *spinner.Spinner
	inner   notify.Notifier
}

// Notify implements the notify.Notifier interface.
func (n *spinnerNotifier) Notify(title, description string, isError bool) {
	if n.spinner.Active() {
		n.spinner.Stop()
	}
	n.inner.Notify(title, description, isError)
}

// outputReport renders the analysis result in the requested format.
func outputReport(cfg *config.Config, result *model.AnalysisResult) error {
	output, closeOutput, err := reportDestination(cfg)
	if err != nil {
		return err
	}
	defer closeOutput()

	_, err = buildReportWriter(cfg, output).Write(result)
	return err
}

// reportDestination opens the report file when one was requested and
// falls back to stdout. The returned func closes the file, if any.
func reportDestination(cfg *config.Config) (*os.File, func(), error) {
	if cfg.ReportFile == "" {
		return os.Stdout, func() {}, nil
	}

	if dir := filepath.Dir(cfg.ReportFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// 0600 because reports can reveal internal URLs that should only be
	// readable by the owner.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// buildReportWriter picks the report format from the configuration.
func buildReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		// The version envelope lets saved reports feed `a11yscan compare`.
		return report.NewEnvelopeWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output,
			report.WithVerbose(cfg.Verbose),
			report.WithColor(cfg.ReportFile == "" && !cfg.NoColor),
		)
	}
}
