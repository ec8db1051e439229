package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen for a typical deployment where the analysis service runs
// alongside the developer's environment; production users point --endpoint
// (or the config file) at their hosted service.
const (
	// DefaultEndpoint is the base URL of the accessibility analysis service.
	// Port 8080 matches the service's own default listen address, so a local
	// service works with zero configuration.
	DefaultEndpoint = "http://localhost:8080"

	// DefaultTimeout is set to 60 seconds because the service fetches and
	// audits the whole target page before responding. A shorter timeout
	// would fail analyses of slow or asset-heavy pages.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent identifies a11yscan in HTTP requests.
	// A descriptive User-Agent lets service operators identify client
	// traffic in their logs.
	DefaultUserAgent = "a11yscan/1.0 (+https://github.com/nao1215/a11yscan)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 1MB is generous for a JSON findings payload while preventing memory
	// exhaustion from a misbehaving endpoint.
	DefaultMaxBodySize = 1 * 1024 * 1024 // 1MB

	// AppName names the per-application subdirectory under the XDG
	// config root.
	AppName = "a11yscan"
)

// Config holds all configuration options for a11yscan.
// It is populated from CLI flags and the configuration file, then handed
// down explicitly; nothing reads it through global state.
//
// Design decision: One flat struct. The option count is small enough
// that grouping into sub-structs would only add dereference noise.
type Config struct {
	// Endpoint is the base URL of the analysis service.
	// The client appends /api/analyze-url to this value.
	Endpoint string

	// APIKey authenticates requests against private service deployments.
	// When empty, no authentication header is sent.
	APIKey string

	// Timeout is the HTTP timeout for the analysis request.
	// This applies to the whole request, including the service's page audit.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 to use the default.
	MaxBodySize int64

	// Target is the page URL to analyze, taken from the CLI argument.
	// Validation of the target belongs to the orchestrator, not here: an
	// empty target must surface as the orchestrator's "URL Required"
	// notification rather than a config error.
	Target string

	// Verbose drops the log level from warn to debug and adds detail to
	// the text report.
	Verbose bool

	// Quiet suppresses the progress spinner and notifications.
	// Report output is unaffected.
	Quiet bool

	// NoColor disables colored terminal output.
	NoColor bool

	// JSONReport selects the JSON report format. At most one of
	// JSONReport and MarkdownReport may be set.
	JSONReport bool

	// MarkdownReport selects the Markdown report format. At most one of
	// JSONReport and MarkdownReport may be set.
	MarkdownReport bool

	// ReportFile, when set, receives the report instead of stdout.
	// Missing parent directories are created on demand.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the XDG config
	// directory, and the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site configurations loaded from the config file.
	// This is populated by LoadConfigFile and consulted by target host.
	SiteConfigs *File
}

// NewConfig returns a Config carrying the package defaults listed above.
// Callers override individual fields afterwards; the zero Config is not
// usable because the endpoint and timeout defaults are non-zero.
func NewConfig() *Config {
	return &Config{
		Endpoint:    DefaultEndpoint,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the per-user configuration directory for
// a11yscan, resolved per the XDG Base Directory rules:
// ~/.config/a11yscan on Linux,
// ~/Library/Application Support/a11yscan on macOS,
// %APPDATA%\a11yscan on Windows.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the sentinel describing
// the first problem found. It runs once after CLI parsing, before any
// request is sent.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}

	// Only an absolute http(s) URL can serve as the service base.
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidEndpoint
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// Zero MaxBodySize means "use the default"; only negatives are invalid.
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
