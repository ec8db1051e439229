package config

// SiteConfig holds per-site configuration for a single target host.
// This allows customizing how the client talks to the analysis service for
// specific pages, e.g. a longer timeout for an asset-heavy site.
type SiteConfig struct {
	// Endpoint overrides the analysis service base URL for this site.
	// Useful when different targets are served by regional deployments.
	Endpoint string `yaml:"endpoint,omitempty"`

	// APIKey overrides the service API key for this site.
	APIKey string `yaml:"apiKey,omitempty"`

	// Timeout overrides the request timeout for this site, in seconds.
	// If zero, the global timeout is used.
	Timeout int `yaml:"timeout,omitempty"`

	// Headers are custom HTTP headers to include in requests to the
	// analysis service when analyzing this site.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .a11yscan configuration file.
type File struct {
	// Sites maps target hostnames to their site-specific configurations.
	// Keys should be the bare hostname (e.g., "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults apply to every host that has no entry of its own, and fill
	// in whatever fields a host entry leaves unset.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig resolves the effective configuration for a target
// hostname: the defaults, with any non-zero value from the host's own
// entry layered on top. Headers merge key by key instead of replacing
// the whole map.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	merged := cf.Defaults

	site, ok := cf.Sites[host]
	if !ok {
		return merged
	}

	if site.Endpoint != "" {
		merged.Endpoint = site.Endpoint
	}
	if site.APIKey != "" {
		merged.APIKey = site.APIKey
	}
	if site.Timeout != 0 {
		merged.Timeout = site.Timeout
	}
	if len(site.Headers) > 0 {
		// Merge into a fresh map; the defaults map must stay untouched
		// for the next lookup.
		headers := make(map[string]string, len(merged.Headers)+len(site.Headers))
		for name, value := range merged.Headers {
			headers[name] = value
		}
		for name, value := range site.Headers {
			headers[name] = value
		}
		merged.Headers = headers
	}

	return merged
}
