package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nao1215/a11yscan/internal/model"
)

// analyzePath is the service route that runs an accessibility analysis.
// The target URL travels in the query string, not the body, because the
// service treats analysis as an idempotent operation on a resource
// identified by its URL.
const analyzePath = "/api/analyze-url"

// Client talks to the remote accessibility analysis service.
// It owns request construction, response decoding, and the mapping of
// HTTP-level failures onto the package's error types.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (headers, timeouts) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test with httptest servers and mock transports
type Client struct {
	// httpClient performs the actual HTTP requests.
	httpClient *http.Client

	// endpoint is the base URL of the analysis service, without the
	// API path (e.g., "http://localhost:8080").
	endpoint string

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from a misbehaving service.
	maxBodySize int64

	// apiKey, when non-empty, is sent as the X-Api-Key header.
	apiKey string

	// headers holds extra headers injected into every request,
	// typically from per-site configuration.
	headers map[string]string

	// timeout overrides the HTTP client timeout when non-zero.
	timeout time.Duration

	// logger is used for structured logging of request flow.
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
// Use this to control timeouts, proxies, or to inject a test transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout.
// It applies to whichever HTTP client ends up in use, including one
// supplied via WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
// Responses larger than this are truncated before decoding, which
// surfaces as ErrMalformedResponse.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithAPIKey sets the API key sent as the X-Api-Key header.
// An empty key disables the header entirely.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHeaders sets extra headers injected into every request.
// Use this for per-site credentials or routing headers.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithLogger sets a custom logger for the client.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new Client for the analysis service at the given endpoint.
//
// The endpoint is the service base URL (e.g., "http://localhost:8080");
// a trailing slash is tolerated. Endpoint validity is the config layer's
// job, so New never fails: a bad endpoint surfaces as ErrServiceUnreachable
// on the first call.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		endpoint:    strings.TrimSuffix(endpoint, "/"),
		userAgent:   "a11yscan/1.0",
		maxBodySize: 1 * 1024 * 1024, // 1MB
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	// Wrap the transport so the API key and site headers reach every
	// request, including redirects.
	if c.apiKey != "" || len(c.headers) > 0 {
		next := c.httpClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		c.httpClient.Transport = &credentialTransport{
			next:    next,
			apiKey:  c.apiKey,
			headers: c.headers,
		}
	}

	return c
}

// Endpoint returns the configured service base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// AnalyzeURL submits the target URL to the analysis service and returns
// the raw, untransformed result.
//
// The request is a POST to {endpoint}/api/analyze-url with the target in
// the url query parameter and an empty body. Any 2xx response with a
// decodable JSON body is a success; everything else maps onto one of the
// package error types:
//   - transport failure: ErrServiceUnreachable
//   - non-2xx status: ErrUnexpectedStatus
//   - undecodable body: ErrMalformedResponse
func (c *Client) AnalyzeURL(ctx context.Context, target model.TargetURL) (*model.RawResult, error) {
	query := url.Values{}
	query.Set("url", target.String())
	requestURL := c.endpoint + analyzePath + "?" + query.Encode()

	// The body is empty: the service only needs the URL. We still send
	// Content-Type because the service rejects requests without it.
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("submitting analysis request",
		"target", target.String(),
		"endpoint", c.endpoint,
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body so the connection can be reused,
		// but don't surface it: all failures look the same to the user.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4*1024))
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	// Read body with size limit
	bodyReader := io.LimitReader(resp.Body, c.maxBodySize)
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrServiceUnreachable, err)
	}

	var raw model.RawResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	c.logger.Debug("analysis response received",
		"status", resp.StatusCode,
		"score", raw.Score,
		"issues", len(raw.Issues),
		"elapsed", time.Since(start),
	)

	return &raw, nil
}
