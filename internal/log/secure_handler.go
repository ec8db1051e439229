package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces any attribute value classified as sensitive.
const MaskValue = "***REDACTED***"

// SecureHandler is an slog.Handler middleware that scrubs credentials out of
// log records before the wrapped handler formats them. Verbose mode logs the
// full request flow, including header material, so scrubbing has to happen at
// the handler layer where every record passes through exactly once.
//
// Wrapping a handler instead of subclassing a logger keeps the whole slog API
// available and works the same regardless of whether the wrapped handler
// formats text or JSON.
type SecureHandler struct {
	// handler receives the scrubbed records.
	handler slog.Handler
}

// NewSecureHandler wraps handler with credential scrubbing.
// A nil handler falls back to slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates the level decision to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rebuilds the record with scrubbed attributes and hands it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	scrubbed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		scrubbed.AddAttrs(h.scrubAttr(a))
		return true
	})
	return h.handler.Handle(ctx, scrubbed)
}

// WithAttrs scrubs the pre-bound attributes, then binds them on the wrapped
// handler. Secrets bound with Logger.With never reach the output either.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		scrubbed[i] = h.scrubAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(scrubbed)}
}

// WithGroup opens the group on the wrapped handler.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

// scrubAttr decides per attribute: group values recurse, sensitive keys are
// masked outright, and string values are masked when they look like a secret
// even under an innocent key.
func (h *SecureHandler) scrubAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		scrubbed := make([]slog.Attr, len(members))
		for i, member := range members {
			scrubbed[i] = h.scrubAttr(member)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(scrubbed...)}
	}

	if isSecretKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString && looksLikeSecret(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}
	return a
}

// secretKeyFragments are matched as substrings of the normalized attribute
// key. Substring matching catches composed keys like "request_auth_header"
// or "x-api-key" without enumerating every spelling.
//
// The bare fragment "key" is deliberately absent: it would mask harmless
// keys like "primary_key" or "hotkey". The credential spellings of "key"
// ("api_key", "apikey", "private") are listed explicitly instead.
var secretKeyFragments = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"auth",
	"credential",
	"api_key",
	"apikey",
	"session",
	"cookie",
	"private",
}

// isSecretKey reports whether an attribute key names credential material.
// Keys are lowercased and dash-separated spellings are folded onto the
// underscore form, so "X-Api-Key" and "api_key" classify identically.
func isSecretKey(key string) bool {
	normalized := strings.ReplaceAll(strings.ToLower(key), "-", "_")
	for _, fragment := range secretKeyFragments {
		if strings.Contains(normalized, fragment) {
			return true
		}
	}
	return false
}

// secretValuePatterns recognize secret-shaped strings by value alone. A key
// check cannot catch a bearer token logged under "detail", so well-known
// credential formats are masked wherever they appear.
var secretValuePatterns = []*regexp.Regexp{
	// HTTP auth schemes carried as a full header value
	regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`),

	// JWTs: two base64url segments with the JSON header prefix
	regexp.MustCompile(`^eyJ[\w-]*\.eyJ[\w-]*\.[\w-]*$`),

	// Bare API keys: long unbroken alphanumeric strings
	regexp.MustCompile(`^[A-Za-z0-9]{32,}$`),

	// AWS access key IDs
	regexp.MustCompile(`^AKIA[0-9A-Z]{16}$`),

	// PEM key material
	regexp.MustCompile(`(?i)-----BEGIN[^-]*(PRIVATE|SECRET)[^-]*KEY-----`),
}

// looksLikeSecret reports whether a value matches a known credential shape.
func looksLikeSecret(value string) bool {
	for _, pattern := range secretValuePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// handlerOptions maps the verbose flag onto a log level: debug when
// verbose, otherwise warnings and up only.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}

// NewSecureLogger builds the standard text logger for the CLI: records go to
// w (normally os.Stderr), credentials are scrubbed, and verbose switches the
// level from warn to debug. The result is safe to install via
// slog.SetDefault.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON formatting, for runs whose
// stderr feeds a log aggregator.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}
