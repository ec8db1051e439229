// Package log builds the CLI's slog loggers and guarantees that credential
// material never reaches the log output.
//
// Analyses against private service deployments carry an API key, and verbose
// mode logs the request flow in detail. SecureHandler sits between the logger
// and the formatting handler, masking attributes whose key names credential
// material (api_key, authorization, cookie, ...) and string values shaped
// like secrets (bearer tokens, JWTs, AWS key IDs) regardless of key. Masking
// is unconditional: a log shared in a bug report must be safe to paste as-is.
//
// Typical wiring:
//
//	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
//	slog.SetDefault(logger)
//
//	logger.Debug("submitting analysis request",
//	    "x-api-key", apiKey, // logged as ***REDACTED***
//	    "url", target,
//	)
package log
