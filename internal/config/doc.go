// Package config provides configuration structures and utilities for a11yscan.
// It defines the analysis service endpoint, request options, report
// preferences, and per-site overrides loaded from the YAML config file.
package config
