package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the dotfile name searched in the working and home
// directories.
const DefaultConfigFile = ".a11yscan"

// xdgConfigFileName is used inside the XDG config directory, where dotfiles
// are not conventional.
const xdgConfigFileName = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
// Callers decide how hard to fail: an explicitly requested file that is
// missing is an error, an absent default file is not.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile parses the YAML configuration file at path into a File.
// A missing file maps to ErrConfigNotFound; other read or parse failures
// are returned as-is. The Sites map of the result is always non-nil, so
// callers can index it without a guard.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // the path is chosen by the user running the command
	if os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, err
	}

	cf := &File{}
	if err := yaml.Unmarshal(data, cf); err != nil {
		return nil, err
	}
	if cf.Sites == nil {
		cf.Sites = make(map[string]SiteConfig)
	}
	return cf, nil
}

// FindConfigFile resolves which configuration file to load.
//
// A non-empty configPath short-circuits the search: it is returned when it
// exists and "" when it does not, leaving the missing-explicit-file error to
// the caller. Otherwise the first existing candidate wins, in order:
// DefaultConfigFile in the working directory, config.yaml in the XDG config
// directory, DefaultConfigFile in the home directory. Returns "" when no
// candidate exists.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if fileExists(configPath) {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFileName))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, candidate := range candidates {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
