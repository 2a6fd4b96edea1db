// Package config handles XDG configuration directory, file paths and settings.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasktrack"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// NoticeFile holds a one-shot message shown on the next list run.
	NoticeFile = "notice"

	// DefaultBaseURL is the task tracker API prefix.
	DefaultBaseURL = "https://task-tracker-drf-e7e43a44f5b5.herokuapp.com/api/"

	// BaseURLEnvVar overrides DefaultBaseURL.
	BaseURLEnvVar = "TASKTRACK_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the API endpoint prefix. Always ends with a slash.
	BaseURL string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tasktrack or $HOME/.config/tasktrack.
// A .env file in the working directory is loaded first, if present.
func New(configDir string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	base := os.Getenv(BaseURLEnvVar)
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return &Config{Dir: dir, BaseURL: base}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored session token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// NoticePath returns the path to the one-shot notice file.
func (c *Config) NoticePath() string {
	return filepath.Join(c.Dir, NoticeFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
