// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName is the application directory name.
	AppName = "taskpilot"

	// TokenFile is the stored access token filename.
	TokenFile = "token"

	// ServerEnv is the environment variable overriding the API base URL.
	ServerEnv = "TASKPILOT_SERVER"

	// DefaultServer is the API base URL when nothing else is configured.
	DefaultServer = "http://localhost:8000"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Server is the API base URL, without a trailing slash.
	Server string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory
// and server URL. If configDir is empty, uses XDG_CONFIG_HOME/taskpilot or
// $HOME/.config/taskpilot. If server is empty, falls back to the
// TASKPILOT_SERVER environment variable, then the default.
func New(configDir, server string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	if server == "" {
		server = os.Getenv(ServerEnv)
	}
	if server == "" {
		server = DefaultServer
	}
	return &Config{
		Dir:    dir,
		Server: strings.TrimRight(server, "/"),
	}, nil
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

// TokenPath returns the path to the stored access token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
