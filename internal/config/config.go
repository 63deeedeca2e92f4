// Package config loads the console settings from a YAML file in the user's
// configuration directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "agri-console"
	configFile = "config.yaml"
	logFile    = "console.log"

	DefaultAPIURL       = "http://localhost:5000/api"
	DefaultTimeout      = 15 * time.Second
	DefaultItemsPerPage = 5
)

// Config holds every tunable of the console.
type Config struct {
	APIURL       string        `yaml:"api_url"`
	Timeout      time.Duration `yaml:"timeout"`
	ItemsPerPage int           `yaml:"items_per_page"`
	Offline      bool          `yaml:"offline"`
	LogLevel     string        `yaml:"log_level"`
	LogFile      string        `yaml:"log_file"`

	// Token and Role are the saved session, written by login and registration.
	Token string `yaml:"token,omitempty"`
	Role  string `yaml:"role,omitempty"`
}

// Authenticated reports whether a session token is saved.
func (c Config) Authenticated() bool {
	return strings.TrimSpace(c.Token) != ""
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		APIURL:       DefaultAPIURL,
		Timeout:      DefaultTimeout,
		ItemsPerPage: DefaultItemsPerPage,
	}
}

// ValidationError describes a setting that cannot be used.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s %s", e.Field, e.Reason)
}

// Validate checks the settings for values the console cannot run with.
func (c Config) Validate() error {
	if !c.Offline && strings.TrimSpace(c.APIURL) == "" {
		return ValidationError{Field: "api_url", Reason: "must be set unless offline"}
	}
	if c.Timeout <= 0 {
		return ValidationError{Field: "timeout", Reason: "must be greater than zero"}
	}
	if c.ItemsPerPage <= 0 {
		return ValidationError{Field: "items_per_page", Reason: "must be greater than zero"}
	}
	return nil
}

// Dir returns $XDG_CONFIG_HOME/agri-console, falling back to ~/.config/agri-console.
func Dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// Path returns the default configuration file location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Resolve returns path, or the default file location when path is empty.
func Resolve(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return Path()
}

// LogPath returns the file the interactive console logs to when no log_file
// is configured.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFile), nil
}

// SaveSession stores token and role in the file at path, keeping every other
// setting in that file. An empty token clears the session.
func SaveSession(path, token, role string) error {
	path, err := Resolve(path)
	if err != nil {
		return err
	}
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	cfg.Token = strings.TrimSpace(token)
	cfg.Role = role
	if cfg.Token == "" {
		cfg.Role = ""
	}
	return Save(path, cfg)
}

// Load reads path over the defaults. A missing file is not an error. An
// empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Default()
	path, err := Resolve(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ItemsPerPage == 0 {
		cfg.ItemsPerPage = DefaultItemsPerPage
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
