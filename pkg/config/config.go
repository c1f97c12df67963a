// Package config loads the resolver configuration file and the loader's own
// settings.
//
// The configuration file is a JSON object written by the installer:
//
//	{
//	  "default_wine": "/path/to/runners/<runner>/bin/wine",
//	  "default_prefix": "/path/to/bottles/<bottle>"
//	}
//
// Both fields are required. Settings (config path, precedence policy, log
// level) come from WINELOADER_* environment variables and CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
)

const (
	// AppName is used for the configuration directory.
	AppName = "wineloader"
	// FileName is the configuration file name inside the configuration directory.
	FileName = "wine_settings.json"

	keyDefaultWine   = "default_wine"
	keyDefaultPrefix = "default_prefix"
)

// Config holds the fallback runtime and prefix.
type Config struct {
	DefaultWine   string `json:"default_wine"`
	DefaultPrefix string `json:"default_prefix"`
}

// ConfigurationError reports a configuration file that is required but
// missing, or present but unusable.
type ConfigurationError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration '%s': %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("configuration '%s': %s", e.Path, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Dir returns $XDG_CONFIG_HOME/wineloader, defaulting to ~/.config/wineloader.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// DefaultPath returns the configuration file path used when none is set.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration at path. A missing file yields a nil Config
// unless required is set. A file that exists is always validated.
func Load(fsys FileSystem, path string, required bool) (*Config, error) {
	content, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return nil, &ConfigurationError{Path: path, Reason: "file not found", Err: err}
			}
			return nil, nil
		}
		return nil, &ConfigurationError{Path: path, Reason: "failed to read file", Err: err}
	}

	if !gjson.ValidBytes(content) {
		return nil, &ConfigurationError{Path: path, Reason: "invalid JSON"}
	}
	doc := gjson.ParseBytes(content)
	if !doc.IsObject() {
		return nil, &ConfigurationError{Path: path, Reason: "expected a JSON object"}
	}

	var cfg Config
	if cfg.DefaultWine, err = requiredString(doc, keyDefaultWine); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: err.Error()}
	}
	if cfg.DefaultPrefix, err = requiredString(doc, keyDefaultPrefix); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: err.Error()}
	}

	return &cfg, nil
}

func requiredString(doc gjson.Result, key string) (string, error) {
	value := doc.Get(key)
	if !value.Exists() {
		return "", fmt.Errorf("missing required field %q", key)
	}
	if value.Type != gjson.String || value.Str == "" {
		return "", fmt.Errorf("field %q must be a non-empty string", key)
	}
	return value.Str, nil
}

// Write stores cfg at path as indented JSON, creating the parent directory.
func Write(path string, cfg Config) error {
	if cfg.DefaultWine == "" || cfg.DefaultPrefix == "" {
		return errors.New("default wine and default prefix are both required")
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil { //nolint:gosec // config is not secret
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
