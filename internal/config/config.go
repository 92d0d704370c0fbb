package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/openhexa/openhexa-cli/internal/apperr"
	"github.com/openhexa/openhexa-cli/internal/platform"
)

const (
	ConfigFileName = "config.toml"
	CurrentVersion = "1"
	DefaultURL     = "https://app.openhexa.org"
)

// GetConfigDir returns the path to the openhexa config directory
func GetConfigDir() (string, error) {
	return platform.GetConfigDir()
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// ConfigExists checks if the config file exists
func ConfigExists() (bool, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(configPath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// NewConfig creates a config holding only defaults
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Settings: Settings{
			Debug:            false,
			URL:              DefaultURL,
			CurrentWorkspace: "",
		},
		Workspaces: []Workspace{},
	}
}

// Open loads the config file. A missing file yields the defaults; absent
// fields are filled in. A file that cannot be read or decoded is a
// configuration error.
func Open() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "Cannot locate the configuration directory")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewConfig(), nil
		}
		return nil, apperr.Wrap(apperr.KindConfig, err, "Cannot read configuration file %s", configPath)
	}

	cfg, err := Decode(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "Configuration file %s is corrupt", configPath)
	}
	return cfg, nil
}

// Decode parses a config document and applies the load-time migrations.
func Decode(data []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.migrate()
	return &cfg, nil
}

// migrate fills in absent fields and repairs invariants broken by hand edits.
// Migrations only add or drop data that could not be used; they never fail.
func (c *Config) migrate() {
	if c.Version == "" {
		c.Version = CurrentVersion
	}
	if c.Settings.URL == "" {
		c.Settings.URL = DefaultURL
	}

	// Collapse duplicate slugs: first position, last token.
	seen := make(map[string]int, len(c.Workspaces))
	workspaces := make([]Workspace, 0, len(c.Workspaces))
	for _, ws := range c.Workspaces {
		if ws.Slug == "" {
			continue
		}
		if i, ok := seen[ws.Slug]; ok {
			workspaces[i].Token = ws.Token
			continue
		}
		seen[ws.Slug] = len(workspaces)
		workspaces = append(workspaces, ws)
	}
	c.Workspaces = workspaces

	if c.Settings.CurrentWorkspace != "" {
		if _, ok := seen[c.Settings.CurrentWorkspace]; !ok {
			c.Settings.CurrentWorkspace = ""
		}
	}

	for slug := range c.Pipelines {
		if _, ok := seen[slug]; !ok {
			delete(c.Pipelines, slug)
		}
	}
	if len(c.Pipelines) == 0 {
		c.Pipelines = nil
	}
}

// Encode serializes the whole config.
func Encode(cfg *Config) ([]byte, error) {
	if cfg.Workspaces == nil {
		cfg.Workspaces = []Workspace{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the complete config to disk, replacing the previous file
// atomically.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "Cannot locate the configuration directory")
	}
	if err := platform.MkdirSecure(configDir); err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "Cannot create configuration directory %s", configDir)
	}

	data, err := Encode(cfg)
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "Cannot encode configuration")
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	if err := platform.WriteFileAtomic(configPath, data); err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "Cannot write configuration file %s", configPath)
	}
	slog.Debug("config saved", "path", configPath, "workspaces", len(cfg.Workspaces))
	return nil
}

// IsDebug reports whether debug mode is on
func IsDebug(cfg *Config) bool {
	return cfg.Settings.Debug
}

// SetDebug records the debug flag of the current invocation
func (c *Config) SetDebug(debug bool) {
	c.Settings.Debug = debug
}

// URL returns the backend URL
func (c *Config) URL() string {
	return c.Settings.URL
}

// SetURL sets the backend URL
func (c *Config) SetURL(url string) {
	c.Settings.URL = url
}

// CurrentWorkspace returns the active workspace slug, or "" when none is active
func (c *Config) CurrentWorkspace() string {
	return c.Settings.CurrentWorkspace
}
