// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultDebounce     = 100 * time.Millisecond
	DefaultPollInterval = 0
)

// Config represents the mdsee configuration.
type Config struct {
	// Theme is the preferred theme name. Empty uses the catalog default.
	Theme  string       `toml:"theme" yaml:"theme"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Watch  WatchConfig  `toml:"watch" yaml:"watch"`
}

// RenderConfig holds page rendering options.
type RenderConfig struct {
	Template      string `toml:"template" yaml:"template"`             // User page template path (empty = default location)
	HighlightBase string `toml:"highlight_base" yaml:"highlight_base"` // highlight.js stylesheet base URL
}

// WatchConfig holds file watching options.
type WatchConfig struct {
	Debounce     Duration `toml:"debounce" yaml:"debounce"`           // Quiet period before re-rendering
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"` // > 0 polls instead of using fsnotify
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			Debounce:     Duration(DefaultDebounce),
			PollInterval: Duration(DefaultPollInterval),
		},
	}
}

// ConfigDir returns the mdsee configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mdsee")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// LegacyConfigPath returns the path of the YAML config file, read when no
// TOML config exists.
func LegacyConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path, falling back to the
// legacy YAML file. Returns default config if no file exists.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	candidates := []string{path}
	if path == "" {
		candidates = []string{ConfigPath(), LegacyConfigPath()}
	}

	cfg := DefaultConfig()

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := decode(candidate, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", candidate, err)
		}
		return cfg, nil
	}

	// No config file, use defaults
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

// Save writes the configuration to the specified path as TOML.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TemplatePath returns the configured page template path, or the default
// location inside the config directory.
func (c *Config) TemplatePath() string {
	if c.Render.Template != "" {
		return expandHome(c.Render.Template)
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "template.html")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
