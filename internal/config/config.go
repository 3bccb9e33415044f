// Package config loads the optional uenv-venv configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/uenv-tools/uenv-venv/internal/uenv"
)

// FileName is the configuration file name looked up inside the
// uenv-venv configuration directory.
const FileName = "config.yaml"

// Config holds the user preferences read from config.yaml. Every field
// is optional; zero values fall back to the defaults returned by
// Default.
type Config struct {
	// Tool selects the venv creation strategy. "auto" (the default)
	// probes for uv and falls back to the interpreter's venv module,
	// while "uv" and "venv" force one strategy.
	Tool string `yaml:"tool"`

	// Copies requests file copies instead of symlinks inside the venv,
	// the equivalent of always passing --copies.
	Copies bool `yaml:"copies"`

	// SeedPackages lists the packages upgraded right after creation.
	SeedPackages []string `yaml:"seed_packages"`

	// IndexURL points the upgrade step at an alternative package index.
	IndexURL string `yaml:"index_url"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Tool:         "auto",
		SeedPackages: []string{"pip", "setuptools", "wheel"},
	}
}

// Path resolves the configuration file location for the given
// environment. UENV_VENV_CONFIG wins when set, then
// $XDG_CONFIG_HOME/uenv-venv/config.yaml, then
// ~/.config/uenv-venv/config.yaml.
func Path(env uenv.Environ) string {
	if p := env[uenv.EnvConfig]; p != "" {
		return p
	}
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "uenv-venv", FileName)
	}
	return filepath.Join(env["HOME"], ".config", "uenv-venv", FileName)
}

// Load reads and validates the configuration file for the given
// environment. A missing file yields the defaults silently. Any other
// failure (unreadable file, malformed YAML, invalid values) also yields
// the defaults, together with an error the caller is expected to warn
// about before continuing.
func Load(env uenv.Environ) (*Config, error) {
	path := Path(env)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Unmarshal on top of the defaults so absent keys keep their
	// default values.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes the configuration and reports the first invalid
// field. Tool comparison is case-insensitive.
func (c *Config) Validate() error {
	c.Tool = strings.ToLower(strings.TrimSpace(c.Tool))
	switch c.Tool {
	case "auto", "uv", "venv":
	default:
		return fmt.Errorf("invalid tool %q (valid tools: auto, uv, venv)", c.Tool)
	}
	if len(c.SeedPackages) == 0 {
		return fmt.Errorf("seed_packages must list at least one package")
	}
	return nil
}
