// Package config loads the CLI's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/eze-godoy/confluence-readme-sync/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrEmptyMapping   = errors.New("language mapping entries cannot be empty")
)

// Config holds all configuration for document conversion.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`

	// Languages adds code macro language remappings on top of the
	// built-in bash-to-shell default, e.g. {golang: go}.
	Languages map[string]string `yaml:"languages"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// RenderConfig defines rendering options.
type RenderConfig struct {
	HardWraps bool `yaml:"hardWraps"` // Render single newlines as <br/>
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the config is usable.
func (c *Config) Validate() error {
	for from, to := range c.Languages {
		if from == "" || to == "" {
			return fmt.Errorf("%w: %q -> %q", ErrEmptyMapping, from, to)
		}
	}
	return nil
}
