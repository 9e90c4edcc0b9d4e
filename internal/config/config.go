// Package config loads castxml configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the castxml configuration file
const ConfigFileName = "castxml.yaml"

// Config holds all castxml configuration
type Config struct {
	Start  []string     `yaml:"start"`
	Output OutputConfig `yaml:"output"`
}

// OutputConfig holds configuration for the produced document
type OutputConfig struct {
	// Path is where the document is written; empty means stdout.
	Path string `yaml:"path"`
	// Gzip compresses the document. A .gz output path implies it.
	Gzip bool `yaml:"gzip"`
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from castxml.yaml, falling back to defaults.
// It searches for the file starting from workDir and walking up the
// directory tree. If no config is found, returns defaults.
func Load(workDir string) (*Config, error) {
	configPath, err := FindConfigFile(workDir)
	if err != nil {
		// No config file found, use defaults.
		return DefaultConfig(), nil
	}
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// FindConfigFile locates castxml.yaml by walking up from startDir.
func FindConfigFile(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configPath := filepath.Join(currentDir, ConfigFileName)
		info, err := os.Stat(configPath)
		if err == nil && !info.IsDir() {
			return configPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root, config not found
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	for _, name := range cfg.Start {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: start names must not be empty", ErrInvalidConfig)
		}
		for _, seg := range strings.Split(name, "::") {
			if seg == "" {
				return fmt.Errorf("%w: start name %q has an empty scope segment",
					ErrInvalidConfig, name)
			}
		}
	}
	return nil
}
