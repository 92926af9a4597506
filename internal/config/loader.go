package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "xangaroo.yaml"

// Load loads the run configuration.
// Search order: customPath -> ~/.xangaroo/configs/xangaroo.yaml -> ./configs/xangaroo.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(fileName); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", fileName)); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads, parses and validates a single config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hard-coded defaults and validates the
// result, so a file only needs to list the values it changes. A file that
// lists symbols or messages replaces the default tables entirely.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".xangaroo", "configs", filename)
}
