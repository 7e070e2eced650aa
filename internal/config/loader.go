package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSandbox loads and validates the sandbox configuration.
// Search order: customPath -> ~/.sandbox/configs/sandbox.yaml -> ./configs/sandbox.yaml -> embedded default
func LoadSandbox(customPath string) (SandboxConfig, error) {
	cfg, err := loadSandbox(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadSandbox(customPath string) (SandboxConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := readSandbox(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sandbox.yaml"); userCfgPath != "" {
		if cfg, err := readSandbox(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := readSandbox(filepath.Join("configs", "sandbox.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultSandboxConfig()
	if err := yaml.Unmarshal(defaultSandboxYAML, &cfg); err != nil {
		return DefaultSandboxConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readSandbox decodes a config file on top of the defaults, so a file only
// needs the keys it changes.
func readSandbox(path string) (SandboxConfig, error) {
	cfg := DefaultSandboxConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandbox", "configs", filename)
}
