package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./golem.yaml",
		filepath.Join(ConfigDir(), "golem.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Golem")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Golem")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "golem")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "golem")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks settings that would otherwise fail later in a less
// obvious place.
func (c *Config) Validate() error {
	if c.Control.Rate <= 0 {
		return fmt.Errorf("control.rate must be positive, got %v", c.Control.Rate)
	}
	if c.Control.BlendRate < 0 {
		return fmt.Errorf("control.blend_rate must not be negative, got %v", c.Control.BlendRate)
	}
	if c.Atlas.CellSize <= 0 {
		return fmt.Errorf("atlas.cell_size must be positive, got %d", c.Atlas.CellSize)
	}
	return nil
}
