package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tailscale/hujson"
)

const (
	configDirName  = ".codet"
	configFileName = "config.json"

	// DefaultDays is the analysis window used when neither flag nor config set one.
	DefaultDays = 30
)

// ConfigManager handles reading and writing the codet configuration.
type ConfigManager struct {
	path string
	mu   sync.RWMutex
}

// NewConfigManager creates a ConfigManager using the default config path (~/.codet/config.json).
func NewConfigManager() (*ConfigManager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return &ConfigManager{
		path: filepath.Join(home, configDirName, configFileName),
	}, nil
}

// NewConfigManagerWithDir creates a ConfigManager using a custom config directory.
// Useful for testing.
func NewConfigManagerWithDir(dir string) *ConfigManager {
	return &ConfigManager{path: filepath.Join(dir, configFileName)}
}

// NewConfigManagerWithFile creates a ConfigManager bound to an explicit file (--config).
func NewConfigManagerWithFile(path string) *ConfigManager {
	return &ConfigManager{path: path}
}

// ConfigDir returns the configuration directory path.
func (cm *ConfigManager) ConfigDir() string {
	return filepath.Dir(cm.path)
}

// ConfigPath returns the full path to the config file.
func (cm *ConfigManager) ConfigPath() string {
	return cm.path
}

// Load reads the config from disk. Returns default config if file doesn't exist.
// Comments and trailing commas are accepted.
func (cm *ConfigManager) Load() (*Config, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	data, err := os.ReadFile(cm.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (cm *ConfigManager) Save(cfg *Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if err := os.MkdirAll(cm.ConfigDir(), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write atomically: write to temp file then rename
	tmpPath := cm.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := os.Rename(tmpPath, cm.path); err != nil {
		_ = os.Remove(tmpPath) // clean up on failure
		return fmt.Errorf("saving config: %w", err)
	}

	return nil
}

// Exists reports whether the config file is present on disk.
func (cm *ConfigManager) Exists() bool {
	return fileExists(cm.path)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Defaults{
			Days: DefaultDays,
			Mode: string(ModeUnion),
		},
		URLTemplates: map[string]string{},
	}
}

// normalize repairs values a hand-edited file may leave unusable.
func (c *Config) normalize() {
	if c.Defaults.Days < 0 {
		c.Defaults.Days = DefaultDays
	}
	if c.Defaults.Mode == "" {
		c.Defaults.Mode = string(ModeUnion)
	}
	if c.URLTemplates == nil {
		c.URLTemplates = map[string]string{}
	}
}
