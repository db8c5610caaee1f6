// Package config loads bookbot configuration from a YAML file with sane
// defaults for every setting.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the assistant.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Search  SearchConfig  `yaml:"search"`
	Import  ImportConfig  `yaml:"import"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects where search indices persist.
type StorageConfig struct {
	// DataDir is the directory holding index snapshots.
	DataDir string `yaml:"data_dir"`
	// Backend is "file" (one snapshot file per index) or "bolt" (a single
	// bbolt database).
	Backend string `yaml:"backend"`
}

// SearchConfig holds engine and cache settings.
type SearchConfig struct {
	DefaultLimit    int  `yaml:"default_limit"`
	CacheEnabled    bool `yaml:"cache_enabled"`
	CacheSize       int  `yaml:"cache_size"`
	CacheTTLSeconds int  `yaml:"cache_ttl_seconds"`
}

// CacheTTL returns the configured cache entry lifetime.
func (c SearchConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ImportConfig holds bulk-import file matching patterns.
type ImportConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
			Backend: "file",
		},
		Search: SearchConfig{
			DefaultLimit:    100,
			CacheEnabled:    true,
			CacheSize:       64,
			CacheTTLSeconds: 300,
		},
		Import: ImportConfig{
			Includes: []string{"**/*.json"},
			Excludes: []string{"**/node_modules/**", "**/.git/**"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bookbot", "search_indices")
	}
	return filepath.Join(home, ".bookbot", "search_indices")
}

// Load loads configuration from a YAML file, returning defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from bookbot.yaml in the directory,
// falling back to defaults.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, "bookbot.yaml"))
}

// BoltDBPath returns the bolt backend's database file path.
func (c *Config) BoltDBPath() string {
	return filepath.Join(c.Storage.DataDir, "index.db")
}
