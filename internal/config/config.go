// Package config provides configuration loading and structs for the Lupa server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/lupa/internal/query"
	"github.com/hyperjump/lupa/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Records RecordsConfig         `yaml:"records"`
	Search  SearchConfig          `yaml:"search"`
	Ranking ranking.RankingConfig `yaml:"ranking"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RecordsConfig says where the searchable records and the optional settings come from.
type RecordsConfig struct {
	// Path is a .json, .csv, .xlsx or .db/.sqlite file.
	Path string `yaml:"path"`
	// Sheet selects the worksheet of an .xlsx file; empty means the first one.
	Sheet string `yaml:"sheet"`
	// Table is the table read from a SQLite file.
	Table string `yaml:"table"`
	// SettingsPath points at name/value records that override the search section.
	SettingsPath  string `yaml:"settings_path"`
	SettingsSheet string `yaml:"settings_sheet"`
	SettingsTable string `yaml:"settings_table"`
	Watch         *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to reload records on change; defaults to true when unset.
func (r *RecordsConfig) WatchOrDefault() bool {
	if r.Watch != nil {
		return *r.Watch
	}
	return true
}

// SearchConfig holds query and paging settings.
type SearchConfig struct {
	MatchWordStart   *bool `yaml:"match_word_start"`
	MatchWordEnd     *bool `yaml:"match_word_end"`
	PerPage          int   `yaml:"per_page"`
	PaginationLength int   `yaml:"pagination_length"`
	// CacheSize is the number of compiled queries kept in memory.
	CacheSize int `yaml:"cache_size"`
}

// Options returns the word anchoring options, with defaults for unset values.
func (s *SearchConfig) Options() query.Options {
	return query.OptionsFrom(s.MatchWordStart, s.MatchWordEnd)
}

// Default returns a config with every default applied and no file behind it.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Records.Path = expandPath(cfg.Records.Path, configDir)
	if cfg.Records.SettingsPath != "" {
		cfg.Records.SettingsPath = expandPath(cfg.Records.SettingsPath, configDir)
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
