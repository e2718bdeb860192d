package config

import "github.com/hyperjump/lupa/internal/query"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Records.Path == "" {
		cfg.Records.Path = "./records.json"
	}
	if cfg.Records.Table == "" {
		cfg.Records.Table = "records"
	}
	if cfg.Records.SettingsTable == "" {
		cfg.Records.SettingsTable = "settings"
	}
	if cfg.Search.MatchWordStart == nil {
		t := query.DefaultOptions().MatchWordStart
		cfg.Search.MatchWordStart = &t
	}
	if cfg.Search.MatchWordEnd == nil {
		f := query.DefaultOptions().MatchWordEnd
		cfg.Search.MatchWordEnd = &f
	}
	if cfg.Search.PerPage <= 0 {
		cfg.Search.PerPage = 25
	}
	if cfg.Search.PaginationLength <= 0 {
		cfg.Search.PaginationLength = 5
	}
	if cfg.Search.CacheSize == 0 {
		cfg.Search.CacheSize = query.DefaultCacheSize
	}
	cfg.Ranking.ApplyDefaults()
}
