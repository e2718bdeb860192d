package main

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/config"
	"github.com/hyperjump/lupa/internal/query"
	"github.com/hyperjump/lupa/internal/ranking"
	"github.com/hyperjump/lupa/internal/records"
	"github.com/hyperjump/lupa/internal/search"
)

// Components holds initialized application components.
type Components struct {
	Compiler *query.Compiler
	Ranker   *ranking.Ranker
	Loader   *records.Loader
	Engine   *search.Engine

	cfg       *config.Config
	overrides map[string]interface{}
	logger    *zap.Logger

	mu       sync.Mutex
	settings map[string]interface{}
}

func initializeComponents(cfg *config.Config, overrides map[string]interface{}, logger *zap.Logger) (*Components, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	compiler, err := query.NewCompiler(int64(cfg.Search.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize query cache: %w", err)
	}
	ranker, err := ranking.NewRanker(&cfg.Ranking, logger)
	if err != nil {
		compiler.Close()
		return nil, fmt.Errorf("failed to initialize ranker: %w", err)
	}
	searchCfg := cfg.Search
	engine := search.NewEngine(compiler, ranker, &searchCfg, logger)

	return &Components{
		Compiler:  compiler,
		Ranker:    ranker,
		Loader:    records.NewLoader(logger),
		Engine:    engine,
		cfg:       cfg,
		overrides: overrides,
		logger:    logger,
		settings:  map[string]interface{}{},
	}, nil
}

// Reload reads the records and settings sources and installs them in the
// engine. On error the engine keeps its current records and settings.
// Settings with invalid values are logged and skipped.
func (c *Components) Reload(ctx context.Context) error {
	rc := c.cfg.Records
	docs, err := c.Loader.Load(ctx, records.Source{Path: rc.Path, Sheet: rc.Sheet, Table: rc.Table})
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	settings := make(map[string]interface{})
	if rc.SettingsPath != "" {
		loaded, err := c.Loader.LoadSettings(ctx, records.Source{
			Path:  rc.SettingsPath,
			Sheet: rc.SettingsSheet,
			Table: rc.SettingsTable,
		})
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		for k, v := range loaded {
			settings[k] = v
		}
	}
	for k, v := range c.overrides {
		settings[k] = v
	}

	searchCfg := c.cfg.Search
	if err := records.ApplySettings(settings, &searchCfg); err != nil {
		c.logger.Warn("Ignoring invalid settings", zap.Error(err))
	}

	c.Engine.Install(docs, rc.Path, &searchCfg)

	c.mu.Lock()
	c.settings = settings
	c.mu.Unlock()
	return nil
}

// Settings returns a copy of the settings applied by the last successful Reload.
func (c *Components) Settings() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]interface{}, len(c.settings))
	for k, v := range c.settings {
		out[k] = v
	}
	return out
}

// WatchedFiles returns the record and settings files to watch for changes.
func (c *Components) WatchedFiles() []string {
	files := []string{c.cfg.Records.Path}
	if p := c.cfg.Records.SettingsPath; p != "" && p != c.cfg.Records.Path {
		files = append(files, p)
	}
	return files
}

// Close releases all resources.
func (c *Components) Close() {
	if c.Ranker != nil {
		c.Ranker.Close()
	}
	if c.Compiler != nil {
		c.Compiler.Close()
	}
}
