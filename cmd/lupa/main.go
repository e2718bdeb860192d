// Package main is the Lupa CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	lupacli "github.com/hyperjump/lupa/internal/cli"
	"github.com/hyperjump/lupa/internal/config"
	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/internal/records"
	"github.com/hyperjump/lupa/internal/server"
	"github.com/hyperjump/lupa/internal/watcher"
	"github.com/hyperjump/lupa/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/lupa/config.yaml"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	recordFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "records",
			Usage: "Records file (.json, .csv, .xlsx, .db); overrides records.path",
		},
		&cli.StringFlag{
			Name:  "sheet",
			Usage: "Worksheet to read from an .xlsx records file",
		},
		&cli.StringFlag{
			Name:  "table",
			Usage: "Table to read from a SQLite records file",
		},
		&cli.StringFlag{
			Name:  "settings",
			Usage: "Settings file of name/value records; overrides records.settings_path",
		},
		&cli.StringSliceFlag{
			Name:  "setting",
			Usage: "Override a setting, e.g. --setting perPage=10 (repeatable)",
		},
	}

	return &cli.App{
		Name:    "lupa",
		Usage:   "Search a set of records with a small query language",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the search API and reload records when they change",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "host", Usage: "Listen host; overrides server.host"},
					&cli.IntFlag{Name: "port", Usage: "Listen port; overrides server.port"},
					&cli.BoolFlag{Name: "no-watch", Usage: "Do not reload records when the files change"},
				}, recordFlags...),
			},
			{
				Name:      "search",
				Usage:     "Search the records and print one page of results",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "page", Usage: "Page to show", Value: 1},
					&cli.IntFlag{Name: "per-page", Usage: "Results per page (default from settings)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format: text or json", Value: "text"},
					&cli.BoolFlag{Name: "match-word-start", Usage: "Anchor terms at word starts"},
					&cli.BoolFlag{Name: "match-word-end", Usage: "Anchor terms at word ends"},
					&cli.BoolFlag{Name: "explain", Usage: "Show scores and matched text"},
					&cli.StringFlag{Name: "server", Usage: "Search a running server at this URL instead of loading records"},
				}, recordFlags...),
			},
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(c *cli.Context) error {
					fmt.Fprintf(c.App.Writer, "lupa version %s\n", version)
					return nil
				},
			},
		},
	}
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory; when neither exists the built-in
// defaults are used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				path = fallback
			}
		}
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// setupConfig loads the config and applies the record flags shared by serve and search.
func setupConfig(c *cli.Context) (*config.Config, string, map[string]interface{}, error) {
	cfg, path, err := loadConfig(c.String("config"))
	if err != nil {
		return nil, "", nil, err
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if v := c.String("records"); v != "" {
		cfg.Records.Path = absPath(v)
	}
	if v := c.String("sheet"); v != "" {
		cfg.Records.Sheet = v
	}
	if v := c.String("table"); v != "" {
		cfg.Records.Table = v
	}
	if v := c.String("settings"); v != "" {
		cfg.Records.SettingsPath = absPath(v)
	}
	overrides, err := parseSettings(c.StringSlice("setting"))
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, path, overrides, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// parseSettings turns "name=value" pairs into a settings map.
func parseSettings(pairs []string) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		name, value, err := records.ParseSetting(pair)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

func serveCommand(c *cli.Context) error {
	cfg, configPath, overrides, err := setupConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if v := c.String("host"); v != "" {
		cfg.Server.Host = v
	}
	if v := c.Int("port"); v != 0 {
		cfg.Server.Port = v
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("config loaded",
		zap.String("config_path", configPath),
		zap.String("records", cfg.Records.Path),
		zap.Bool("debug", cfg.Debug))

	components, err := initializeComponents(cfg, overrides, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	if err := components.Reload(c.Context); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Records.WatchOrDefault() && !c.Bool("no-watch") {
		watchOpts := []watcher.WatcherOption{}
		if cfg.Debug {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc := watcher.NewWatcher(
			components.WatchedFiles(),
			func(path string) {
				if err := components.Reload(ctx); err != nil {
					logger.Warn("reload after change failed", zap.String("path", path), zap.Error(err))
				}
			},
			func(path string) {
				logger.Warn("records file removed; keeping loaded records", zap.String("path", path))
			},
			watchOpts...,
		)
		if err := watchSvc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer watchSvc.Stop()
	}

	srv := server.NewServer(components.Engine, components, &cfg.Server, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func searchQueryFromFlags(c *cli.Context) *models.SearchQuery {
	q := &models.SearchQuery{
		Query:   buildSearchQuery(c.Args().Slice()),
		Page:    c.Int("page"),
		PerPage: c.Int("per-page"),
		Explain: c.Bool("explain"),
	}
	if c.IsSet("match-word-start") {
		v := c.Bool("match-word-start")
		q.MatchWordStart = &v
	}
	if c.IsSet("match-word-end") {
		v := c.Bool("match-word-end")
		q.MatchWordEnd = &v
	}
	return q
}

func searchCommand(c *cli.Context) error {
	format, err := lupacli.ParseOutputFormat(c.String("format"))
	if err != nil {
		return err
	}
	query := searchQueryFromFlags(c)

	if serverURL := c.String("server"); serverURL != "" {
		response, err := searchViaHTTP(c.Context, serverURL, query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return lupacli.WriteSearchResults(c.App.Writer, response, format)
	}

	cfg, _, overrides, err := setupConfig(c)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level := "warn"
	if cfg.Debug {
		level = "debug"
	}
	logger, err := utils.NewCLILogger(level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	components, err := initializeComponents(cfg, overrides, logger)
	if err != nil {
		return err
	}
	defer components.Close()
	if err := components.Reload(c.Context); err != nil {
		return err
	}

	response, err := components.Engine.Search(c.Context, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return lupacli.WriteSearchResults(c.App.Writer, response, format)
}

func searchViaHTTP(ctx context.Context, serverURL string, query *models.SearchQuery) (*models.SearchResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	endpoint := strings.TrimSuffix(serverURL, "/") + "/api/v1/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	var out models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
