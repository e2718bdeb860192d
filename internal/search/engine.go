// Package search runs queries against the loaded record set.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/config"
	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/internal/pagination"
	"github.com/hyperjump/lupa/internal/query"
	"github.com/hyperjump/lupa/internal/ranking"
)

// snapshot is the engine's view of the loaded records and the settings they
// are searched with. It is replaced as a whole and never modified.
type snapshot struct {
	docs     []*models.Document
	source   string
	loadedAt time.Time
	config   *config.SearchConfig
}

// Engine compiles queries, ranks the loaded records and pages the results.
// It is safe for concurrent use; Replace swaps the record set without
// blocking searches in flight.
type Engine struct {
	compiler *query.Compiler
	ranker   *ranking.Ranker
	logger   *zap.Logger
	state    atomic.Pointer[snapshot]
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(
	compiler *query.Compiler,
	ranker *ranking.Ranker,
	cfg *config.SearchConfig,
	logger *zap.Logger,
) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &config.Default().Search
	}
	e := &Engine{
		compiler: compiler,
		ranker:   ranker,
		logger:   logger,
	}
	e.state.Store(&snapshot{config: cfg})
	return e
}

// Install replaces the record set and the search settings together, so no
// search sees one without the other. The slice must not be modified afterwards.
func (e *Engine) Install(docs []*models.Document, source string, cfg *config.SearchConfig) {
	e.update(func(s *snapshot) {
		s.docs, s.source, s.loadedAt = docs, source, time.Now()
		if cfg != nil {
			s.config = cfg
		}
	})
	e.logger.Info("Record set replaced", zap.String("source", source), zap.Int("documents", len(docs)))
}

// Replace installs a new record set and keeps the current settings. The slice
// must not be modified afterwards.
func (e *Engine) Replace(docs []*models.Document, source string) {
	e.Install(docs, source, nil)
}

// Count returns the number of loaded documents.
func (e *Engine) Count() int {
	return len(e.state.Load().docs)
}

// Source returns where the current record set came from and when it was loaded.
func (e *Engine) Source() (string, time.Time) {
	s := e.state.Load()
	return s.source, s.loadedAt
}

// SetSearchConfig replaces the search settings used by later searches.
func (e *Engine) SetSearchConfig(cfg *config.SearchConfig) {
	e.update(func(s *snapshot) { s.config = cfg })
}

// SearchConfig returns a copy of the current search settings.
func (e *Engine) SearchConfig() config.SearchConfig {
	return *e.state.Load().config
}

func (e *Engine) update(fn func(s *snapshot)) {
	for {
		old := e.state.Load()
		next := *old
		fn(&next)
		if e.state.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Search runs query against the loaded records and returns one page of
// results. The query itself is not modified.
func (e *Engine) Search(ctx context.Context, q *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	state := e.state.Load()
	cfg := state.config

	local := *q
	q = &local
	if q.PerPage <= 0 {
		q.PerPage = cfg.PerPage
	}
	if err := ProcessQuery(q); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := cfg.Options()
	if q.MatchWordStart != nil {
		opts.MatchWordStart = *q.MatchWordStart
	}
	if q.MatchWordEnd != nil {
		opts.MatchWordEnd = *q.MatchWordEnd
	}

	rules := e.compiler.Compile(q.Query, opts)
	entries := e.ranker.Rank(state.docs, rules)

	total := len(entries)
	pageCount := pagination.PageCount(total, q.PerPage)
	page := pagination.Clamp(float64(q.Page), pageCount)
	start, end := pagination.Bounds(page, q.PerPage, total)

	response := &models.SearchResponse{
		QueryID:    uuid.NewString(),
		Query:      q.Query,
		Results:    make([]*models.SearchResult, 0, end-start),
		Total:      total,
		Page:       page,
		PageCount:  pageCount,
		PerPage:    q.PerPage,
		Pagination: pageLinks(pagination.Window(float64(page), pageCount, cfg.PaginationLength)),
	}

	for i, entry := range entries[start:end] {
		result := &models.SearchResult{
			Document: entry.Document,
			Rank:     start + i + 1,
			Index:    entry.Index,
		}
		if q.Explain {
			result.Scores = &models.Scores{
				Primary:   entry.Primary,
				Secondary: entry.Secondary,
				Matches:   entry.MatchedTexts(),
			}
		}
		response.Results = append(response.Results, result)
	}

	response.QueryTime = time.Since(startTime).Milliseconds()
	e.logger.Debug("Search completed",
		zap.String("query_id", response.QueryID),
		zap.String("query", q.Query),
		zap.Int("hits", total),
		zap.Int("page", page),
		zap.Duration("took", time.Since(startTime)))

	return response, nil
}

func pageLinks(window []pagination.Entry) []models.PageLink {
	links := make([]models.PageLink, len(window))
	for i, w := range window {
		links[i] = models.PageLink{Number: w.Number, Selected: w.IsSelected, Boundary: w.IsBoundary}
	}
	return links
}
