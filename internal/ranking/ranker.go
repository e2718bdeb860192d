package ranking

import (
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/models"
)

// Ranker filters and orders documents. Large collections are scored on a
// worker pool; the result is the same as sequential scoring.
type Ranker struct {
	config *RankingConfig
	pool   *ants.Pool
	logger *zap.Logger
}

// NewRanker creates a new Ranker with the given configuration.
func NewRanker(config *RankingConfig, logger *zap.Logger) (*Ranker, error) {
	if config == nil {
		config = DefaultRankingConfig()
	}
	config.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Ranker{
		config: config,
		logger: logger,
	}

	if config.ParallelThreshold > 0 {
		pool, err := ants.NewPool(config.Workers, ants.WithPanicHandler(func(p interface{}) {
			logger.Error("ranking worker panicked", zap.Any("panic", p))
		}))
		if err != nil {
			return nil, fmt.Errorf("failed to create ranking pool: %w", err)
		}
		r.pool = pool
	}

	return r, nil
}

// Rank scores every document against ev and returns the matching ones,
// best first. Nil documents are skipped. The input slice is not modified.
func (r *Ranker) Rank(docs []*models.Document, ev Evaluator) []*Entry {
	scored := make([]*Entry, len(docs))

	if r.pool != nil && len(docs) >= r.config.ParallelThreshold {
		r.scoreParallel(docs, ev, scored)
	} else {
		scoreRange(docs, ev, scored, 0, len(docs))
	}

	entries := make([]*Entry, 0, len(docs))
	for _, e := range scored {
		if e != nil {
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return less(entries[i], entries[j])
	})

	return entries
}

// RankAndFilter is Rank without the scores.
func (r *Ranker) RankAndFilter(docs []*models.Document, ev Evaluator) []*models.Document {
	entries := r.Rank(docs, ev)
	out := make([]*models.Document, len(entries))
	for i, e := range entries {
		out[i] = e.Document
	}
	return out
}

// GetConfig returns the ranking configuration.
func (r *Ranker) GetConfig() *RankingConfig {
	return r.config
}

// Close releases the worker pool.
func (r *Ranker) Close() {
	if r.pool != nil {
		r.pool.Release()
	}
}

func (r *Ranker) scoreParallel(docs []*models.Document, ev Evaluator, out []*Entry) {
	chunk := (len(docs) + r.config.Workers - 1) / r.config.Workers

	var wg sync.WaitGroup
	for lo := 0; lo < len(docs); lo += chunk {
		lo := lo // per-iteration copy; go directive < 1.22 shares loop variables
		hi := min(lo+chunk, len(docs))

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			scoreRange(docs, ev, out, lo, hi)
		})
		if err != nil {
			r.logger.Warn("ranking pool rejected task, scoring inline", zap.Error(err))
			scoreRange(docs, ev, out, lo, hi)
			wg.Done()
		}
	}
	wg.Wait()
}

// scoreRange writes an entry into out[i] for every matching docs[i] with lo <= i < hi.
func scoreRange(docs []*models.Document, ev Evaluator, out []*Entry, lo, hi int) {
	scorer := NewScorer()
	for i := lo; i < hi; i++ {
		doc := docs[i]
		if doc == nil {
			continue
		}

		blob := doc.SearchBlob()
		if !ev.Matches(blob) {
			continue
		}

		matches := ev.FindAll(blob)
		primary, secondary := scorer.Score(matches)
		out[i] = &Entry{
			Document:  doc,
			Index:     i,
			Primary:   primary,
			Secondary: secondary,
			Matches:   matches,
		}
	}
}

// RankAndFilter ranks docs sequentially without a pool.
func RankAndFilter(docs []*models.Document, ev Evaluator) []*models.Document {
	r := &Ranker{
		config: &RankingConfig{ParallelThreshold: -1, Workers: 1},
		logger: zap.NewNop(),
	}
	return r.RankAndFilter(docs, ev)
}
