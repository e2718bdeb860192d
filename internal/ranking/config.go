package ranking

import "runtime"

// RankingConfig holds all configuration for the ranking system.
type RankingConfig struct {
	// Collections with at least this many documents are scored on the worker
	// pool. A negative value disables parallel scoring.
	ParallelThreshold int `yaml:"parallel_threshold"` // default: 2048
	// Workers is the worker pool size.
	Workers int `yaml:"workers"` // default: GOMAXPROCS
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	return &RankingConfig{
		ParallelThreshold: 2048,
		Workers:           runtime.GOMAXPROCS(0),
	}
}

// ApplyDefaults fills in zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	defaults := DefaultRankingConfig()

	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = defaults.ParallelThreshold
	}
	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
}
