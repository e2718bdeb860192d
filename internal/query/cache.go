package query

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// DefaultCacheSize is the number of rule sets a Compiler keeps by default.
const DefaultCacheSize = 1024

// Compiler memoizes compiled rule sets. Repeated queries from a search box
// (typing, paging) reuse the same rule set instead of recompiling.
type Compiler struct {
	cache *ristretto.Cache[string, *RuleSet]
}

// NewCompiler creates a compiler that caches up to size rule sets. A size
// of zero or less disables caching.
func NewCompiler(size int64) (*Compiler, error) {
	if size <= 0 {
		return &Compiler{}, nil
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, *RuleSet]{
		NumCounters: size * 10,
		MaxCost:     size,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create rule cache: %w", err)
	}

	return &Compiler{cache: cache}, nil
}

// Compile returns the rule set for text and opts, compiling it on a cache miss.
func (c *Compiler) Compile(text string, opts Options) *RuleSet {
	if c == nil || c.cache == nil {
		return Compile(text, opts)
	}

	key := cacheKey(text, opts)
	if rs, ok := c.cache.Get(key); ok {
		return rs
	}

	rs := Compile(text, opts)
	c.cache.Set(key, rs, 1)
	return rs
}

// Wait blocks until pending cache writes are applied.
func (c *Compiler) Wait() {
	if c != nil && c.cache != nil {
		c.cache.Wait()
	}
}

// Close releases the cache.
func (c *Compiler) Close() {
	if c != nil && c.cache != nil {
		c.cache.Close()
	}
}

func cacheKey(text string, opts Options) string {
	return fmt.Sprintf("%t:%t:%s", opts.MatchWordStart, opts.MatchWordEnd, text)
}
