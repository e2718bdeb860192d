package models

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultPerPage is used when a query does not set PerPage.
	DefaultPerPage = 25
	// MaxPerPage caps PerPage.
	MaxPerPage = 1000
	// MaxQueryLength is the longest accepted query, in characters.
	MaxQueryLength = 1024
)

// SearchQuery represents a search request. An empty Query is valid and
// matches every document.
type SearchQuery struct {
	Query   string `json:"query"`
	Page    int    `json:"page,omitempty"`
	PerPage int    `json:"per_page,omitempty"`
	// MatchWordStart and MatchWordEnd override the configured word anchoring when set.
	MatchWordStart *bool `json:"match_word_start,omitempty"`
	MatchWordEnd   *bool `json:"match_word_end,omitempty"`
	// Explain adds scores and matched text to each result.
	Explain bool `json:"explain,omitempty"`
}

// Validate normalizes page and per-page values. Returns an error only when
// the query is too long.
func (q *SearchQuery) Validate() error {
	if n := utf8.RuneCountInString(q.Query); n > MaxQueryLength {
		return fmt.Errorf("query too long: %d characters (max %d)", n, MaxQueryLength)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	return nil
}
