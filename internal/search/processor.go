package search

import (
	"errors"
	"fmt"

	"github.com/hyperjump/lupa/internal/models"
)

// ErrInvalidQuery is returned by Search for queries that fail validation.
var ErrInvalidQuery = errors.New("invalid query")

// ProcessQuery validates and applies defaults to the search query.
func ProcessQuery(q *models.SearchQuery) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}
