// Package ranking filters documents through a compiled query and orders the
// survivors by how much of the query they match.
package ranking

import (
	"github.com/hyperjump/lupa/internal/models"
	"github.com/hyperjump/lupa/internal/query"
)

// Evaluator decides whether a text matches a query and lists the matches.
// *query.RuleSet implements it.
type Evaluator interface {
	Matches(text string) bool
	FindAll(text string) []query.Match
}

// Entry is a document that survived filtering, with its scores.
type Entry struct {
	Document *models.Document
	// Index is the position of the document in the input collection.
	Index int
	// Primary sums, over the distinct upper-cased matched texts, their
	// length plus one.
	Primary int
	// Secondary sums the length of every match.
	Secondary int
	Matches   []query.Match
}

// MatchedTexts returns the matched substrings in scan order.
func (e *Entry) MatchedTexts() []string {
	out := make([]string, len(e.Matches))
	for i, m := range e.Matches {
		out[i] = m.Text
	}
	return out
}

// less orders entries by primary score, then secondary score (both
// descending), then input position.
func less(a, b *Entry) bool {
	if a.Primary != b.Primary {
		return a.Primary > b.Primary
	}
	if a.Secondary != b.Secondary {
		return a.Secondary > b.Secondary
	}
	return a.Index < b.Index
}
