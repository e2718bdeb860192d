package ranking

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hyperjump/lupa/internal/query"
)

// Scorer computes the two ranking keys of a match list. A Scorer is not safe
// for concurrent use; create one per goroutine.
type Scorer struct {
	upper cases.Caser
}

// NewScorer creates a Scorer. Upper-casing uses full Unicode case mapping,
// so "ß" and "SS" count as the same text.
func NewScorer() *Scorer {
	return &Scorer{upper: cases.Upper(language.Und)}
}

// Score returns the primary and secondary scores of matches. Lengths are
// counted in characters.
func (s *Scorer) Score(matches []query.Match) (primary, secondary int) {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		secondary += utf8.RuneCountInString(m.Text)

		key := s.upper.String(m.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		primary += utf8.RuneCountInString(key) + 1
	}
	return primary, secondary
}
