package query

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// matchAnything is the partial rule used when a query has no required or
// boosted terms. It matches once, empty, at the start of any text.
const matchAnything = `^`

// MatchTimeout bounds a single match attempt of a compiled pattern. Phrases
// with several leading wildcards can backtrack exponentially on text they do
// not match; an attempt that runs out of time counts as no match.
const MatchTimeout = 100 * time.Millisecond

// RuleSet is the compiled form of a query. It is immutable and safe for
// concurrent use.
type RuleSet struct {
	text     string
	options  Options
	terms    []Term
	negative *regexp2.Regexp
	positive []*regexp2.Regexp
	partial  *regexp2.Regexp
}

// Compile builds the rule set for a query. It never fails: every text,
// including the empty string, compiles to a usable rule set.
func Compile(text string, opts Options) *RuleSet {
	tokens := Tokenize(text)
	rs := &RuleSet{
		text:    text,
		options: opts,
		terms:   make([]Term, 0, len(tokens)),
	}

	var excluded, required, boosted []string
	for _, tok := range tokens {
		term := CompileTerm(tok, opts)
		rs.terms = append(rs.terms, term)
		switch term.Kind {
		case KindExcluded:
			excluded = append(excluded, term.Pattern)
		case KindBoosted:
			boosted = append(boosted, term.Pattern)
		default:
			required = append(required, term.Pattern)
		}
	}

	if len(excluded) > 0 {
		rs.negative = mustCompile(union(excluded))
	}
	for _, p := range boosted {
		rs.positive = append(rs.positive, mustCompile(p))
	}

	alternatives := append(append([]string{}, required...), boosted...)
	if len(alternatives) == 0 {
		rs.partial = mustCompile(matchAnything)
	} else {
		rs.partial = mustCompile(union(alternatives))
	}

	return rs
}

// Text returns the query text the rule set was compiled from.
func (rs *RuleSet) Text() string { return rs.text }

// Options returns the options the rule set was compiled with.
func (rs *RuleSet) Options() Options { return rs.options }

// Terms returns a copy of the compiled terms in query order.
func (rs *RuleSet) Terms() []Term {
	out := make([]Term, len(rs.terms))
	copy(out, rs.terms)
	return out
}

// Matches reports whether text satisfies the query: no excluded term
// occurs, every boosted term occurs and at least one required or boosted
// term occurs.
func (rs *RuleSet) Matches(text string) bool {
	if !rs.accepts(text) {
		return false
	}
	ok, err := rs.partial.MatchString(text)
	return err == nil && ok
}

// FindAll returns every non-overlapping occurrence of a required or boosted
// term in text, scanning left to right. It returns nil when text is
// rejected by an excluded or missing boosted term.
func (rs *RuleSet) FindAll(text string) []Match {
	if !rs.accepts(text) {
		return nil
	}

	var matches []Match
	m, err := rs.partial.FindStringMatch(text)
	for err == nil && m != nil {
		matches = append(matches, Match{Text: m.String(), Index: m.Index})
		m, err = rs.partial.FindNextMatch(m)
	}
	return matches
}

// String returns the partial pattern, mostly for debugging.
func (rs *RuleSet) String() string {
	return rs.partial.String()
}

func (rs *RuleSet) accepts(text string) bool {
	if rs.negative != nil {
		if ok, err := rs.negative.MatchString(text); err != nil || ok {
			return false
		}
	}
	for _, re := range rs.positive {
		if ok, err := re.MatchString(text); err != nil || !ok {
			return false
		}
	}
	return true
}

func union(patterns []string) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = "(?:" + p + ")"
	}
	return strings.Join(parts, "|")
}

// mustCompile panics only on a rendering bug: every fragment renders to a
// valid pattern.
func mustCompile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.IgnoreCase)
	re.MatchTimeout = MatchTimeout
	return re
}
