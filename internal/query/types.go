// Package query compiles free-text search queries into match rules.
//
// A query is a whitespace separated list of terms. A term is either a bare
// word or a double quoted phrase, optionally prefixed by "+" (the term must be
// present) or "-" (documents containing the term are rejected). Unprefixed
// terms are alternatives: any one of them is enough for a document to match.
// A "*" inside a term is a wildcard and "\" escapes the character after it.
package query

// Kind classifies a term by its modifier.
type Kind int

const (
	// KindRequired is a term without modifier. At least one required or
	// boosted term must match for a document to be returned.
	KindRequired Kind = iota
	// KindExcluded is a term prefixed with "-".
	KindExcluded
	// KindBoosted is a term prefixed with "+". Every boosted term must match.
	KindBoosted
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindExcluded:
		return "excluded"
	case KindBoosted:
		return "boosted"
	default:
		return "unknown"
	}
}

// FragmentKind identifies one piece of a compiled term pattern.
type FragmentKind int

const (
	// FragmentLiteral matches its text literally (case-insensitively).
	FragmentLiteral FragmentKind = iota
	// FragmentSpace matches one or more whitespace characters.
	FragmentSpace
	// FragmentWordStart asserts that no letter or digit precedes the position.
	FragmentWordStart
	// FragmentWordEnd asserts that no letter or digit follows the position.
	FragmentWordEnd
	// FragmentWildcard is a "*" in the term.
	FragmentWildcard
)

// String returns a string representation of the fragment kind.
func (k FragmentKind) String() string {
	switch k {
	case FragmentLiteral:
		return "literal"
	case FragmentSpace:
		return "space"
	case FragmentWordStart:
		return "word_start"
	case FragmentWordEnd:
		return "word_end"
	case FragmentWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Fragment is one element of a term pattern.
type Fragment struct {
	Kind FragmentKind
	// Text is the literal text for FragmentLiteral.
	Text string
	// Starter is set on wildcards that begin a word: a "*" at the start of
	// the term or directly after whitespace. Other wildcards continue the
	// word they are in.
	Starter bool
	// Phrase lets a starter wildcard absorb several words.
	Phrase bool
	// Boundary makes a starter wildcard end on whitespace or end of text.
	Boundary bool
}

// Token is one lexical unit of a query before pattern synthesis.
type Token struct {
	// Modifier is '+', '-' or 0.
	Modifier rune
	// Text is the raw term text with quotes stripped.
	Text string
	// IsPhrase is true for quoted terms.
	IsPhrase bool
}

// Term is a token after classification and pattern synthesis.
type Term struct {
	Kind      Kind
	IsPhrase  bool
	Raw       string
	Fragments []Fragment
	// Pattern is the rendered regular expression for the fragments.
	Pattern string
}

// Options controls word boundary anchoring of terms.
type Options struct {
	// MatchWordStart anchors terms that start with a letter or digit to the
	// start of a word.
	MatchWordStart bool `json:"match_word_start" yaml:"match_word_start"`
	// MatchWordEnd anchors terms that end with a letter or digit to the end
	// of a word.
	MatchWordEnd bool `json:"match_word_end" yaml:"match_word_end"`
}

// DefaultOptions returns word-start anchoring on and word-end anchoring off.
func DefaultOptions() Options {
	return Options{MatchWordStart: true, MatchWordEnd: false}
}

// OptionsFrom builds Options from optional flags, using the defaults for nil values.
func OptionsFrom(matchWordStart, matchWordEnd *bool) Options {
	opts := DefaultOptions()
	if matchWordStart != nil {
		opts.MatchWordStart = *matchWordStart
	}
	if matchWordEnd != nil {
		opts.MatchWordEnd = *matchWordEnd
	}
	return opts
}

// Match is one occurrence of a required or boosted term in a text.
type Match struct {
	// Text is the matched substring.
	Text string
	// Index is the offset of the match in runes.
	Index int
}
