package query

import (
	"strings"
	"unicode"
)

// Tokenize splits a query into tokens.
//
// Each token is an optional "+" or "-" directly followed by either a double
// quoted phrase or a run of non-whitespace characters. A quote that is never
// closed runs to the end of the query. A modifier with nothing after it is
// read as a bare word. Empty phrases are skipped.
func Tokenize(text string) []Token {
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	tokens := make([]Token, 0)

	for i := 0; i < n; {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		var mod rune
		if (runes[i] == '+' || runes[i] == '-') && i+1 < n && !unicode.IsSpace(runes[i+1]) {
			mod = runes[i]
			i++
		}

		if runes[i] == '"' {
			start := i + 1
			end := start
			for end < n && runes[end] != '"' {
				end++
			}
			phrase := string(runes[start:end])
			// Skip the closing quote when there is one.
			i = end + 1
			if phrase == "" {
				continue
			}
			tokens = append(tokens, Token{Modifier: mod, Text: phrase, IsPhrase: true})
			continue
		}

		start := i
		for i < n && !unicode.IsSpace(runes[i]) {
			i++
		}
		tokens = append(tokens, Token{Modifier: mod, Text: string(runes[start:i])})
	}

	return tokens
}

// kindOf maps a modifier to its term kind.
func kindOf(mod rune) Kind {
	switch mod {
	case '+':
		return KindBoosted
	case '-':
		return KindExcluded
	default:
		return KindRequired
	}
}
