package query

import (
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
)

const (
	wordStartPattern = `(?<![\p{L}\p{N}])`
	wordEndPattern   = `(?![\p{L}\p{N}])`
)

// CompileTerm turns a token into a term with its fragments and pattern.
func CompileTerm(tok Token, opts Options) Term {
	frags := Fragments(tok.Text, tok.IsPhrase, opts)
	return Term{
		Kind:      kindOf(tok.Modifier),
		IsPhrase:  tok.IsPhrase,
		Raw:       tok.Text,
		Fragments: frags,
		Pattern:   Render(frags),
	}
}

// Fragments converts raw term text into pattern fragments, left to right.
func Fragments(text string, isPhrase bool, opts Options) []Fragment {
	runes := []rune(text)
	n := len(runes)
	frags := make([]Fragment, 0, 4)

	if n > 0 && opts.MatchWordStart && isWordRune(runes[0]) {
		frags = append(frags, Fragment{Kind: FragmentWordStart})
	}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			frags = append(frags, Fragment{Kind: FragmentLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < n; {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < n:
			lit.WriteRune(runes[i+1])
			i += 2

		case r == '*' || (unicode.IsSpace(r) && i+1 < n && runes[i+1] == '*'):
			flush()
			leading := unicode.IsSpace(r)
			if leading {
				i++
			}
			star := i
			i++
			trailing := i < n && unicode.IsSpace(runes[i])
			if trailing {
				i++
			}
			frags = append(frags, Fragment{
				Kind:     FragmentWildcard,
				Starter:  star == 0 || leading,
				Phrase:   isPhrase,
				Boundary: trailing,
			})

		case unicode.IsSpace(r):
			flush()
			for i < n && unicode.IsSpace(runes[i]) {
				i++
			}
			frags = append(frags, Fragment{Kind: FragmentSpace})

		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()

	if n > 0 && opts.MatchWordEnd && isWordRune(runes[n-1]) {
		frags = append(frags, Fragment{Kind: FragmentWordEnd})
	}

	return frags
}

// Render writes fragments as a regexp2 pattern. A continuer that directly
// follows another continuer, or a starter without a boundary, adds nothing
// the previous wildcard cannot already match, so it is dropped.
func Render(frags []Fragment) string {
	var b strings.Builder
	for i, f := range frags {
		if f.Kind == FragmentWildcard && !f.Starter && i > 0 && absorbsContinuer(frags[i-1]) {
			continue
		}
		switch f.Kind {
		case FragmentWordStart:
			b.WriteString(wordStartPattern)
		case FragmentWordEnd:
			b.WriteString(wordEndPattern)
		case FragmentLiteral:
			b.WriteString(regexp2.Escape(f.Text))
		case FragmentSpace:
			b.WriteString(`\s+`)
		case FragmentWildcard:
			if !f.Starter {
				b.WriteString(`\S*`)
				continue
			}
			b.WriteString(`\s?\S+`)
			if f.Phrase {
				b.WriteString(`(?:\s+\S+)*`)
			}
			if f.Boundary {
				b.WriteString(`(?:\s|\z)`)
			}
		}
	}
	return b.String()
}

func absorbsContinuer(prev Fragment) bool {
	return prev.Kind == FragmentWildcard && (!prev.Starter || !prev.Boundary)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
