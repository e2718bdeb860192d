package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "   ",
			want:  []Token{},
		},
		{
			name:  "bare words",
			input: "red  fox",
			want: []Token{
				{Text: "red"},
				{Text: "fox"},
			},
		},
		{
			name:  "modifiers",
			input: "+red -blue fox",
			want: []Token{
				{Modifier: '+', Text: "red"},
				{Modifier: '-', Text: "blue"},
				{Text: "fox"},
			},
		},
		{
			name:  "quoted phrase",
			input: `-"blue fox" "quick * fox"`,
			want: []Token{
				{Modifier: '-', Text: "blue fox", IsPhrase: true},
				{Text: "quick * fox", IsPhrase: true},
			},
		},
		{
			name:  "unterminated quote runs to end",
			input: `fox "quick brown`,
			want: []Token{
				{Text: "fox"},
				{Text: "quick brown", IsPhrase: true},
			},
		},
		{
			name:  "lone modifiers are words",
			input: "+ - a",
			want: []Token{
				{Text: "+"},
				{Text: "-"},
				{Text: "a"},
			},
		},
		{
			name:  "double modifier keeps the second",
			input: "--x",
			want:  []Token{{Modifier: '-', Text: "-x"}},
		},
		{
			name:  "empty phrase is skipped",
			input: `"" a`,
			want:  []Token{{Text: "a"}},
		},
		{
			name:  "word after closing quote",
			input: `"a b"c`,
			want: []Token{
				{Text: "a b", IsPhrase: true},
				{Text: "c"},
			},
		},
		{
			name:  "quote inside word",
			input: `ab"cd ef"`,
			want: []Token{
				{Text: `ab"cd`},
				{Text: `ef"`},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindRequired, kindOf(0))
	assert.Equal(t, KindBoosted, kindOf('+'))
	assert.Equal(t, KindExcluded, kindOf('-'))
	assert.Equal(t, "excluded", KindExcluded.String())
}
