package esperanto

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{name: "empty", input: "", want: nil},
		{name: "single word", input: "saluton", want: []Token{{Text: "saluton", Word: true}}},
		{
			name:  "punctuation",
			input: "Saluton, mondo!",
			want: []Token{
				{Text: "Saluton", Word: true},
				{Text: ", ", Word: false},
				{Text: "mondo", Word: true},
				{Text: "!", Word: false},
			},
		},
		{
			name:  "apostrophe splits",
			input: "de l'akvo",
			want: []Token{
				{Text: "de", Word: true},
				{Text: " ", Word: false},
				{Text: "l", Word: true},
				{Text: "'", Word: false},
				{Text: "akvo", Word: true},
			},
		},
		{
			name:  "digits separate",
			input: "ab12cd",
			want: []Token{
				{Text: "ab", Word: true},
				{Text: "12", Word: false},
				{Text: "cd", Word: true},
			},
		},
		{
			name:  "diacritics stay in words",
			input: "ĉiuĵaŭde ",
			want: []Token{
				{Text: "ĉiuĵaŭde", Word: true},
				{Text: " ", Word: false},
			},
		},
		{
			name:  "combining mark stays in word",
			input: "c\u0302u",
			want:  []Token{{Text: "c\u0302u", Word: true}},
		},
		{
			name:  "invalid byte is a separator",
			input: "ab\xffcd",
			want: []Token{
				{Text: "ab", Word: true},
				{Text: "\xff", Word: false},
				{Text: "cd", Word: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %+v, want %+v", tt.input, got, tt.want)
			}

			var b strings.Builder
			for _, tok := range got {
				b.WriteString(tok.Text)
			}
			if b.String() != tt.input {
				t.Errorf("tokens join to %q, want %q", b.String(), tt.input)
			}
		})
	}
}

func TestIsWordRune(t *testing.T) {
	for _, r := range "aZĉŬéжλ\u0302" {
		if !IsWordRune(r) {
			t.Errorf("IsWordRune(%q) = false", r)
		}
	}
	for _, r := range " \t\n0-'.,!?«»" {
		if IsWordRune(r) {
			t.Errorf("IsWordRune(%q) = true", r)
		}
	}
}
