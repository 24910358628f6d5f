package esperanto

import (
	"unicode"
	"unicode/utf8"
)

// Token is a run of text that is either a word or the separator between two
// words. Concatenating the Text of every token reproduces the input exactly.
type Token struct {
	Text string
	Word bool
}

// IsWordRune reports whether r belongs to a word. Letters of any script and
// combining marks are word runes; everything else (spaces, digits,
// punctuation, apostrophes, invalid bytes) separates words. The predicate
// depends only on the Unicode tables, never on the process locale.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Mn, r)
}

// Tokenize splits text into alternating word and separator tokens. Invalid
// UTF-8 bytes are kept verbatim inside separator tokens.
func Tokenize(text string) []Token {
	var tokens []Token
	start := 0
	inWord := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		word := IsWordRune(r)
		if i > start && word != inWord {
			tokens = append(tokens, Token{Text: text[start:i], Word: inWord})
			start = i
		}
		inWord = word
		i += size
	}
	if start < len(text) {
		tokens = append(tokens, Token{Text: text[start:], Word: inWord})
	}
	return tokens
}
