package esperanto

import "strings"

// UTF8ToHSystem writes every diacritic letter in the h-system: ĉ ĝ ĥ ĵ ŝ
// become ch gh hh jh sh and ŭ becomes u, so "ĵaŭdo" → "jhaudo".
func (c *Converter) UTF8ToHSystem(text string) string {
	return c.encode(text, HSystem)
}

// HSystemToUTF8 decodes h-system text word by word. In each word a trigger
// letter followed by "h" becomes the diacritic letter and "au" becomes "aŭ",
// unless the vocabulary marks the pair as literal. Separators between words
// are copied unchanged.
func (c *Converter) HSystemToUTF8(text string) string {
	if !strings.ContainsAny(text, "hHuU") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for _, tok := range Tokenize(text) {
		if !tok.Word {
			b.WriteString(tok.Text)
			continue
		}
		c.decodeWord(&b, tok.Text)
	}
	return b.String()
}

func (c *Converter) decodeWord(b *strings.Builder, word string) {
	if !strings.ContainsAny(word, "hHuU") {
		b.WriteString(word)
		return
	}
	runes := []rune(word)
	folded := fold(runes)
	for i := 0; i < len(runes); i++ {
		switch pairAt(folded, i) {
		case pairH:
			if d, ok := DigraphToDiacritic(runes[i], HSystem); ok && !c.vocab.covers(folded, i) {
				b.WriteRune(d)
				i++
				continue
			}
		case pairAU:
			if !c.vocab.covers(folded, i) {
				b.WriteRune(runes[i])
				b.WriteRune(withCaseOf(byBase['u'], runes[i+1]))
				i++
				continue
			}
		}
		b.WriteRune(runes[i])
	}
}

// UTF8ToHSystem converts UTF-8 text to the h-system with the default
// converter.
func UTF8ToHSystem(text string) string {
	return defaultConverter.UTF8ToHSystem(text)
}

// HSystemToUTF8 converts h-system text to UTF-8 with the default converter
// and the embedded vocabulary.
func HSystemToUTF8(text string) string {
	return defaultConverter.HSystemToUTF8(text)
}
