package esperanto

import "strings"

// UTF8ToXSystem writes every diacritic letter as its base letter followed by
// "x": "ĵaŭdo" → "jxauxdo".
func (c *Converter) UTF8ToXSystem(text string) string {
	return c.encode(text, XSystem)
}

// XSystemToUTF8 replaces every trigger letter followed by "x" or "X" with the
// diacritic letter: "jxauxdo" → "ĵaŭdo".
func (c *Converter) XSystemToUTF8(text string) string {
	return XSystemToUTF8(text)
}

// UTF8ToXSystem converts UTF-8 text to the x-system with the default
// converter.
func UTF8ToXSystem(text string) string {
	return defaultConverter.UTF8ToXSystem(text)
}

// XSystemToUTF8 converts x-system text to UTF-8. The case of the result
// follows the base letter only, so "Cx", "CX" and "cX" give "Ĉ", "Ĉ" and "ĉ".
// An "x" after any other letter is left alone.
func XSystemToUTF8(text string) string {
	if !strings.ContainsAny(text, "xX") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if i+1 < len(text) && (text[i+1] == 'x' || text[i+1] == 'X') {
			if d, ok := DigraphToDiacritic(rune(ch), XSystem); ok {
				b.WriteRune(d)
				i++
				continue
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
