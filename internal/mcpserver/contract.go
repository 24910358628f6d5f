package mcpserver

import (
	"strings"

	"github.com/starford/eotext/pkg/esperanto"
)

const guideRules = `
## Rules

1. **UTF-8** uses the precomposed letters ĉ ĝ ĥ ĵ ŝ ŭ and their capitals.
2. **x-system** appends ` + "`x`" + ` to the base letter: ` + "`cx gx hx jx sx ux`" + `.
   Decoding ignores the case of the ` + "`x`" + `: ` + "`CX`" + `, ` + "`Cx`" + ` and ` + "`cX`" + ` all give Ĉ.
3. **h-system** appends ` + "`h`" + ` to c, g, h, j, s and writes ŭ as a plain ` + "`u`" + `.
   When decoding, ` + "`au`" + ` becomes ` + "`aŭ`" + `; other ` + "`u`" + ` letters stay as they are.
4. The h-system is ambiguous. A pair is kept literally when a vocabulary entry
   covers it, e.g. ` + "`senchava`" + ` stays ` + "`senchava`" + ` and ` + "`chiuj`" + ` becomes ` + "`ĉiuj`" + `.
   Add missing roots with the ` + "`add_vocabulary_word`" + ` tool.
5. The base letter keeps its case; the added suffix is lowercase (` + "`Ĉ`" + ` → ` + "`Cx`" + `).
6. Conversions between x-system and h-system go through UTF-8.
7. Everything that is not one of the six letters passes through unchanged.
`

// Guide returns the Markdown transliteration guide with the letter table.
func Guide() string {
	var b strings.Builder
	b.WriteString("# Esperanto Writing Systems\n\n")
	b.WriteString("| UTF-8 | x-system | h-system |\n|---|---|---|\n")
	for _, r := range "ĉĝĥĵŝŭĈĜĤĴŜŬ" {
		b.WriteString("| " + string(r))
		for _, sys := range []esperanto.System{esperanto.XSystem, esperanto.HSystem} {
			d, _ := esperanto.DiacriticToDigraph(r, sys)
			b.WriteString(" | `" + d + "`")
		}
		b.WriteString(" |\n")
	}
	b.WriteString(guideRules)
	return b.String()
}
