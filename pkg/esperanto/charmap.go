package esperanto

import "unicode"

const (
	circumflex = '\u0302'
	breve      = '\u0306'
)

// letter is one of the six Esperanto letters carrying a diacritic.
type letter struct {
	base  rune // lowercase ASCII base letter
	lower rune
	upper rune
	mark  rune // combining mark that composes with base
}

var letters = [...]letter{
	{base: 'c', lower: 'ĉ', upper: 'Ĉ', mark: circumflex},
	{base: 'g', lower: 'ĝ', upper: 'Ĝ', mark: circumflex},
	{base: 'h', lower: 'ĥ', upper: 'Ĥ', mark: circumflex},
	{base: 'j', lower: 'ĵ', upper: 'Ĵ', mark: circumflex},
	{base: 's', lower: 'ŝ', upper: 'Ŝ', mark: circumflex},
	{base: 'u', lower: 'ŭ', upper: 'Ŭ', mark: breve},
}

var byDiacritic, byBase = indexLetters()

func indexLetters() (diacritics, bases map[rune]*letter) {
	diacritics = make(map[rune]*letter, 2*len(letters))
	bases = make(map[rune]*letter, 2*len(letters))
	for i := range letters {
		l := &letters[i]
		diacritics[l.lower] = l
		diacritics[l.upper] = l
		bases[l.base] = l
		bases[unicode.ToUpper(l.base)] = l
	}
	return diacritics, bases
}

// suffix returns the marker appended to the base letter in sys. The h-system
// writes ŭ as a bare "u", so it has no suffix there.
func (l *letter) suffix(sys System) (byte, bool) {
	switch sys {
	case XSystem:
		return 'x', true
	case HSystem:
		if l.base == 'u' {
			return 0, false
		}
		return 'h', true
	default:
		return 0, false
	}
}

func (l *letter) digraph(sys System, upper, upperSuffix bool) string {
	var buf [2]byte
	buf[0] = byte(l.base)
	if upper {
		buf[0] = byte(unicode.ToUpper(l.base))
	}
	sfx, ok := l.suffix(sys)
	if !ok {
		return string(buf[:1])
	}
	if upperSuffix {
		sfx = byte(unicode.ToUpper(rune(sfx)))
	}
	buf[1] = sfx
	return string(buf[:])
}

// IsDiacritic reports whether r is one of the twelve Esperanto diacritic
// letters.
func IsDiacritic(r rune) bool {
	_, ok := byDiacritic[r]
	return ok
}

// IsTrigger reports whether r is a base letter that can carry a diacritic
// (c, g, h, j, s, u in either case).
func IsTrigger(r rune) bool {
	_, ok := byBase[r]
	return ok
}

// DiacriticToDigraph returns the representation of a diacritic letter in sys.
// The base letter keeps the case of the input and the suffix is lowercase.
// For UTF8 the letter itself is returned. The result is false when r is not a
// diacritic letter or sys is unknown.
func DiacriticToDigraph(r rune, sys System) (string, bool) {
	l, ok := byDiacritic[r]
	if !ok || !sys.Valid() {
		return "", false
	}
	if sys == UTF8 {
		return string(r), true
	}
	return l.digraph(sys, r == l.upper, false), true
}

// DigraphToDiacritic returns the diacritic letter that base followed by the
// suffix of sys stands for, in the case of base. The h-system has no digraph
// for ŭ, so 'u' is not found there.
func DigraphToDiacritic(base rune, sys System) (rune, bool) {
	l, ok := byBase[base]
	if !ok {
		return 0, false
	}
	if _, ok := l.suffix(sys); !ok {
		return 0, false
	}
	if unicode.IsUpper(base) {
		return l.upper, true
	}
	return l.lower, true
}

// Compose returns the precomposed diacritic letter for a base letter followed
// by a combining mark (for example 'c' + U+0302). It reports false when the
// pair does not compose into an Esperanto letter.
func Compose(base, mark rune) (rune, bool) {
	l, ok := byBase[base]
	if !ok || l.mark != mark {
		return 0, false
	}
	return withCaseOf(l, base), true
}

// withCaseOf returns the lowercase letter l in the case of ref.
func withCaseOf(l *letter, ref rune) rune {
	if unicode.IsUpper(ref) {
		return l.upper
	}
	return l.lower
}
