package esperanto

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Converter converts text between systems with a fixed vocabulary and
// options. A Converter is immutable and safe for concurrent use.
type Converter struct {
	vocab     *Vocabulary
	capsAware bool
	compose   bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithVocabulary sets the vocabulary consulted when decoding the h-system.
// A nil vocabulary selects DefaultVocabulary.
func WithVocabulary(v *Vocabulary) Option {
	return func(c *Converter) {
		c.vocab = v
	}
}

// WithCapsAwareSuffix makes encoders write an uppercase suffix for an
// uppercase letter next to another uppercase letter, so that "ĈIO" becomes
// "CXIO" rather than "CxIO". A capital standing alone before lowercase
// letters keeps a lowercase suffix ("Ĉio" → "Cxio").
func WithCapsAwareSuffix(enabled bool) Option {
	return func(c *Converter) {
		c.capsAware = enabled
	}
}

// WithComposeMarks makes encoders treat a base letter followed by a
// combining circumflex or breve (for example "c\u0302") as the precomposed
// letter. Off by default: such sequences are copied through unchanged.
func WithComposeMarks(enabled bool) Option {
	return func(c *Converter) {
		c.compose = enabled
	}
}

// NewConverter creates a Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{}
	for _, opt := range opts {
		opt(c)
	}
	if c.vocab == nil {
		c.vocab = DefaultVocabulary()
	}
	return c
}

// Vocabulary returns the vocabulary used for h-system decoding.
func (c *Converter) Vocabulary() *Vocabulary { return c.vocab }

// CapsAwareSuffix reports whether the caps-aware suffix mode is on.
func (c *Converter) CapsAwareSuffix() bool { return c.capsAware }

// ComposeMarks reports whether combining marks are composed before encoding.
func (c *Converter) ComposeMarks() bool { return c.compose }

// Convert converts text from one system to another. Converting between the
// x-system and the h-system goes through UTF-8. Converting a system to itself
// returns text unchanged.
func (c *Converter) Convert(from, to System, text string) (string, error) {
	if !from.Valid() {
		return "", fmt.Errorf("%w: from %s", ErrUnknownSystem, from)
	}
	if !to.Valid() {
		return "", fmt.Errorf("%w: to %s", ErrUnknownSystem, to)
	}
	if from == to {
		return text, nil
	}
	utf8Text := text
	switch from {
	case XSystem:
		utf8Text = c.XSystemToUTF8(text)
	case HSystem:
		utf8Text = c.HSystemToUTF8(text)
	}
	switch to {
	case XSystem:
		return c.UTF8ToXSystem(utf8Text), nil
	case HSystem:
		return c.UTF8ToHSystem(utf8Text), nil
	default:
		return utf8Text, nil
	}
}

// encode replaces every precomposed diacritic letter with its representation
// in sys. With compose set, a base letter plus combining mark counts as the
// precomposed letter. All other bytes are copied unchanged.
func (c *Converter) encode(text string, sys System) string {
	if isASCII(text) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	var prev rune
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		width := size
		if c.compose {
			if next, n := utf8.DecodeRuneInString(text[i+size:]); n > 0 {
				if d, ok := Compose(r, next); ok {
					r, width = d, size+n
				}
			}
		}
		l, ok := byDiacritic[r]
		if !ok {
			b.WriteString(text[i : i+size])
			prev = r
			i += size
			continue
		}
		upper := r == l.upper
		upperSuffix := false
		if c.capsAware && upper {
			next, _ := utf8.DecodeRuneInString(text[i+width:])
			upperSuffix = unicode.IsUpper(prev) || unicode.IsUpper(next)
		}
		b.WriteString(l.digraph(sys, upper, upperSuffix))
		prev = r
		i += width
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

var defaultConverter = NewConverter()

// Convert converts text between systems with the default converter.
func Convert(from, to System, text string) (string, error) {
	return defaultConverter.Convert(from, to, text)
}
