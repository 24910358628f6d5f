package esperanto

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	if v.Mode() != MatchFragment {
		t.Errorf("mode = %q", v.Mode())
	}
	if v.Version() != 1 {
		t.Errorf("version = %d", v.Version())
	}
	if v.Len() <= 40 {
		t.Errorf("len = %d, want > 40", v.Len())
	}
	for _, w := range []string{"senchav", "flughaven", "naur", "kakauj"} {
		if !v.Contains(w) {
			t.Errorf("missing %q", w)
		}
	}
	if v.Contains("chiuj") {
		t.Error("chiuj should not be an entry")
	}
	if !slices.IsSorted(v.Entries()) {
		t.Error("entries not sorted")
	}
}

func TestIsLiteralH(t *testing.T) {
	exact, err := NewVocabulary(MatchExact, "senchav")
	if err != nil {
		t.Fatal(err)
	}
	prefix, err := exact.WithMode(MatchPrefix)
	if err != nil {
		t.Fatal(err)
	}
	fragment, err := exact.WithMode(MatchFragment)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		vocab *Vocabulary
		word  string
		pos   int
		want  bool
	}{
		{"exact whole word", exact, "senchav", 3, true},
		{"exact ignores case", exact, "SenChav", 3, true},
		{"exact rejects inflection", exact, "senchavaj", 3, false},
		{"prefix accepts inflection", prefix, "senchavaj", 3, true},
		{"prefix rejects compound", prefix, "nesenchavaj", 5, false},
		{"fragment accepts compound", fragment, "nesenchavaj", 5, true},
		{"unknown word", fragment, "chiuj", 0, false},
		{"position is not a pair", fragment, "senchav", 0, false},
		{"position out of range", fragment, "senchav", 42, false},
		{"negative position", fragment, "senchav", -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vocab.IsLiteralH(tt.word, tt.pos); got != tt.want {
				t.Errorf("IsLiteralH(%q, %d) = %v, want %v", tt.word, tt.pos, got, tt.want)
			}
		})
	}
}

func TestIsLiteralAU(t *testing.T) {
	v := DefaultVocabulary()
	if !v.IsLiteralAU("Nauron", 1) {
		t.Error("Nauron: au should be literal")
	}
	if v.IsLiteralAU("hierau", 4) {
		t.Error("hierau: au should convert")
	}
	if v.IsLiteralH("Nauron", 1) {
		t.Error("au is not an h pair")
	}
}

func TestIsLiteralH_PositionsAreRunes(t *testing.T) {
	v, err := NewVocabulary(MatchFragment, "ĉashund")
	if err != nil {
		t.Fatal(err)
	}
	// "ĉ" is two bytes but one rune: the "sh" pair starts at rune 2.
	if !v.IsLiteralH("ĉashundo", 2) {
		t.Error("IsLiteralH(ĉashundo, 2) = false")
	}
}

func TestNormalizeEntry(t *testing.T) {
	for in, want := range map[string]string{
		"  SENCHAV ": "senchav",
		"Nauro":      "nauro",
		"Ĉasho": "ĉasho",
	} {
		got, err := NormalizeEntry(in)
		if err != nil || got != want {
			t.Errorf("NormalizeEntry(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	for _, bad := range []string{"", "   ", "saluton", "sen chav", "sench4v", "bus-haltejo"} {
		if _, err := NormalizeEntry(bad); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("NormalizeEntry(%q) err = %v, want ErrInvalidEntry", bad, err)
		}
	}
}

func TestNewVocabulary(t *testing.T) {
	v, err := NewVocabulary("", "senchav", "Senchav", "naur")
	if err != nil {
		t.Fatal(err)
	}
	if v.Mode() != MatchFragment {
		t.Errorf("mode = %q", v.Mode())
	}
	if got := v.Entries(); !reflect.DeepEqual(got, []string{"naur", "senchav"}) {
		t.Errorf("entries = %v", got)
	}

	if _, err := NewVocabulary("fuzzy", "senchav"); err == nil {
		t.Error("unknown mode should fail")
	}
	if _, err := NewVocabulary(MatchExact, "saluton"); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("err = %v, want ErrInvalidEntry", err)
	}
}

func TestVocabularyWithIsImmutable(t *testing.T) {
	base, err := NewVocabulary(MatchFragment, "senchav")
	if err != nil {
		t.Fatal(err)
	}
	extended, err := base.With("flughaven")
	if err != nil {
		t.Fatal(err)
	}

	if base.Len() != 1 || extended.Len() != 2 {
		t.Errorf("len base=%d extended=%d", base.Len(), extended.Len())
	}
	if base.Contains("flughaven") {
		t.Error("base was modified")
	}
	if !extended.IsLiteralH("flughaveno", 3) {
		t.Error("extended vocabulary misses flughaven")
	}

	if _, err := base.With("saluton"); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("err = %v, want ErrInvalidEntry", err)
	}
	if base.Len() != 1 {
		t.Error("failed With modified base")
	}
}

func TestParseMatchMode(t *testing.T) {
	for in, want := range map[string]MatchMode{
		"":         MatchFragment,
		"fragment": MatchFragment,
		" Prefix ": MatchPrefix,
		"EXACT":    MatchExact,
	} {
		got, err := ParseMatchMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMatchMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseMatchMode("substring"); err == nil {
		t.Error("unknown mode should fail")
	}
	if n := len(MatchModes()); n != 3 {
		t.Errorf("MatchModes() has %d entries", n)
	}
}

func TestParseVocabulary(t *testing.T) {
	data := []byte(`
version: 3
literal_h:
  - senchav
literal_au:
  - naur
words:
  - flughaven
`)
	f, err := ParseVocabulary(data)
	if err != nil {
		t.Fatal(err)
	}
	if f.Version != 3 {
		t.Errorf("version = %d", f.Version)
	}
	if got := f.Entries(); !reflect.DeepEqual(got, []string{"senchav", "naur", "flughaven"}) {
		t.Errorf("entries = %v", got)
	}

	if _, err := ParseVocabulary([]byte("words:\n  - saluton\n")); !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("err = %v, want ErrInvalidEntry", err)
	}
	if _, err := ParseVocabulary([]byte("words: [unclosed")); err == nil {
		t.Error("malformed YAML should fail")
	}

	f, err = ParseVocabulary(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Entries()) != 0 {
		t.Errorf("entries = %v", f.Entries())
	}
}
