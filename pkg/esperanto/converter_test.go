package esperanto

import (
	"errors"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		from, to System
		input    string
		want     string
	}{
		{UTF8, XSystem, "ĉiuĵaŭde", "cxiujxauxde"},
		{XSystem, UTF8, "cxiujxauxde", "ĉiuĵaŭde"},
		{UTF8, HSystem, "ĉiuĵaŭde", "chiujhaude"},
		{HSystem, UTF8, "chiujhaude", "ĉiuĵaŭde"},
		{XSystem, HSystem, "cxiujxauxde", "chiujhaude"},
		{HSystem, XSystem, "chiujhaude senchava", "cxiujxauxde senchava"},
		{XSystem, XSystem, "cxiu", "cxiu"},
		{HSystem, HSystem, "chiu", "chiu"},
		{UTF8, UTF8, "ĉiu", "ĉiu"},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			got, err := Convert(tt.from, tt.to, tt.input)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvert_UnknownSystem(t *testing.T) {
	if _, err := Convert(System(9), UTF8, "x"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("err = %v, want ErrUnknownSystem", err)
	}
	if _, err := Convert(UTF8, System(-1), "x"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("err = %v, want ErrUnknownSystem", err)
	}
}

var conversions = map[string]func(string) string{
	"UTF8ToXSystem": UTF8ToXSystem,
	"XSystemToUTF8": XSystemToUTF8,
	"UTF8ToHSystem": UTF8ToHSystem,
	"HSystemToUTF8": HSystemToUTF8,
}

func TestTotality(t *testing.T) {
	inputs := []string{"", " ", "\t\n", "\xff\xfe", "日本語", "🙂 h x u", "c", "h", "x", "cx", "ch", "au", "Ĉ", "c\u0302"}
	for name, fn := range conversions {
		for _, in := range inputs {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Errorf("%s(%q) panicked: %v", name, in, r)
					}
				}()
				fn(in)
			}()
		}
	}
}

func TestPassThrough(t *testing.T) {
	inputs := []string{
		pangram,
		"12, 3.5!? \t\n",
		"Привет мир",
		"bona tago al vi",
		// Combining marks are not diacritic letters.
		"c\u0302iu",
		"S\u0302i u\u0306",
	}
	for _, in := range inputs {
		for name, fn := range conversions {
			if got := fn(in); got != in {
				t.Errorf("%s(%q) = %q", name, in, got)
			}
		}
	}
}

func TestSeparatorsPreserved(t *testing.T) {
	input := "ĉu?! 42 — «ŝi», (ĝi)\t\nĵaŭ."
	x := UTF8ToXSystem(input)
	h := UTF8ToHSystem(input)
	if want := "cxu?! 42 — «sxi», (gxi)\t\njxaux."; x != want {
		t.Errorf("x-system = %q, want %q", x, want)
	}
	if want := "chu?! 42 — «shi», (ghi)\t\njhau."; h != want {
		t.Errorf("h-system = %q, want %q", h, want)
	}
	if got := XSystemToUTF8(x); got != input {
		t.Errorf("x-system back = %q", got)
	}
	if got := HSystemToUTF8(h); got != input {
		t.Errorf("h-system back = %q", got)
	}
}

func TestComposeMarks(t *testing.T) {
	c := NewConverter(WithComposeMarks(true))
	if !c.ComposeMarks() {
		t.Fatal("ComposeMarks() = false")
	}

	tests := []struct {
		name   string
		encode func(string) string
		input  string
		want   string
	}{
		{"x-system", c.UTF8ToXSystem, "c\u0302iu\u0306", "cxiuux"},
		{"x-system capital", c.UTF8ToXSystem, "S\u0302i", "Sxi"},
		{"h-system", c.UTF8ToHSystem, "g\u0302i", "ghi"},
		{"unrelated mark", c.UTF8ToXSystem, "c\u0306", "c\u0306"},
		{"mixed forms", c.UTF8ToXSystem, "ĉc\u0302", "cxcx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.encode(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSystem(t *testing.T) {
	for in, want := range map[string]System{
		"u": UTF8, "UTF-8": UTF8, "utf8": UTF8,
		"x": XSystem, "X-System": XSystem,
		"h": HSystem, " hsystem ": HSystem,
	} {
		got, err := ParseSystem(in)
		if err != nil || got != want {
			t.Errorf("ParseSystem(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSystem("q"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("err = %v, want ErrUnknownSystem", err)
	}
	if s := System(7).String(); s != "System(7)" {
		t.Errorf("String() = %q", s)
	}
	if n := HSystem.Name(); n != "h-system" {
		t.Errorf("Name() = %q", n)
	}
	if n := len(Systems()); n != 3 {
		t.Errorf("Systems() has %d entries", n)
	}
}

func TestNewConverterDefaults(t *testing.T) {
	c := NewConverter()
	if c.Vocabulary() != DefaultVocabulary() {
		t.Error("default converter should use DefaultVocabulary")
	}
	if c.CapsAwareSuffix() || c.ComposeMarks() {
		t.Error("options should be off by default")
	}
	if NewConverter(WithVocabulary(nil)).Vocabulary() != DefaultVocabulary() {
		t.Error("nil vocabulary should select DefaultVocabulary")
	}
}
