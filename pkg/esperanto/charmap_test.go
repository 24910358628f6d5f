package esperanto

import "testing"

func TestDiacriticToDigraph(t *testing.T) {
	tests := []struct {
		letter rune
		sys    System
		want   string
	}{
		{'ĉ', XSystem, "cx"},
		{'Ĉ', XSystem, "Cx"},
		{'ĝ', XSystem, "gx"},
		{'Ĥ', XSystem, "Hx"},
		{'ĵ', XSystem, "jx"},
		{'Ŝ', XSystem, "Sx"},
		{'ŭ', XSystem, "ux"},
		{'ĉ', HSystem, "ch"},
		{'Ĝ', HSystem, "Gh"},
		{'ĥ', HSystem, "hh"},
		{'ŭ', HSystem, "u"},
		{'Ŭ', HSystem, "U"},
		{'ŝ', UTF8, "ŝ"},
	}
	for _, tt := range tests {
		t.Run(string(tt.letter)+"/"+tt.sys.String(), func(t *testing.T) {
			got, ok := DiacriticToDigraph(tt.letter, tt.sys)
			if !ok {
				t.Fatalf("DiacriticToDigraph(%q, %s) not found", tt.letter, tt.sys)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDiacriticToDigraph_NotFound(t *testing.T) {
	for _, r := range []rune{'c', 'x', 'é', 'ň', '1'} {
		if _, ok := DiacriticToDigraph(r, XSystem); ok {
			t.Errorf("rune %q should not map", r)
		}
	}
	if _, ok := DiacriticToDigraph('ĉ', System(42)); ok {
		t.Error("unknown system should not map")
	}
}

func TestDigraphToDiacritic(t *testing.T) {
	tests := []struct {
		base rune
		sys  System
		want rune
	}{
		{'c', XSystem, 'ĉ'},
		{'S', HSystem, 'Ŝ'},
		{'U', XSystem, 'Ŭ'},
	}
	for _, tt := range tests {
		got, ok := DigraphToDiacritic(tt.base, tt.sys)
		if !ok || got != tt.want {
			t.Errorf("DigraphToDiacritic(%q, %s) = %q, %v; want %q", tt.base, tt.sys, got, ok, tt.want)
		}
	}

	// The h-system has no digraph for ŭ.
	if _, ok := DigraphToDiacritic('u', HSystem); ok {
		t.Error("'u' should not be a trigger in the h-system")
	}
	if _, ok := DigraphToDiacritic('a', XSystem); ok {
		t.Error("'a' should not be a trigger")
	}
	if _, ok := DigraphToDiacritic('c', UTF8); ok {
		t.Error("UTF-8 has no digraphs")
	}
}

func TestCharacterMapIsBijective(t *testing.T) {
	for _, sys := range []System{XSystem, HSystem} {
		seen := make(map[string]rune)
		for r := range byDiacritic {
			d, ok := DiacriticToDigraph(r, sys)
			if !ok {
				t.Fatalf("%s: %q has no digraph", sys.Name(), r)
			}
			if prev, dup := seen[d]; dup {
				t.Fatalf("%s: %q and %q both map to %q", sys.Name(), prev, r, d)
			}
			seen[d] = r
			if sys == HSystem && (r == 'ŭ' || r == 'Ŭ') {
				continue
			}
			if back, ok := DigraphToDiacritic(rune(d[0]), sys); !ok || back != r {
				t.Errorf("%s: %q -> %q -> %q", sys.Name(), r, d, back)
			}
		}
		if len(seen) != 12 {
			t.Errorf("%s: %d digraphs, want 12", sys.Name(), len(seen))
		}
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		base, mark rune
		want       rune
		ok         bool
	}{
		{'c', '\u0302', 'ĉ', true},
		{'J', '\u0302', 'Ĵ', true},
		{'U', '\u0306', 'Ŭ', true},
		{'c', '\u0306', 0, false}, // breve does not belong on c
		{'u', '\u0302', 0, false},
		{'a', '\u0302', 0, false},
	}
	for _, tt := range tests {
		got, ok := Compose(tt.base, tt.mark)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Compose(%q, %U) = %q, %v; want %q, %v", tt.base, tt.mark, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsTriggerAndIsDiacritic(t *testing.T) {
	for _, r := range "cghjsuCGHJSU" {
		if !IsTrigger(r) {
			t.Errorf("IsTrigger(%q) = false", r)
		}
	}
	for _, r := range "abxzĉ" {
		if IsTrigger(r) {
			t.Errorf("IsTrigger(%q) = true", r)
		}
	}
	for _, r := range "ĉĝĥĵŝŭĈĜĤĴŜŬ" {
		if !IsDiacritic(r) {
			t.Errorf("IsDiacritic(%q) = false", r)
		}
	}
	if IsDiacritic('c') {
		t.Error("IsDiacritic('c') = true")
	}
}
