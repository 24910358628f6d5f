package esperanto

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed vocabulary.yaml
var embeddedVocabulary []byte

// ErrInvalidEntry is returned for vocabulary entries that are empty, contain
// non-letters, or contain no ambiguous h-system pair.
var ErrInvalidEntry = errors.New("invalid vocabulary entry")

// MatchMode controls how a word is compared with vocabulary entries.
type MatchMode string

// Match modes.
const (
	// MatchFragment keeps a pair literal when any entry occurring inside the
	// word covers it.
	MatchFragment MatchMode = "fragment"
	// MatchPrefix keeps a pair literal when the word starts with an entry
	// that covers it.
	MatchPrefix MatchMode = "prefix"
	// MatchExact keeps a pair literal only when the whole word is an entry.
	MatchExact MatchMode = "exact"
)

// MatchModes lists the supported match modes.
func MatchModes() []MatchMode {
	return []MatchMode{MatchFragment, MatchPrefix, MatchExact}
}

// ParseMatchMode parses a match mode name. An empty name selects
// MatchFragment.
func ParseMatchMode(name string) (MatchMode, error) {
	switch m := MatchMode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return MatchFragment, nil
	case MatchFragment, MatchPrefix, MatchExact:
		return m, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", name)
	}
}

// pair kinds found while scanning a case-folded word.
type pairKind int

const (
	pairNone pairKind = iota
	pairH             // trigger letter + "h"
	pairAU            // "au" standing for "aŭ"
)

func pairAt(folded []rune, i int) pairKind {
	if i < 0 || i+1 >= len(folded) {
		return pairNone
	}
	switch {
	case folded[i+1] == 'h':
		if _, ok := DigraphToDiacritic(folded[i], HSystem); ok {
			return pairH
		}
	case folded[i] == 'a' && folded[i+1] == 'u':
		return pairAU
	}
	return pairNone
}

// fold lowercases rune by rune so that indexes stay aligned with the input.
func fold(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// Vocabulary is an immutable set of words and root fragments in which an
// apparent h-system pair is a literal letter sequence. It is safe for
// concurrent use.
type Vocabulary struct {
	mode    MatchMode
	version int
	entries map[string]struct{}
	lengths []int // distinct entry lengths in runes, ascending
}

// NewVocabulary builds a vocabulary from entries. Entries are normalized with
// NormalizeEntry; duplicates collapse.
func NewVocabulary(mode MatchMode, entries ...string) (*Vocabulary, error) {
	if _, err := ParseMatchMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = MatchFragment
	}
	v := &Vocabulary{mode: mode, entries: make(map[string]struct{}, len(entries))}
	if err := v.add(entries); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vocabulary) add(entries []string) error {
	for _, e := range entries {
		n, err := NormalizeEntry(e)
		if err != nil {
			return err
		}
		if _, ok := v.entries[n]; ok {
			continue
		}
		v.entries[n] = struct{}{}
		l := len([]rune(n))
		if i, found := slices.BinarySearch(v.lengths, l); !found {
			v.lengths = slices.Insert(v.lengths, i, l)
		}
	}
	return nil
}

// With returns a new vocabulary holding the entries of v plus entries. v is
// not modified.
func (v *Vocabulary) With(entries ...string) (*Vocabulary, error) {
	out := &Vocabulary{
		mode:    v.mode,
		version: v.version,
		entries: make(map[string]struct{}, len(v.entries)+len(entries)),
		lengths: slices.Clone(v.lengths),
	}
	for e := range v.entries {
		out.entries[e] = struct{}{}
	}
	if err := out.add(entries); err != nil {
		return nil, err
	}
	return out, nil
}

// WithMode returns a vocabulary sharing the entries of v with a different
// match mode.
func (v *Vocabulary) WithMode(mode MatchMode) (*Vocabulary, error) {
	if _, err := ParseMatchMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = MatchFragment
	}
	out := *v
	out.mode = mode
	return &out, nil
}

// Mode returns the match mode.
func (v *Vocabulary) Mode() MatchMode { return v.mode }

// Version returns the data set version for the embedded vocabulary, or zero
// for vocabularies built from scratch.
func (v *Vocabulary) Version() int { return v.version }

// Len returns the number of entries.
func (v *Vocabulary) Len() int { return len(v.entries) }

// Contains reports whether word, after normalization, is an entry.
func (v *Vocabulary) Contains(word string) bool {
	n, err := NormalizeEntry(word)
	if err != nil {
		return false
	}
	_, ok := v.entries[n]
	return ok
}

// Entries returns the entries in lexical order.
func (v *Vocabulary) Entries() []string {
	out := make([]string, 0, len(v.entries))
	for e := range v.entries {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// IsLiteralH reports whether the trigger letter at rune index position of
// word, together with the "h" after it, is a literal letter sequence that
// must be kept. It is false when position does not start such a pair.
func (v *Vocabulary) IsLiteralH(word string, position int) bool {
	folded := fold([]rune(word))
	return pairAt(folded, position) == pairH && v.covers(folded, position)
}

// IsLiteralAU reports whether the "au" starting at rune index position of
// word is two separate vowels rather than "aŭ".
func (v *Vocabulary) IsLiteralAU(word string, position int) bool {
	folded := fold([]rune(word))
	return pairAt(folded, position) == pairAU && v.covers(folded, position)
}

// covers reports whether an entry matched against the case-folded word spans
// both runes of the pair starting at pos.
func (v *Vocabulary) covers(folded []rune, pos int) bool {
	if len(v.entries) == 0 {
		return false
	}
	end := pos + 2
	switch v.mode {
	case MatchExact:
		return v.has(folded)
	case MatchPrefix:
		for _, l := range v.lengths {
			if l >= end && l <= len(folded) && v.has(folded[:l]) {
				return true
			}
		}
		return false
	default:
		for _, l := range v.lengths {
			if l > len(folded) {
				break
			}
			first := max(0, end-l)
			last := min(pos, len(folded)-l)
			for s := first; s <= last; s++ {
				if v.has(folded[s : s+l]) {
					return true
				}
			}
		}
		return false
	}
}

func (v *Vocabulary) has(r []rune) bool {
	_, ok := v.entries[string(r)]
	return ok
}

// NormalizeEntry trims, NFC-normalizes and lowercases a vocabulary entry and
// checks that it is a single word containing at least one ambiguous pair.
func NormalizeEntry(entry string) (string, error) {
	s := norm.NFC.String(strings.TrimSpace(entry))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidEntry)
	}
	folded := fold([]rune(s))
	hasPair := false
	for i, r := range folded {
		if !IsWordRune(r) {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidEntry, entry, r)
		}
		if pairAt(folded, i) != pairNone {
			hasPair = true
		}
	}
	if !hasPair {
		return "", fmt.Errorf("%w: %q has no h-system pair to keep", ErrInvalidEntry, entry)
	}
	return string(folded), nil
}

// VocabularyFile is the YAML layout of vocabulary data sets.
type VocabularyFile struct {
	Version   int      `yaml:"version"`
	LiteralH  []string `yaml:"literal_h"`
	LiteralAU []string `yaml:"literal_au"`
	Words     []string `yaml:"words"`
}

// Entries returns every entry in the file.
func (f *VocabularyFile) Entries() []string {
	out := make([]string, 0, len(f.LiteralH)+len(f.LiteralAU)+len(f.Words))
	out = append(out, f.LiteralH...)
	out = append(out, f.LiteralAU...)
	return append(out, f.Words...)
}

// ParseVocabulary decodes a vocabulary data set and validates its entries.
func ParseVocabulary(data []byte) (*VocabularyFile, error) {
	var f VocabularyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vocabulary: %w", err)
	}
	for _, e := range f.Entries() {
		if _, err := NormalizeEntry(e); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

var defaultVocabulary = mustLoadDefault()

func mustLoadDefault() *Vocabulary {
	f, err := ParseVocabulary(embeddedVocabulary)
	if err != nil {
		panic(fmt.Sprintf("esperanto: embedded vocabulary: %v", err))
	}
	v, err := NewVocabulary(MatchFragment, f.Entries()...)
	if err != nil {
		panic(fmt.Sprintf("esperanto: embedded vocabulary: %v", err))
	}
	v.version = f.Version
	return v
}

// DefaultVocabulary returns the embedded vocabulary with fragment matching.
func DefaultVocabulary() *Vocabulary {
	return defaultVocabulary
}
