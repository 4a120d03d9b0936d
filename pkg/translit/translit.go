// Package translit converts text between Cyrillic and Latin scripts so search
// inputs typed on either keyboard layout can be compared against option names.
//
// The tables follow the common Russian passport-style romanisation with a few
// Ukrainian letters added. Conversion is lossy in both directions; callers
// should only use the output for matching, never for display.
package translit

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Transliterator converts a string into the Latin or Cyrillic script. Runes
// without a mapping pass through unchanged.
type Transliterator interface {
	ToLatin(s string) string
	ToCyrillic(s string) string
}

// Pair maps one lowercase Cyrillic letter to its Latin spelling.
type Pair struct {
	Cyrillic rune
	Latin    string
}

// Table is a table-driven Transliterator. The zero value passes everything
// through unchanged.
type Table struct {
	toLatin    map[rune]string
	toCyrillic map[string]rune
	// Latin keys sorted by length, longest first, for greedy matching.
	latinKeys []string
}

var _ Transliterator = (*Table)(nil)

// NewTable builds a Table from forward pairs plus optional reverse overrides.
// Reverse entries win over derived ones, which lets ambiguous spellings such
// as "y" pick a single Cyrillic letter.
func NewTable(pairs []Pair, reverse map[string]rune) *Table {
	t := &Table{
		toLatin:    make(map[rune]string, len(pairs)),
		toCyrillic: make(map[string]rune, len(pairs)+len(reverse)),
	}
	for _, pair := range pairs {
		cyr := unicode.ToLower(pair.Cyrillic)
		latin := strings.ToLower(pair.Latin)
		t.toLatin[cyr] = latin
		if latin == "" {
			continue
		}
		if _, exists := t.toCyrillic[latin]; !exists {
			t.toCyrillic[latin] = cyr
		}
	}
	for latin, cyr := range reverse {
		latin = strings.ToLower(strings.TrimSpace(latin))
		if latin == "" {
			continue
		}
		t.toCyrillic[latin] = unicode.ToLower(cyr)
	}

	t.latinKeys = make([]string, 0, len(t.toCyrillic))
	for key := range t.toCyrillic {
		t.latinKeys = append(t.latinKeys, key)
	}
	sort.Slice(t.latinKeys, func(i, j int) bool {
		if len(t.latinKeys[i]) != len(t.latinKeys[j]) {
			return len(t.latinKeys[i]) > len(t.latinKeys[j])
		}
		return t.latinKeys[i] < t.latinKeys[j]
	})
	return t
}

// ToLatin replaces every mapped Cyrillic rune with its Latin spelling. An
// uppercase source letter capitalises the first rune of the replacement.
func (t *Table) ToLatin(s string) string {
	if t == nil || len(t.toLatin) == 0 || s == "" {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/2)
	for _, r := range s {
		latin, ok := t.toLatin[unicode.ToLower(r)]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) {
			latin = capitalize(latin)
		}
		b.WriteString(latin)
	}
	return b.String()
}

// ToCyrillic greedily matches the longest Latin spelling at each position and
// replaces it with the mapped Cyrillic rune.
func (t *Table) ToCyrillic(s string) string {
	if t == nil || len(t.toCyrillic) == 0 || s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if len(lower) != len(s) {
		// Case mapping changed byte widths; fall back to lowercase output.
		s = lower
	}

	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); {
		key, cyr, ok := t.matchAt(lower[i:])
		if !ok {
			r, size := utf8.DecodeRuneInString(s[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		first, _ := utf8.DecodeRuneInString(s[i:])
		if unicode.IsUpper(first) {
			cyr = unicode.ToUpper(cyr)
		}
		b.WriteRune(cyr)
		i += len(key)
	}
	return b.String()
}

func (t *Table) matchAt(s string) (string, rune, bool) {
	for _, key := range t.latinKeys {
		if strings.HasPrefix(s, key) {
			return key, t.toCyrillic[key], true
		}
	}
	return "", 0, false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
