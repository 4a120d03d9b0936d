// Package translation holds per-locale string values and the field layout
// used to edit them.
package translation

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNoLocales = errors.New("translation: no locales configured")

// Locales is the configured locale set. Default is always part of the
// ordered list returned by Ordered.
type Locales struct {
	Default   string   `yaml:"default" json:"default"`
	Supported []string `yaml:"supported" json:"supported"`
}

// Ordered returns Default followed by the remaining supported locales,
// without duplicates or blanks.
func (l Locales) Ordered() []string {
	seen := make(map[string]struct{}, len(l.Supported)+1)
	out := make([]string, 0, len(l.Supported)+1)
	push := func(code string) {
		code = strings.TrimSpace(code)
		if code == "" {
			return
		}
		if _, dup := seen[code]; dup {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	push(l.Default)
	for _, code := range l.Supported {
		push(code)
	}
	return out
}

// Validate reports ErrNoLocales when nothing is configured.
func (l Locales) Validate() error {
	if len(l.Ordered()) == 0 {
		return ErrNoLocales
	}
	return nil
}

// Map is a locale to value mapping.
type Map map[string]string

// New returns a Map with every configured locale present. Missing locales get
// an empty string and unknown ones are dropped.
func New(locales Locales, initial map[string]string) Map {
	ordered := locales.Ordered()
	m := make(Map, len(ordered))
	for _, code := range ordered {
		m[code] = initial[code]
	}
	return m
}

// Value returns the value for locale, falling back to the default locale when
// the requested one is empty.
func (m Map) Value(locales Locales, locale string) string {
	if v := strings.TrimSpace(m[locale]); v != "" {
		return m[locale]
	}
	return m[locales.Default]
}

// Empty reports whether every locale is blank.
func (m Map) Empty() bool {
	for _, v := range m {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Clone copies the map.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Field is one editable input of a translated value.
type Field struct {
	Locale  string
	Name    string
	Value   string
	Default bool
}

// Fields lays out one input per locale for path, default locale first.
func Fields(path string, locales Locales, m Map) []Field {
	ordered := locales.Ordered()
	fields := make([]Field, 0, len(ordered))
	for _, code := range ordered {
		fields = append(fields, Field{
			Locale:  code,
			Name:    FieldName(path, code),
			Value:   m[code],
			Default: code == locales.Default,
		})
	}
	return fields
}

// FieldName joins path and locale.
func FieldName(path, locale string) string {
	return path + "." + locale
}

// FromForm reads the inputs produced by Fields back into a Map.
func FromForm(path string, locales Locales, form url.Values) Map {
	initial := make(map[string]string)
	for _, code := range locales.Ordered() {
		initial[code] = form.Get(FieldName(path, code))
	}
	return New(locales, initial)
}
