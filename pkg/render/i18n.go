package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves UI message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MapTranslator is a static locale to key to message table.
type MapTranslator map[string]map[string]string

func (m MapTranslator) Translate(locale, key string, _ ...any) (string, error) {
	if msg, ok := m[locale][key]; ok {
		return msg, nil
	}
	return "", errors.New("render: missing translation " + locale + ":" + key)
}

// MissingTranslationHandler returns the text shown for a key that could not be
// translated.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, _ []any, _ error) string {
	return key
}

func fallbackOnMissing(fallback string) MissingTranslationHandler {
	return func(locale, key string, args []any, err error) string {
		if strings.TrimSpace(fallback) != "" {
			return fallback
		}
		return missingTranslationDefault(locale, key, args, err)
	}
}

func translate(locale, key string, t Translator, onMissing MissingTranslationHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}
