package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data renderers use without changing the
// view itself.
type RenderOptions struct {
	// Locale picks translated names and labels.
	Locale string
	// Translator resolves UI message keys. OnMissing decides what a missing
	// key renders as.
	Translator Translator
	OnMissing  MissingTranslationHandler
	// Errors holds inline validation messages keyed by input name.
	Errors map[string][]string
	// ShowInlineErrors turns on the per-field error line.
	ShowInlineErrors bool
	// Theme supplies tokens and CSS variables for the page chrome.
	Theme *theme.RendererConfig
	// Hidden inputs added to every form (CSRF token etc.).
	Hidden map[string]string
}

// InlineError returns the message to show under input name. Nothing is shown
// unless inline errors are enabled and the input has an error.
func (o RenderOptions) InlineError(name string) (string, bool) {
	if !o.ShowInlineErrors {
		return "", false
	}
	messages := normalizeMessages(o.Errors[name])
	if len(messages) == 0 {
		return "", false
	}
	return messages[0], true
}

// T translates key with the configured translator, falling back to fallback.
func (o RenderOptions) T(key, fallback string) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = fallbackOnMissing(fallback)
	}
	return translate(o.Locale, key, o.Translator, onMissing)
}
