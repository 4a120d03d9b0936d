package attributes

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/translation"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// SanitizeText strips markup from a pasted value, leaving plain text.
func SanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// SanitizeStrings returns a copy of batch with every locale value stripped of
// markup.
func SanitizeStrings(batch StringBatch) StringBatch {
	out := batch
	out.Values = make([]StringValue, len(batch.Values))
	for i, v := range batch.Values {
		cleaned := make(translation.Map, len(v.Value))
		for locale, text := range v.Value {
			cleaned[locale] = SanitizeText(text)
		}
		v.Value = cleaned
		out.Values[i] = v
	}
	return out
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
