package render

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrorMapping splits error messages into per-input and form-level lists.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates message lists, trimming and de-duplicating
// while keeping order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapError turns an error into inline messages. go-errors validation entries
// whose field is one of inputs land on that input; everything else is a
// form-level message.
func MapError(err error, inputs []string) ErrorMapping {
	if err == nil {
		return ErrorMapping{}
	}
	payload := make(map[string][]string)
	if fields, ok := goerrors.GetValidationErrors(err); ok {
		for _, field := range fields {
			payload[field.Field] = append(payload[field.Field], field.Message)
		}
	} else {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			payload[""] = []string{richErr.Message}
		} else {
			payload[""] = []string{err.Error()}
		}
	}
	return MapErrorPayload(inputs, payload)
}

// MapErrorPayload maps raw error paths onto known input names. JSON pointer
// paths ("/numbers.weight") and bracketed indexes are accepted.
func MapErrorPayload(inputs []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	known := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		known[input] = struct{}{}
	}

	for raw, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		path := normalizePath(raw)
		if _, ok := known[path]; ok && !isFormLevelKey(path) {
			mapping.Fields[path] = append(mapping.Fields[path], messages...)
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizePath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "#")
	clean = strings.TrimPrefix(clean, "/")
	clean = strings.ReplaceAll(clean, "~1", "/")
	clean = strings.ReplaceAll(clean, "~0", "~")
	return clean
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
