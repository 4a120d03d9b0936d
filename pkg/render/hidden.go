package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden form input rendered alongside the visible ones.
type HiddenField struct {
	Name  string
	Value string
}

func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds the hidden CSRF input. name matches whatever the backend
// expects ("_csrf", "csrf_token", ...).
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Blank names
// are dropped and later fields win.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders hidden inputs by name for stable output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	merged := MergeHiddenFields(fields)
	if len(merged) == 0 {
		return nil
	}
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: name, Value: merged[name]})
	}
	return out
}
