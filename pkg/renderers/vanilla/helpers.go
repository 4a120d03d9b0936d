package vanilla

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/render"
)

// controlID derives the element id of an input from its form name.
// "strings.title.ru" becomes "fk-strings-title-ru".
func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	replacer := strings.NewReplacer(".", "-", "[", "-", "]", "", " ", "-")
	return "fk-" + replacer.Replace(trimmed)
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func hiddenFields(opts render.RenderOptions) []map[string]string {
	fields := render.SortedHiddenFields(opts.Hidden)
	out := make([]map[string]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]string{"name": field.Name, "value": field.Value})
	}
	return out
}

func inlineError(opts render.RenderOptions, name string) string {
	msg, _ := opts.InlineError(name)
	return msg
}

func themeData(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"tokens":  cfg.Tokens,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
