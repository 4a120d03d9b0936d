package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures the template translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey is the map key holding the locale when templates pass a map
	// instead of a locale string.
	LocaleKey string
	// FuncName renames the translate helper.
	FuncName  string
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for template engines:
//
//	translate(localeSrc, key, ...args) string
//	current_locale(localeSrc) string
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	translateName := strings.TrimSpace(cfg.FuncName)
	if translateName == "" {
		translateName = "translate"
	}

	return map[string]any{
		translateName: func(localeSrc any, key string, params ...any) string {
			return translate(resolveLocale(localeSrc, localeKey), key, t, cfg.OnMissing, params...)
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]string:
		return data[key]
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}
