package render_test

import (
	"testing"

	"github.com/goliatone/go-formkit/pkg/render"
)

func TestRenderOptionsT_FallsBack(t *testing.T) {
	opts := render.RenderOptions{
		Locale:     "ru",
		Translator: render.MapTranslator{"ru": {"picker.submit": "Выбрать"}},
	}
	if got := opts.T("picker.submit", "Select"); got != "Выбрать" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := opts.T("picker.empty", "Nothing here"); got != "Nothing here" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := (render.RenderOptions{}).T("picker.error", ""); got != "picker.error" {
		t.Fatalf("expected key when nothing else is available, got %q", got)
	}
}

func TestTemplateI18nFuncs(t *testing.T) {
	funcs := render.TemplateI18nFuncs(render.MapTranslator{"en": {"hello": "Hello"}}, render.TemplateI18nConfig{})

	translate := funcs["translate"].(func(any, string, ...any) string)
	if got := translate(map[string]any{"locale": "en"}, "hello"); got != "Hello" {
		t.Fatalf("unexpected translation %q", got)
	}
	if got := translate("de", "hello"); got != "hello" {
		t.Fatalf("expected key for missing translation, got %q", got)
	}

	current := funcs["current_locale"].(func(any) string)
	if got := current(map[string]string{"locale": "uk"}); got != "uk" {
		t.Fatalf("unexpected locale %q", got)
	}
}
