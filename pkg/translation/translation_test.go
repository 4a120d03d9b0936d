package translation

import (
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testLocales = Locales{Default: "ru", Supported: []string{"uk", "ru", "en"}}

func TestNew_FillsEveryLocaleAndDropsUnknown(t *testing.T) {
	got := New(testLocales, map[string]string{"en": "Red", "de": "Rot"})
	want := Map{"ru": "", "uk": "", "en": "Red"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_DefaultFirst(t *testing.T) {
	m := New(testLocales, map[string]string{"ru": "Красный"})
	fields := Fields("name", testLocales, m)

	want := []Field{
		{Locale: "ru", Name: "name.ru", Value: "Красный", Default: true},
		{Locale: "uk", Name: "name.uk"},
		{Locale: "en", Name: "name.en"},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValue_FallsBackToDefault(t *testing.T) {
	m := New(testLocales, map[string]string{"ru": "Красный", "en": "Red"})
	if got := m.Value(testLocales, "uk"); got != "Красный" {
		t.Fatalf("expected fallback to default, got %q", got)
	}
	if got := m.Value(testLocales, "en"); got != "Red" {
		t.Fatalf("expected en value, got %q", got)
	}
}

func TestFromForm_RoundTripsFields(t *testing.T) {
	form := url.Values{"title.ru": {"Заголовок"}, "title.en": {"Title"}}
	got := FromForm("title", testLocales, form)
	want := Map{"ru": "Заголовок", "uk": "", "en": "Title"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestLocales_Validate(t *testing.T) {
	if err := (Locales{}).Validate(); !errors.Is(err, ErrNoLocales) {
		t.Fatalf("expected ErrNoLocales, got %v", err)
	}
	if err := testLocales.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
