package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/render"
)

func TestMapErrorPayload_KnownInputsAndFormLevel(t *testing.T) {
	inputs := []string{"numbers.weight", "strings.notes.ru"}
	payload := map[string][]string{
		"numbers.weight":    {"must be a number", " must be a number "},
		"/strings.notes.ru": {"too long"},
		"productId":         {"cannot be blank"},
		"":                  {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(inputs, payload)

	wantFields := map[string][]string{
		"numbers.weight":   {"must be a number"},
		"strings.notes.ru": {"too long"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Unscoped form error", "cannot be blank"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapError_GoErrorsValidation(t *testing.T) {
	err := goerrors.NewValidation("invalid",
		goerrors.FieldError{Field: "numbers.weight", Message: "must be a number"},
	)
	mapped := render.MapError(err, []string{"numbers.weight"})
	if got := mapped.Fields["numbers.weight"]; len(got) != 1 || got[0] != "must be a number" {
		t.Fatalf("unexpected mapping: %#v", mapped)
	}

	plain := render.MapError(errors.New("offline"), nil)
	if len(plain.Form) != 1 || plain.Form[0] != "offline" {
		t.Fatalf("expected form-level message, got %#v", plain)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}
	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestInlineError_RequiresFlagAndError(t *testing.T) {
	opts := render.RenderOptions{Errors: map[string][]string{"numbers.weight": {"must be a number"}}}

	if _, ok := opts.InlineError("numbers.weight"); ok {
		t.Fatalf("inline errors disabled should hide messages")
	}
	opts.ShowInlineErrors = true
	if msg, ok := opts.InlineError("numbers.weight"); !ok || msg != "must be a number" {
		t.Fatalf("expected inline error, got %q %v", msg, ok)
	}
	if _, ok := opts.InlineError("numbers.height"); ok {
		t.Fatalf("inputs without errors show nothing")
	}
}
