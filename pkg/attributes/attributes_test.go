package attributes

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
)

var testLocales = translation.Locales{Default: "ru", Supported: []string{"en"}}

type recordingSubmitter struct {
	selects []SelectSubmission
	numbers []NumberBatch
	strings []StringBatch
	err     error
}

func (r *recordingSubmitter) SubmitSelect(_ context.Context, s SelectSubmission) error {
	r.selects = append(r.selects, s)
	return r.err
}

func (r *recordingSubmitter) SubmitNumbers(_ context.Context, b NumberBatch) error {
	r.numbers = append(r.numbers, b)
	return r.err
}

func (r *recordingSubmitter) SubmitStrings(_ context.Context, b StringBatch) error {
	r.strings = append(r.strings, b)
	return r.err
}

func colorGroup() Group {
	return Group{
		ID:   "g1",
		Name: translation.Map{"ru": "Внешний вид", "en": "Look"},
		Select: []SelectAttribute{{
			AttributeID:        "color",
			ProductAttributeID: "pa-color",
			Name:               translation.Map{"ru": "Цвет", "en": "Color"},
			Options: []Option{
				{ID: "red", Name: translation.Map{"ru": "Красный", "en": "Red"}},
				{ID: "blue", Name: translation.Map{"ru": "Синий", "en": "Blue"}, Options: []Option{
					{ID: "navy", Name: translation.Map{"ru": "Тёмно-синий", "en": "Navy"}},
				}},
			},
			SelectedOptionIDs: []string{"red"},
		}},
		MultipleSelect: []SelectAttribute{{
			AttributeID: "materials",
			Options: []Option{
				{ID: "cotton", Name: translation.Map{"ru": "Хлопок", "en": "Cotton"}},
				{ID: "wool", Name: translation.Map{"ru": "Шерсть", "en": "Wool"}},
			},
		}},
		Number: []NumberAttribute{
			{AttributeID: "weight", ProductAttributeID: "pa-weight"},
			{AttributeID: "height"},
		},
		String: []StringAttribute{{AttributeID: "notes"}},
	}
}

func newTestEditor(t *testing.T, sub *recordingSubmitter) *Editor {
	t.Helper()
	editor, err := NewEditor(sub, WithLocales(testLocales))
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	return editor
}

func TestGroupVisibility(t *testing.T) {
	empty := Group{ID: "empty", Name: translation.Map{"ru": "Пусто"}}
	if empty.Visible() {
		t.Fatalf("group without attributes must not be visible")
	}
	visible := VisibleGroups([]Group{empty, colorGroup()})
	if len(visible) != 1 || visible[0].ID != "g1" {
		t.Fatalf("unexpected visible groups: %#v", visible)
	}
}

func TestSelectAttribute_ReadableIncludesNested(t *testing.T) {
	attr := colorGroup().Select[0]
	attr.SelectedOptionIDs = []string{"red", "navy"}

	if got := attr.Readable(testLocales, "en"); got != "Red, Navy" {
		t.Fatalf("unexpected readable value %q", got)
	}
	if got := attr.Readable(testLocales, "uk"); got != "Красный, Тёмно-синий" {
		t.Fatalf("expected default locale fallback, got %q", got)
	}
}

func TestEditor_OpenSelectSubmitsRadioImmediately(t *testing.T) {
	sub := &recordingSubmitter{}
	editor := newTestEditor(t, sub)

	session, err := editor.OpenSelect(context.Background(), "p1", colorGroup(), KindSelect, "color", "en")
	if err != nil {
		t.Fatalf("OpenSelect: %v", err)
	}
	if !session.Picker.IsSelected("red") {
		t.Fatalf("expected picker seeded with current selection")
	}
	if err := session.Picker.Click("navy"); err != nil {
		t.Fatalf("click: %v", err)
	}

	want := []SelectSubmission{{
		ProductID:          "p1",
		GroupID:            "g1",
		Kind:               KindSelect,
		AttributeID:        "color",
		ProductAttributeID: "pa-color",
		SelectedOptionIDs:  []string{"navy"},
	}}
	if diff := cmp.Diff(want, sub.selects); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
	outcome, ok := session.Outcome()
	if !ok || outcome.Failed() {
		t.Fatalf("expected successful outcome, got %#v (ok=%v)", outcome, ok)
	}
}

func TestEditor_MultiSelectWaitsForSubmit(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("offline")}
	editor := newTestEditor(t, sub)

	session, err := editor.OpenSelect(context.Background(), "p1", colorGroup(), KindMultipleSelect, "materials", "ru")
	if err != nil {
		t.Fatalf("OpenSelect: %v", err)
	}
	_ = session.Picker.Click("cotton")
	_ = session.Picker.Click("wool")
	if len(sub.selects) != 0 {
		t.Fatalf("checkbox clicks must not submit")
	}
	if err := session.Picker.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if diff := cmp.Diff([]string{"cotton", "wool"}, sub.selects[0].SelectedOptionIDs); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	outcome, _ := session.Outcome()
	if outcome.Notification == nil {
		t.Fatalf("select failures are surfaced, got %#v", outcome)
	}
}

func TestEditor_ClearRequiresReadableValue(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("offline")}
	editor := newTestEditor(t, sub)
	group := colorGroup()

	if _, err := editor.Clear(context.Background(), "p1", group, KindMultipleSelect, "materials", "ru"); !errors.Is(err, ErrNothingToClear) {
		t.Fatalf("expected ErrNothingToClear, got %v", err)
	}

	outcome, err := editor.Clear(context.Background(), "p1", group, KindSelect, "color", "ru")
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if len(sub.selects) != 1 || len(sub.selects[0].SelectedOptionIDs) != 0 {
		t.Fatalf("expected one empty submission, got %#v", sub.selects)
	}
	if outcome.Policy != mutation.PolicySilent || outcome.Notification != nil {
		t.Fatalf("clears are silent by default, got %#v", outcome)
	}
}

func TestEditor_SubmitSelectionRefusesEmpty(t *testing.T) {
	sub := &recordingSubmitter{}
	editor := newTestEditor(t, sub)

	for _, ids := range [][]string{nil, {}, {" "}} {
		_, err := editor.SubmitSelection(context.Background(), SelectSubmission{
			ProductID:         "p1",
			GroupID:           "g1",
			Kind:              KindMultipleSelect,
			AttributeID:       "materials",
			SelectedOptionIDs: ids,
		})
		if !errors.Is(err, options.ErrNothingSelected) {
			t.Fatalf("ids %q: expected ErrNothingSelected, got %v", ids, err)
		}
	}
	if len(sub.selects) != 0 {
		t.Fatalf("empty selections must not reach the submitter: %#v", sub.selects)
	}
}

func TestNumberBatchFromForm_EmptyIsNil(t *testing.T) {
	form := url.Values{
		NumberFieldName("weight"): {"1,5"},
		NumberFieldName("height"): {"  "},
	}
	batch, err := NumberBatchFromForm("p1", colorGroup(), form)
	if err != nil {
		t.Fatalf("NumberBatchFromForm: %v", err)
	}

	if len(batch.Values) != 2 {
		t.Fatalf("expected one entry per number attribute, got %#v", batch.Values)
	}
	if batch.Values[0].Value == nil || *batch.Values[0].Value != 1.5 {
		t.Fatalf("expected weight 1.5, got %#v", batch.Values[0].Value)
	}
	if batch.Values[1].Value != nil {
		t.Fatalf("expected empty input to be nil, got %v", *batch.Values[1].Value)
	}
	if batch.Values[0].ProductAttributeID != "pa-weight" {
		t.Fatalf("expected product attribute id carried over")
	}
}

func TestNumberBatchFromForm_RejectsGarbage(t *testing.T) {
	form := url.Values{NumberFieldName("weight"): {"NaN"}, NumberFieldName("height"): {"abc"}}
	_, err := NumberBatchFromForm("p1", colorGroup(), form)
	fields := FieldErrors(err)
	if len(fields) != 2 {
		t.Fatalf("expected two field errors, got %#v (%v)", fields, err)
	}
	if _, ok := fields[NumberFieldName("height")]; !ok {
		t.Fatalf("expected error keyed by input name, got %#v", fields)
	}
}

func TestEditor_SaveNumbersValidatesBeforeSubmitting(t *testing.T) {
	sub := &recordingSubmitter{}
	editor := newTestEditor(t, sub)

	_, err := editor.SaveNumbers(context.Background(), NumberBatch{Values: []NumberValue{{AttributeID: "weight"}}})
	if err == nil {
		t.Fatalf("expected validation error for missing product id")
	}
	if len(sub.numbers) != 0 {
		t.Fatalf("invalid batch must not be submitted")
	}

	outcome, err := editor.SaveNumbers(context.Background(), NumberBatch{ProductID: "p1", Values: []NumberValue{{AttributeID: "weight"}}})
	if err != nil || outcome.Failed() {
		t.Fatalf("unexpected failure: %v %#v", err, outcome)
	}
	if len(sub.numbers) != 1 {
		t.Fatalf("expected one batch submitted")
	}
}

func TestEditor_SaveStringsSanitizes(t *testing.T) {
	sub := &recordingSubmitter{}
	editor := newTestEditor(t, sub)

	form := url.Values{
		"strings.notes.ru": {"<b>Хлопок</b> &amp; лён<script>alert(1)</script>"},
		"strings.notes.en": {"plain"},
	}
	batch := StringBatchFromForm("p1", colorGroup(), testLocales, form)
	if _, err := editor.SaveStrings(context.Background(), batch); err != nil {
		t.Fatalf("SaveStrings: %v", err)
	}

	want := translation.Map{"ru": "Хлопок & лён", "en": "plain"}
	if diff := cmp.Diff(want, sub.strings[0].Values[0].Value); diff != "" {
		t.Fatalf("sanitized value mismatch (-want +got):\n%s", diff)
	}
}

func TestParseNumber(t *testing.T) {
	if v, err := ParseNumber(""); v != nil || err != nil {
		t.Fatalf("blank should be nil, got %v %v", v, err)
	}
	if _, err := ParseNumber("Inf"); !errors.Is(err, ErrInvalidNumber) {
		t.Fatalf("expected ErrInvalidNumber for Inf, got %v", err)
	}
	if v, err := ParseNumber("-3.25"); err != nil || *v != -3.25 {
		t.Fatalf("unexpected parse: %v %v", v, err)
	}
}
