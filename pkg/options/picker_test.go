package options

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/translit"
)

func fruitAlphabet() []AlphabetBucket {
	return []AlphabetBucket{
		{Letter: "A", Docs: []OptionNode{{ID: "1", Name: "Apple"}}},
		{Letter: "B", Docs: []OptionNode{{ID: "2", Name: "Banana"}}},
	}
}

func TestPicker_SearchKeepsOnlyMatchingBucket(t *testing.T) {
	p := NewPicker(Config{Alphabet: fruitAlphabet(), Transliterator: translit.Default()})
	p.Search("ban")

	want := []AlphabetBucket{
		{Letter: "B", Docs: []OptionNode{{ID: "2", Name: "Banana"}}},
	}
	if diff := cmp.Diff(want, p.Buckets()); diff != "" {
		t.Fatalf("filtered alphabet mismatch (-want +got):\n%s", diff)
	}
	if p.State() != StateReady {
		t.Fatalf("expected ready state, got %s", p.State())
	}
}

func TestPicker_DualScriptSearchMatchesSameSet(t *testing.T) {
	alphabet := BuildAlphabet([]OptionNode{
		{ID: "1", Name: "Опция первая"},
		{ID: "2", Name: "Optsiya two"},
		{ID: "3", Name: "Другое"},
	})

	cyr := NewPicker(Config{Alphabet: alphabet, Transliterator: translit.Default()})
	cyr.Search("опция")
	lat := NewPicker(Config{Alphabet: alphabet, Transliterator: translit.Default()})
	lat.Search(translit.Default().ToLatin("опция"))

	if diff := cmp.Diff(cyr.Buckets(), lat.Buckets()); diff != "" {
		t.Fatalf("scripts disagree (-cyrillic +latin):\n%s", diff)
	}
	if got := len(FlattenAlphabet(cyr.Buckets())); got != 2 {
		t.Fatalf("expected both spellings to match, got %d docs", got)
	}
}

func TestPicker_EmptyQueryReturnsRawAlphabet(t *testing.T) {
	alphabet := fruitAlphabet()
	p := NewPicker(Config{Alphabet: alphabet})
	p.Search("ban")
	p.Search("")

	if diff := cmp.Diff(alphabet, p.Buckets()); diff != "" {
		t.Fatalf("expected raw alphabet (-want +got):\n%s", diff)
	}
}

func TestPicker_SearchMatchesTermAsTyped(t *testing.T) {
	p := NewPicker(Config{Alphabet: fruitAlphabet(), Transliterator: translit.Default()})

	p.Search("ban ")
	if got := len(p.Buckets()); got != 0 {
		t.Fatalf("trailing space is part of the term, got %d buckets", got)
	}
	p.Search("   ")
	if got := len(p.Buckets()); got != 0 {
		t.Fatalf("whitespace term is not blank, got %d buckets", got)
	}
	if p.Query() != "   " {
		t.Fatalf("query should be kept as typed, got %q", p.Query())
	}
}

func TestPicker_CheckboxToggleIsSelfInverse(t *testing.T) {
	p := NewPicker(Config{
		Alphabet:          fruitAlphabet(),
		Variant:           VariantCheckbox,
		InitiallySelected: []OptionNode{{ID: "1", Name: "Apple"}},
	})
	before := p.Selected()

	if err := p.Click("2"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if err := p.Click("2"); err != nil {
		t.Fatalf("click: %v", err)
	}

	if diff := cmp.Diff(before, p.Selected()); diff != "" {
		t.Fatalf("double toggle changed selection (-want +got):\n%s", diff)
	}
}

func TestPicker_RadioExclusivity(t *testing.T) {
	var submitted [][]OptionNode
	closes := 0
	cfg := Config{
		Alphabet: fruitAlphabet(),
		Variant:  VariantRadio,
		OnSubmit: func(selected []OptionNode) { submitted = append(submitted, selected) },
		OnClose:  func() { closes++ },
	}

	p := NewPicker(cfg)
	if err := p.Click("1"); err != nil {
		t.Fatalf("click A: %v", err)
	}
	if !p.Closed() || closes != 1 {
		t.Fatalf("expected radio click to close the picker")
	}

	cfg.InitiallySelected = p.Selected()
	p = NewPicker(cfg)
	if err := p.Click("2"); err != nil {
		t.Fatalf("click B: %v", err)
	}

	want := []OptionNode{{ID: "2", Name: "Banana"}}
	if diff := cmp.Diff(want, p.Selected()); diff != "" {
		t.Fatalf("radio selection mismatch (-want +got):\n%s", diff)
	}
	if len(submitted) != 2 || len(submitted[1]) != 1 {
		t.Fatalf("expected one single-element submit per click, got %#v", submitted)
	}
}

func TestPicker_SubmitGating(t *testing.T) {
	calls := 0
	p := NewPicker(Config{
		Alphabet: fruitAlphabet(),
		Variant:  VariantCheckbox,
		OnSubmit: func(selected []OptionNode) {
			calls++
			if len(selected) == 0 {
				t.Fatalf("submit called with empty selection")
			}
		},
	})

	if p.CanSubmit() {
		t.Fatalf("submit should be unavailable with nothing selected")
	}
	if err := p.Submit(); !errors.Is(err, ErrNothingSelected) {
		t.Fatalf("expected ErrNothingSelected, got %v", err)
	}
	if err := p.Click("1"); err != nil {
		t.Fatalf("click: %v", err)
	}
	if !p.CanSubmit() {
		t.Fatalf("submit should be available after a selection")
	}
	if err := p.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one submit, got %d", calls)
	}
	if err := p.Submit(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after submit, got %v", err)
	}
}

func TestPicker_ParentAndChildSelectIndependently(t *testing.T) {
	forest := []OptionNode{{
		ID:   "p",
		Name: "Phones",
		Options: []OptionNode{
			{ID: "c1", Name: "Smartphones"},
			{ID: "c2", Name: "Feature phones"},
		},
	}}
	p := NewPicker(Config{Flat: forest, NotShowAsAlphabet: true})

	if err := p.Click("p"); err != nil {
		t.Fatalf("click parent: %v", err)
	}
	if err := p.Click("c1"); err != nil {
		t.Fatalf("click child: %v", err)
	}
	if !p.IsSelected("p") || !p.IsSelected("c1") || p.IsSelected("c2") {
		t.Fatalf("unexpected selection: %#v", p.Selected())
	}

	sections := p.Sections()
	if len(sections) != 1 || len(sections[0].Rows) != 3 {
		t.Fatalf("expected parent plus two child rows, got %#v", sections)
	}
	if sections[0].Rows[1].Depth != 1 {
		t.Fatalf("expected children indented one level, got depth %d", sections[0].Rows[1].Depth)
	}
}

func TestPicker_DisableNestedHidesChildren(t *testing.T) {
	forest := []OptionNode{{ID: "p", Name: "Phones", Options: []OptionNode{{ID: "c1", Name: "Smartphones"}}}}
	p := NewPicker(Config{Flat: forest, NotShowAsAlphabet: true, DisableNestedOptions: true})

	if rows := p.Sections()[0].Rows; len(rows) != 1 {
		t.Fatalf("expected children hidden, got %d rows", len(rows))
	}
	if err := p.Click("c1"); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected nested click to be rejected, got %v", err)
	}
}

func TestPicker_NestedSearchPrunesNonMatchingSiblings(t *testing.T) {
	forest := []OptionNode{{
		ID:   "p",
		Name: "Phones",
		Options: []OptionNode{
			{ID: "c1", Name: "Smartphones"},
			{ID: "c2", Name: "Chargers"},
		},
	}}
	p := NewPicker(Config{Flat: forest, NotShowAsAlphabet: true})
	p.Search("charg")

	want := []OptionNode{{ID: "p", Name: "Phones", Options: []OptionNode{{ID: "c2", Name: "Chargers"}}}}
	if diff := cmp.Diff(want, p.Nodes()); diff != "" {
		t.Fatalf("pruned tree mismatch (-want +got):\n%s", diff)
	}
}

func TestPicker_StatePriority(t *testing.T) {
	transport := errors.New("request failed")

	tests := []struct {
		name string
		cfg  Config
		want ViewState
	}{
		{"loading without data", Config{Loading: true, Err: transport}, StateLoading},
		{"loading with data", Config{Loading: true, Alphabet: fruitAlphabet()}, StateReady},
		{"error", Config{Err: transport, Alphabet: fruitAlphabet()}, StateError},
		{"empty", Config{}, StateEmpty},
		{"ready", Config{Alphabet: fruitAlphabet()}, StateReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewPicker(tt.cfg).State(); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPicker_SearchWithoutMatchesIsEmpty(t *testing.T) {
	p := NewPicker(Config{Alphabet: fruitAlphabet()})
	p.Search("zzz")
	if p.State() != StateEmpty {
		t.Fatalf("expected empty state, got %s", p.State())
	}
}

func TestPicker_SetResultLeavesLoading(t *testing.T) {
	p := NewPicker(Config{Loading: true})
	if p.State() != StateLoading {
		t.Fatalf("expected loading, got %s", p.State())
	}
	p.SetResult(fruitAlphabet(), nil, nil)
	if err := p.Click("2"); err != nil {
		t.Fatalf("click after load: %v", err)
	}
	if p.State() != StateReady {
		t.Fatalf("expected ready, got %s", p.State())
	}
}
