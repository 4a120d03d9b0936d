package translit

import "testing"

func TestDefaultToLatin(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"опция", "optsiya"},
		{"Щука", "Shchuka"},
		{"объём", "obyom"},
		{"Київ", "Kiyiv"},
		{"red 42", "red 42"},
		{"", ""},
	}

	tr := Default()
	for _, tt := range tests {
		if got := tr.ToLatin(tt.in); got != tt.want {
			t.Fatalf("ToLatin(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultToCyrillic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"optsiya", "опция"},
		{"shchuka", "щука"},
		{"Zhuk", "Жук"},
		{"krasny", "красны"},
		{"42", "42"},
	}

	tr := Default()
	for _, tt := range tests {
		if got := tr.ToCyrillic(tt.in); got != tt.want {
			t.Fatalf("ToCyrillic(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNilTablePassesThrough(t *testing.T) {
	var tr *Table
	if got := tr.ToLatin("опция"); got != "опция" {
		t.Fatalf("nil table ToLatin = %q", got)
	}
	if got := tr.ToCyrillic("optsiya"); got != "optsiya" {
		t.Fatalf("nil table ToCyrillic = %q", got)
	}
}

func TestReverseOverridesWin(t *testing.T) {
	tr := NewTable([]Pair{{'й', "y"}, {'ы', "y"}}, map[string]rune{"y": 'ы'})
	if got := tr.ToCyrillic("y"); got != "ы" {
		t.Fatalf("expected override to pick ы, got %q", got)
	}
}
