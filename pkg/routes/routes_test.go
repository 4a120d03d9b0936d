package routes

import (
	"strings"
	"testing"
)

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New(Config{BaseURL: "https://console.example.com"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestURL_FillsParams(t *testing.T) {
	r := newTestRouter(t)
	got, err := r.URL(GroupAdmin, ProductAttributes, map[string]string{"id": "42"}, nil)
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if !strings.HasSuffix(got, "/admin/products/42/attributes") {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestURL_UnknownRoute(t *testing.T) {
	r := newTestRouter(t)
	if _, err := r.URL(GroupAdmin, "nope", nil, nil); err == nil {
		t.Fatalf("expected error for unknown route")
	}
	if _, err := r.URL("nope", Products, nil, nil); err == nil {
		t.Fatalf("expected error for unknown group")
	}
}

func TestMap_OmitsRoutesWithoutIDs(t *testing.T) {
	r := newTestRouter(t)
	links, err := r.Map(IDs{ProductID: "7"})
	if err != nil {
		t.Fatalf("Map: %v", err)
	}

	if _, ok := links["products"]["attributes"]; !ok {
		t.Fatalf("expected product attribute link, got %#v", links["products"])
	}
	if _, ok := links["shops"]["edit"]; ok {
		t.Fatalf("shop edit link should be omitted without an id")
	}
	if _, ok := links["shops"]["list"]; !ok {
		t.Fatalf("list links never need ids")
	}
	if got := links["api"]["numbers"]; !strings.HasSuffix(got, "/api/products/7/attributes/numbers") {
		t.Fatalf("unexpected api link %q", got)
	}
	if _, ok := links["pickers"]; ok {
		t.Fatalf("picker link needs a catalog")
	}
}

func TestPattern_UsesServeMuxWildcards(t *testing.T) {
	got, err := Pattern(GroupAPI, ClearAttribute)
	if err != nil {
		t.Fatalf("Pattern: %v", err)
	}
	if got != "/api/products/{id}/attributes/clear" {
		t.Fatalf("unexpected pattern %q", got)
	}
	if got, _ := Pattern(GroupAdmin, Picker); got != "/admin/pickers/{catalog}" {
		t.Fatalf("unexpected picker pattern %q", got)
	}
}
