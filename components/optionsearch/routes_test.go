package optionsearch

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/options/search" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin/", WithRoutePath("search")); got != "/admin/search" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/api/options/search" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestComponent_RegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()
	c := New(WithSource(fruitSource))
	pattern, err := c.RegisterRoutes(mux, "/")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, pattern+"?catalog=fruit&q=apple", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
