package optionsearch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/options"
)

type handlerResponse struct {
	Data []options.AlphabetBucket `json:"data"`
}

var fruitSource = StaticSource{
	"fruit": {
		{ID: "apple", Name: "Apple"},
		{ID: "avocado", Name: "Avocado"},
		{ID: "banana", Name: "Banana"},
		{ID: "opt", Name: "Опция"},
	},
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) handlerResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload
}

func TestHandler_SearchReturnsOnlyMatchingBucket(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit&q=ban"))

	if len(payload.Data) != 1 || payload.Data[0].Letter != "B" {
		t.Fatalf("expected only bucket B, got %#v", payload.Data)
	}
	if docs := payload.Data[0].Docs; len(docs) != 1 || docs[0].ID != "banana" {
		t.Fatalf("unexpected docs %#v", docs)
	}
}

func TestHandler_DualScriptQueriesMatchSameSet(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	cyr := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit&q=%D0%BE%D0%BF%D1%86%D0%B8%D1%8F"))
	lat := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit&q=optsiya"))

	if len(cyr.Data) != 1 || len(lat.Data) != 1 || cyr.Data[0].Docs[0].ID != lat.Data[0].Docs[0].ID {
		t.Fatalf("expected same result for both scripts, got %#v and %#v", cyr.Data, lat.Data)
	}
}

func TestHandler_EmptyQueryReturnsAlphabetBoundedByLimit(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit&limit=3"))

	total := 0
	for _, bucket := range payload.Data {
		total += len(bucket.Docs)
	}
	if total != 3 || payload.Data[0].Letter != "A" {
		t.Fatalf("expected first three options, got %#v", payload.Data)
	}
}

func TestHandler_EmptySearchNone(t *testing.T) {
	h := Handler(WithSource(fruitSource), WithEmptySearchMode(EmptySearchNone))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit"))
	if payload.Data == nil || len(payload.Data) != 0 {
		t.Fatalf("expected empty data array, got %#v", payload.Data)
	}
}

func TestHandler_MaxLimitClamps(t *testing.T) {
	h := Handler(WithSource(fruitSource), WithMaxLimit(1))
	payload := decode(t, serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit&q=a&limit=10"))
	if len(payload.Data) != 1 || len(payload.Data[0].Docs) != 1 {
		t.Fatalf("expected a single option, got %#v", payload.Data)
	}
}

func TestHandler_UnknownCatalogIsNotFound(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	rec := serve(t, h, http.MethodGet, "/api/options/search?catalog=cars")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_MissingCatalog(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	if rec := serve(t, h, http.MethodGet, "/api/options/search?q=a"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	h = Handler(WithSource(fruitSource), WithDefaultCatalog("fruit"))
	decode(t, serve(t, h, http.MethodGet, "/api/options/search?q=a"))
}

func TestHandler_SourceFailureIs500(t *testing.T) {
	h := Handler(WithSource(SourceFunc(func(context.Context, string) ([]options.AlphabetBucket, error) {
		return nil, errors.New("db down")
	})))
	if rec := serve(t, h, http.MethodGet, "/api/options/search?catalog=x"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := Handler(
		WithSource(fruitSource),
		WithGuard(func(r *http.Request) error {
			return StatusError{Code: http.StatusUnauthorized}
		}),
	)
	if rec := serve(t, h, http.MethodGet, "/api/options/search?catalog=fruit"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h := Handler(WithSource(fruitSource))
	rec := serve(t, h, http.MethodPost, "/api/options/search?catalog=fruit")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}
