package optionsearch

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/options"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type searchResponse struct {
	Data []options.AlphabetBucket `json:"data"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-built Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if opts.Source == nil {
			opts.Logger.Error("option search has no source configured")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		query := r.URL.Query()
		catalog := strings.TrimSpace(query.Get(opts.CatalogParam))
		if catalog == "" {
			catalog = opts.DefaultCatalog
		}
		if catalog == "" {
			http.Error(w, "missing "+opts.CatalogParam, http.StatusBadRequest)
			return
		}

		buckets, err := opts.Source.Alphabet(r.Context(), catalog)
		if err != nil {
			if goerrors.IsNotFound(err) {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			opts.Logger.WithContext(r.Context()).Error("option search source failed", "catalog", catalog, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		results := Search(buckets, query.Get(opts.SearchParam), parseInt(query.Get(opts.LimitParam)), opts)
		if results == nil {
			results = []options.AlphabetBucket{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(searchResponse{Data: results})
	})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
