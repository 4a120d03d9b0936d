package optionsearch

import (
	"net/http"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/translit"
)

type EmptySearchMode string

const (
	// EmptySearchNone returns no buckets for a blank query.
	EmptySearchNone EmptySearchMode = "none"
	// EmptySearchTop returns the catalog from the top, bounded by limit.
	EmptySearchTop EmptySearchMode = "top"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath       string
	SearchParam     string
	LimitParam      string
	CatalogParam    string
	DefaultCatalog  string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	// Nested keeps child options in results.
	Nested         bool
	Guard          GuardFunc
	Source         Source
	Transliterator translit.Transliterator
	Logger         interfaces.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/options/search",
		SearchParam:     "q",
		LimitParam:      "limit",
		CatalogParam:    "catalog",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchTop,
		Nested:          true,
		Transliterator:  translit.Default(),
		Logger:          logging.NoOp(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}

	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchTop
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/options/search"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	if opts.CatalogParam == "" {
		opts.CatalogParam = "catalog"
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOp()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithCatalogParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CatalogParam = name
	}
}

// WithDefaultCatalog is used when a request names no catalog.
func WithDefaultCatalog(catalog string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultCatalog = catalog
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithNested(nested bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Nested = nested
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSource(source Source) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = source
	}
}

// WithTransliterator replaces the default Russian table. nil disables
// cross-script matching.
func WithTransliterator(tr translit.Transliterator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Transliterator = tr
	}
}

func WithLogger(logger interfaces.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
