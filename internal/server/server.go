// Package server exposes the attribute editor pages, the picker fragments and
// the attribute mutation API over net/http.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/components/optionsearch"
	"github.com/goliatone/go-formkit/internal/apispec"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/routes"
	"github.com/goliatone/go-formkit/pkg/translation"
	"github.com/goliatone/go-formkit/pkg/translit"
)

// Store is what the server reads and writes attribute data through.
type Store interface {
	attributes.Submitter
	Alphabet(ctx context.Context, catalog string) ([]options.AlphabetBucket, error)
	Groups(ctx context.Context, productID string) ([]attributes.Group, error)
	Group(ctx context.Context, productID, groupID string) (attributes.Group, error)
}

// Server wires the store, the attribute editor and the renderers to HTTP
// routes.
type Server struct {
	store    Store
	editor   *attributes.Editor
	runner   *mutation.Runner
	registry *render.Registry
	pages    *vanilla.Renderer
	renderer string
	router   *routes.Router
	spec     *apispec.Spec
	search   optionsearch.Options
	locales  translation.Locales
	translit *translit.Table
	theme    *theme.RendererConfig
	inline   bool
	baseURL  string
	tmplDir  string
	logger   interfaces.Logger
}

type Option func(*Server)

func WithLocales(locales translation.Locales) Option {
	return func(s *Server) {
		if locales.Validate() == nil {
			s.locales = locales
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRunner sets the mutation runner whose policies decide which failures
// notify the user.
func WithRunner(runner *mutation.Runner) Option {
	return func(s *Server) {
		if runner != nil {
			s.runner = runner
		}
	}
}

func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

func WithInlineErrors(enabled bool) Option {
	return func(s *Server) {
		s.inline = enabled
	}
}

// WithRequestValidation validates API requests against spec.
func WithRequestValidation(spec *apispec.Spec) Option {
	return func(s *Server) {
		s.spec = spec
	}
}

// WithSearchLimits bounds the option search page size.
func WithSearchLimits(defaultLimit, maxLimit int) Option {
	return func(s *Server) {
		if defaultLimit > 0 {
			s.search.DefaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.search.MaxLimit = maxLimit
		}
	}
}

// WithBaseURL makes generated links absolute.
func WithBaseURL(baseURL string) Option {
	return func(s *Server) {
		s.baseURL = baseURL
	}
}

// WithTemplatesDir overrides page templates with files from dir.
func WithTemplatesDir(dir string) Option {
	return func(s *Server) {
		s.tmplDir = dir
	}
}

// WithRenderer registers an extra page renderer and makes it the default
// for pages.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer == nil {
			return
		}
		if s.registry == nil {
			s.registry = render.NewRegistry()
		}
		if !s.registry.Has(renderer.Name()) {
			_ = s.registry.Register(renderer)
		}
		s.renderer = renderer.Name()
	}
}

func New(st Store, opts ...Option) (*Server, error) {
	if st == nil {
		return nil, errors.New("server: store is required")
	}
	s := &Server{
		store:    st,
		runner:   mutation.NewRunner(),
		locales:  translation.Locales{Default: "en", Supported: []string{"en"}},
		translit: translit.Default(),
		search:   optionsearch.DefaultOptions(),
		inline:   true,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	pages, err := vanilla.New(vanilla.WithTemplatesDir(s.tmplDir))
	if err != nil {
		return nil, fmt.Errorf("server: vanilla renderer: %w", err)
	}
	s.pages = pages
	if s.registry == nil {
		s.registry = render.NewRegistry()
	}
	if !s.registry.Has(pages.Name()) {
		if err := s.registry.Register(pages); err != nil {
			return nil, fmt.Errorf("server: register renderer: %w", err)
		}
	}
	if s.renderer == "" {
		s.renderer = pages.Name()
	}

	router, err := routes.New(routes.Config{BaseURL: s.baseURL})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.router = router

	editor, err := attributes.NewEditor(st,
		attributes.WithRunner(s.runner),
		attributes.WithLocales(s.locales),
		attributes.WithTransliterator(s.translit),
		attributes.WithLogger(s.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.editor = editor

	s.search.Source = st
	s.search.Transliterator = s.translit
	s.search.Logger = s.logger
	return s, nil
}

// Handler returns the routed handler. API requests are validated first when
// a spec is configured.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	type route struct {
		method  string
		group   string
		name    string
		handler http.HandlerFunc
	}
	table := []route{
		{http.MethodGet, routes.GroupAdmin, routes.ProductAttributes, s.attributesPage},
		{http.MethodGet, routes.GroupAdmin, routes.Picker, s.pickerPage},
		{http.MethodPost, routes.GroupAPI, routes.SelectAttribute, s.submitSelect},
		{http.MethodPost, routes.GroupAPI, routes.ClearAttribute, s.clearSelect},
		{http.MethodPost, routes.GroupAPI, routes.NumberBatch, s.submitNumbers},
		{http.MethodPost, routes.GroupAPI, routes.StringBatch, s.submitStrings},
	}
	for _, rt := range table {
		pattern, err := routes.Pattern(rt.group, rt.name)
		if err != nil {
			return nil, err
		}
		mux.HandleFunc(rt.method+" "+pattern, rt.handler)
	}

	searchPath, err := routes.Pattern(routes.GroupAPI, routes.OptionSearch)
	if err != nil {
		return nil, err
	}
	mux.Handle(searchPath, optionsearch.HandlerWithOptions(s.search))

	mux.Handle("GET /assets/formkit/", http.StripPrefix("/assets/formkit/", http.FileServerFS(vanilla.AssetsFS())))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if s.spec != nil {
		handler = s.spec.Middleware(s.rejectInvalid)(handler)
	}
	return handler, nil
}

func (s *Server) rejectInvalid(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Debug("request rejected by api spec", "path", r.URL.Path, "error", err)
	writeError(w, invalidRequest(err))
}
