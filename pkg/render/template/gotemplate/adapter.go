package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formkit/pkg/render/template"
)

var ErrNoTemplates = errors.New("gotemplate: no template source configured")

// Option configures an Engine.
type Option func(*config)

type config struct {
	sources   []fs.FS
	extension string
	filters   map[string]pongo2.FilterFunction
	globals   pongo2.Context
}

// WithFS adds a template source. Sources are searched in the order they were
// added, so an override bundle goes before the default one.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.sources = append(cfg.sources, files)
		}
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		cfg.extension = "." + strings.TrimPrefix(ext, ".")
	}
}

// WithFilters registers pongo2 filters. pongo2 keeps filters in a process
// wide registry, so a name that is already registered keeps its first
// definition.
func WithFilters(filters map[string]pongo2.FilterFunction) Option {
	return func(cfg *config) {
		for name, fn := range filters {
			if name = strings.TrimSpace(name); name != "" && fn != nil {
				cfg.filters[name] = fn
			}
		}
	}
}

// WithGlobalData exposes values to every template of the engine.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// Engine is a pongo2 template set. Parsed templates are cached by path.
type Engine struct {
	set *pongo2.TemplateSet
	ext string

	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

func New(opts ...Option) (*Engine, error) {
	cfg := &config{
		extension: ".tmpl",
		filters:   make(map[string]pongo2.FilterFunction),
		globals:   make(pongo2.Context),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if len(cfg.sources) == 0 {
		return nil, ErrNoTemplates
	}

	loaders := make([]pongo2.TemplateLoader, len(cfg.sources))
	for i, src := range cfg.sources {
		loaders[i] = pongo2.NewFSLoader(src)
	}
	set := pongo2.NewSet("formkit", loaders...)
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	set.Globals.Update(cfg.globals)

	for name, fn := range cfg.filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("gotemplate: register filter %q: %w", name, err)
		}
	}

	return &Engine{
		set:   set,
		ext:   cfg.extension,
		cache: make(map[string]*pongo2.Template),
	}, nil
}

// RenderTemplate executes name, with or without the extension, against data.
func (e *Engine) RenderTemplate(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.ext) {
		path += e.ext
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(data))
	for key, value := range data {
		ctx[key] = value
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", path, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}
