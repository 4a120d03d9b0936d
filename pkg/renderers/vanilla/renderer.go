package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	gotemplate "github.com/goliatone/go-formkit/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	overrides fs.FS
}

// WithTemplatesDir loads templates from a directory on disk ahead of the
// embedded bundle. Templates missing from the directory fall back to the
// embedded ones.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.overrides = os.DirFS(path)
	}
}

// Renderer produces HTML fragments for every view type.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	engineOpts := make([]gotemplate.Option, 0, 5)
	if cfg.overrides != nil {
		engineOpts = append(engineOpts, gotemplate.WithFS(cfg.overrides))
	}
	engineOpts = append(engineOpts,
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithExtension(".tmpl"),
		gotemplate.WithGlobalData(map[string]any{"classes": chromeClasses()}),
		gotemplate.WithFilters(templateFilters()),
	)
	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws view with the template of the same name.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var data map[string]any
	switch v := view.(type) {
	case render.PickerView:
		data = pickerData(v, opts)
	case render.AttributesView:
		data = attributesData(v, opts)
	case render.FieldListView:
		data = fieldListData(v, opts)
	case render.TranslationView:
		data = translationData(v, opts)
	case render.ModalView:
		data = modalData(v, opts)
	case nil:
		return nil, fmt.Errorf("vanilla renderer: view is nil")
	default:
		return nil, fmt.Errorf("vanilla renderer: unsupported view %T", view)
	}
	data["locale"] = opts.Locale
	data["theme"] = themeData(opts.Theme)
	data["hidden"] = hiddenFields(opts)

	result, err := r.templates.RenderTemplate(view.ViewName(), data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", view.ViewName(), err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderString(ctx context.Context, view render.View, opts render.RenderOptions) (string, error) {
	out, err := r.Render(ctx, view, opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
