package optionsearch

import "net/http"

// Component bundles the search handler with its configuration and routing
// helpers.
type Component struct {
	opts Options
}

func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
