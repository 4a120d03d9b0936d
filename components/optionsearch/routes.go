package optionsearch

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the search handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers a handler under basePath using a
// pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("optionsearch: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
