package render

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Registry stores renderers by name.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). The first renderer registered
// becomes the default.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves a renderer by name. An empty name returns the default.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.fallback
	}
	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// Render looks up name and renders view with it.
func (r *Registry) Render(ctx context.Context, name string, view View, opts RenderOptions) ([]byte, string, error) {
	renderer, err := r.Get(name)
	if err != nil {
		return nil, "", err
	}
	out, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return nil, "", fmt.Errorf("render: %s %s: %w", renderer.Name(), view.ViewName(), err)
	}
	return out, renderer.ContentType(), nil
}

// List returns the sorted renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}
