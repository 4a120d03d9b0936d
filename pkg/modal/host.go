package modal

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrMissingLoader = errors.New("modal: views loader is required")

// Views renders each modal kind.
type Views interface {
	AttributeOptions(ctx context.Context, m AttributeOptions) (string, error)
	Options(ctx context.Context, m Options) (string, error)
	Confirm(ctx context.Context, m Confirm) (string, error)
	Translations(ctx context.Context, m Translations) (string, error)
	RemoveSlotConfirm(ctx context.Context, m RemoveSlotConfirm) (string, error)
}

// Loader builds the views on first use.
type Loader func() (Views, error)

// Dispatch renders m with the matching view. A nil modal renders nothing.
func Dispatch(ctx context.Context, views Views, m Modal) (string, error) {
	switch payload := m.(type) {
	case AttributeOptions:
		return views.AttributeOptions(ctx, payload)
	case Options:
		return views.Options(ctx, payload)
	case Confirm:
		return views.Confirm(ctx, payload)
	case Translations:
		return views.Translations(ctx, payload)
	case RemoveSlotConfirm:
		return views.RemoveSlotConfirm(ctx, payload)
	default:
		return "", nil
	}
}

// Frame is the rendered host: the active kind and its body. Open is false
// when no modal is active.
type Frame struct {
	Open bool
	Kind Kind
	Body string
}

// Host tracks the single active modal.
type Host struct {
	mu     sync.Mutex
	active Modal

	loader  Loader
	once    sync.Once
	views   Views
	loadErr error
}

func NewHost(loader Loader) (*Host, error) {
	if loader == nil {
		return nil, ErrMissingLoader
	}
	return &Host{loader: loader}, nil
}

// Open replaces the active modal.
func (h *Host) Open(m Modal) {
	h.mu.Lock()
	h.active = m
	h.mu.Unlock()
}

func (h *Host) Close() {
	h.mu.Lock()
	h.active = nil
	h.mu.Unlock()
}

func (h *Host) Active() Modal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

// OnBackdrop handles a click outside the dialog.
func (h *Host) OnBackdrop() {
	h.Close()
}

// Render draws the active modal. Views load on the first render that has
// something to show.
func (h *Host) Render(ctx context.Context) (Frame, error) {
	active := h.Active()
	if active == nil {
		return Frame{}, nil
	}

	views, err := h.load()
	if err != nil {
		return Frame{}, err
	}
	body, err := Dispatch(ctx, views, active)
	if err != nil {
		return Frame{}, fmt.Errorf("modal: render %s: %w", active.Kind(), err)
	}
	return Frame{Open: true, Kind: active.Kind(), Body: body}, nil
}

func (h *Host) load() (Views, error) {
	h.once.Do(func() {
		h.views, h.loadErr = h.loader()
		if h.loadErr == nil && h.views == nil {
			h.loadErr = errors.New("modal: loader returned no views")
		}
	})
	return h.views, h.loadErr
}
