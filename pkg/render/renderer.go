package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/fieldlist"
	"github.com/goliatone/go-formkit/pkg/modal"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// Renderer turns a view into bytes (HTML, terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, opts RenderOptions) ([]byte, error)
}

// View is one of the view payloads below.
type View interface {
	ViewName() string
}

// PickerView shows an option picker.
type PickerView struct {
	Title     string
	Catalog   string
	Picker    *options.Picker
	SubmitURL string
	SearchURL string
}

// AttributesView is the attribute editor page of one product.
type AttributesView struct {
	ProductID    string
	Groups       []attributes.Group
	Locales      translation.Locales
	Links        map[string]map[string]string
	Notification *mutation.Notification
}

// FieldListView shows a repeatable field.
type FieldListView struct {
	Label string
	List  *fieldlist.List
}

// TranslationView shows one input per locale for a translated value.
type TranslationView struct {
	Label   string
	Path    string
	Locales translation.Locales
	Value   translation.Map
}

// ModalView wraps a rendered modal frame in its backdrop.
type ModalView struct {
	Frame modal.Frame
}

func (PickerView) ViewName() string      { return "picker" }
func (AttributesView) ViewName() string  { return "attributes" }
func (FieldListView) ViewName() string   { return "fieldlist" }
func (TranslationView) ViewName() string { return "translation" }
func (ModalView) ViewName() string       { return "modal" }
