package vanilla

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-formkit/pkg/modal"
	"github.com/goliatone/go-formkit/pkg/render"
)

// ModalViews renders modal bodies with this renderer. opts apply to every
// body.
func (r *Renderer) ModalViews(opts render.RenderOptions) modal.Views {
	return modalViews{renderer: r, opts: opts}
}

// ModalLoader adapts ModalViews to a modal.Host loader.
func (r *Renderer) ModalLoader(opts render.RenderOptions) modal.Loader {
	return func() (modal.Views, error) {
		if r == nil {
			return nil, fmt.Errorf("vanilla renderer: nil renderer")
		}
		return r.ModalViews(opts), nil
	}
}

type modalViews struct {
	renderer *Renderer
	opts     render.RenderOptions
}

func (v modalViews) AttributeOptions(ctx context.Context, m modal.AttributeOptions) (string, error) {
	if m.Session == nil {
		return "", fmt.Errorf("vanilla renderer: attribute options without session")
	}
	return v.renderer.renderString(ctx, render.PickerView{
		Title:     m.Title,
		Picker:    m.Session.Picker,
		SubmitURL: m.SubmitURL,
		SearchURL: m.SearchURL,
	}, v.opts)
}

func (v modalViews) Options(ctx context.Context, m modal.Options) (string, error) {
	return v.renderer.renderString(ctx, render.PickerView{
		Title:     m.Title,
		Catalog:   m.Catalog,
		Picker:    m.Picker,
		SubmitURL: m.SubmitURL,
		SearchURL: m.SearchURL,
	}, v.opts)
}

func (v modalViews) Confirm(_ context.Context, m modal.Confirm) (string, error) {
	return v.confirm(m.Title, m.Message, m.ConfirmLabel, m.CancelLabel, map[string]string{})
}

func (v modalViews) Translations(_ context.Context, m modal.Translations) (string, error) {
	fields := make([]map[string]any, 0, len(m.Fields))
	for _, field := range m.Fields {
		fields = append(fields, map[string]any{
			"id":      controlID(field.Name),
			"locale":  field.Locale,
			"input":   field.Name,
			"value":   field.Value,
			"default": field.Default,
			"error":   inlineError(v.opts, field.Name),
		})
	}
	return v.renderer.templates.RenderTemplate("translation", map[string]any{
		"label":  m.Title,
		"path":   m.Path,
		"fields": fields,
	})
}

func (v modalViews) RemoveSlotConfirm(_ context.Context, m modal.RemoveSlotConfirm) (string, error) {
	idx := m.Index()
	return v.confirm(
		v.opts.T("formkit.fieldlist.remove_title", "Remove value"),
		v.opts.T("formkit.fieldlist.remove_message", "Remove this value?"),
		"", "",
		map[string]string{"slot": strconv.Itoa(idx)},
	)
}

func (v modalViews) confirm(title, message, confirmLabel, cancelLabel string, extra map[string]string) (string, error) {
	if confirmLabel == "" {
		confirmLabel = v.opts.T("formkit.confirm.yes", "Yes")
	}
	if cancelLabel == "" {
		cancelLabel = v.opts.T("formkit.confirm.no", "No")
	}
	return v.renderer.templates.RenderTemplate("confirm", map[string]any{
		"title":   title,
		"message": message,
		"confirm": confirmLabel,
		"cancel":  cancelLabel,
		"extra":   extra,
	})
}
