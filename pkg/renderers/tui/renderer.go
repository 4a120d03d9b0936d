package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// Renderer implements render.Renderer for terminal sessions. Interactive
// views (picker, field list, translation) prompt for input and return what
// was collected; the attribute view prints a summary.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	pageSize     int
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		pageSize:     15,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch v := view.(type) {
	case render.PickerView:
		selected, err := r.RunPicker(ctx, v.Title, v.Picker, opts)
		if err != nil {
			return nil, err
		}
		entries := make([]entry, 0, len(selected))
		for _, node := range selected {
			entries = append(entries, entry{Key: node.ID, Value: node.Name})
		}
		return r.serialize(map[string]any{"selected": selected}, entries)

	case render.FieldListView:
		if err := r.EditFieldList(ctx, v.Label, v.List, opts); err != nil {
			return nil, err
		}
		values := v.List.Values()
		entries := make([]entry, 0, len(values))
		for i, value := range values {
			entries = append(entries, entry{Key: fmt.Sprintf("%s[%d]", v.List.Path(), i), Value: value})
		}
		return r.serialize(map[string]any{"path": v.List.Path(), "values": values}, entries)

	case render.TranslationView:
		value, err := r.EditTranslation(ctx, v.Label, v.Path, v.Locales, v.Value, opts)
		if err != nil {
			return nil, err
		}
		return r.serialize(map[string]any{"path": v.Path, "value": value}, mapEntries(v.Path, v.Locales, value))

	case render.AttributesView:
		summary := summarize(v, opts)
		entries := make([]entry, 0)
		for _, group := range summary {
			for _, attr := range group.Attributes {
				entries = append(entries, entry{Key: group.Name + " / " + attr.Name, Value: attr.Value})
			}
		}
		return r.serialize(map[string]any{"productId": v.ProductID, "groups": summary}, entries)

	case nil:
		return nil, errors.New("tui: view is nil")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedView, view.ViewName())
	}
}

type entry struct {
	Key   string
	Value string
}

func (r *Renderer) serialize(payload map[string]any, entries []entry) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		var b strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&b, "%s=%s\n", e.Key, e.Value)
		}
		return []byte(b.String()), nil
	}
	return json.Marshal(payload)
}

func mapEntries(path string, locales translation.Locales, value translation.Map) []entry {
	out := make([]entry, 0, len(value))
	for _, locale := range locales.Ordered() {
		out = append(out, entry{Key: translation.FieldName(path, locale), Value: value[locale]})
	}
	return out
}

type groupSummary struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Attributes []attributeSummary `json:"attributes"`
}

type attributeSummary struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

func summarize(v render.AttributesView, opts render.RenderOptions) []groupSummary {
	locale := opts.Locale
	if locale == "" {
		locale = v.Locales.Default
	}
	var out []groupSummary
	for _, group := range attributes.VisibleGroups(v.Groups) {
		summary := groupSummary{ID: group.ID, Name: group.Name.Value(v.Locales, locale)}
		for _, attr := range group.Number {
			value := ""
			if attr.Number != nil {
				value = strings.TrimSpace(fmt.Sprintf("%g %s", *attr.Number, attr.Unit))
			}
			summary.Attributes = append(summary.Attributes, attributeSummary{
				ID: attr.AttributeID, Kind: string(attributes.KindNumber),
				Name: attr.Name.Value(v.Locales, locale), Value: value,
			})
		}
		for _, attr := range group.String {
			summary.Attributes = append(summary.Attributes, attributeSummary{
				ID: attr.AttributeID, Kind: string(attributes.KindString),
				Name: attr.Name.Value(v.Locales, locale), Value: attr.TextI18n.Value(v.Locales, locale),
			})
		}
		for _, attr := range group.Select {
			summary.Attributes = append(summary.Attributes, selectSummary(attributes.KindSelect, attr, v.Locales, locale))
		}
		for _, attr := range group.MultipleSelect {
			summary.Attributes = append(summary.Attributes, selectSummary(attributes.KindMultipleSelect, attr, v.Locales, locale))
		}
		sort.SliceStable(summary.Attributes, func(i, j int) bool {
			return summary.Attributes[i].Name < summary.Attributes[j].Name
		})
		out = append(out, summary)
	}
	return out
}

func selectSummary(kind attributes.Kind, attr attributes.SelectAttribute, locales translation.Locales, locale string) attributeSummary {
	return attributeSummary{
		ID:    attr.AttributeID,
		Kind:  string(kind),
		Name:  attr.Name.Value(locales, locale),
		Value: attr.Readable(locales, locale),
	}
}

func (r *Renderer) prompt(message string) string {
	return r.theme.PromptPrefix + message
}

func (r *Renderer) info(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+message)
}

func (r *Renderer) warn(ctx context.Context, message string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+message)
}
