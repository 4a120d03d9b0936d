package vanilla

import (
	"net/url"
	"sort"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/fieldlist"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/translation"
)

func pickerData(v render.PickerView, opts render.RenderOptions) map[string]any {
	data := map[string]any{
		"title":         v.Title,
		"catalog":       v.Catalog,
		"submit_url":    v.SubmitURL,
		"search_url":    v.SearchURL,
		"search_params": []map[string]string{},
		"labels": map[string]string{
			"search":  opts.T("formkit.picker.search", "Search"),
			"submit":  opts.T("formkit.picker.submit", "Select"),
			"close":   opts.T("formkit.picker.close", "Close"),
			"loading": opts.T("formkit.picker.loading", "Loading..."),
			"empty":   opts.T("formkit.picker.empty", "Nothing found"),
			"error":   opts.T("formkit.picker.error", "Could not load options"),
		},
	}
	if action, params, ok := splitSearchURL(v.SearchURL); ok {
		data["search_url"] = action
		data["search_params"] = params
	}
	p := v.Picker
	if p == nil {
		data["state"] = options.StateEmpty.String()
		return data
	}

	variant := p.Variant()
	data["variant"] = string(variant)
	data["input_type"] = string(variant)
	data["query"] = p.Query()
	data["state"] = p.State().String()
	data["show_submit"] = variant == options.VariantCheckbox
	data["can_submit"] = p.CanSubmit()
	if err := p.Err(); err != nil {
		data["error"] = err.Error()
	}

	sections := make([]map[string]any, 0)
	for _, section := range p.Sections() {
		rows := make([]map[string]any, 0, len(section.Rows))
		for _, row := range section.Rows {
			rows = append(rows, map[string]any{
				"id":           row.Node.ID,
				"name":         row.Node.Name,
				"slug":         row.Node.Slug,
				"depth":        row.Depth,
				"selected":     row.Selected,
				"has_children": row.Node.HasChildren(),
			})
		}
		sections = append(sections, map[string]any{"letter": section.Letter, "rows": rows})
	}
	data["sections"] = sections

	selected := make([]string, 0)
	for _, node := range p.Selected() {
		selected = append(selected, node.Name)
	}
	data["selected"] = selected
	return data
}

// splitSearchURL moves the query of a search URL into hidden inputs, since a
// GET form replaces the query of its action.
func splitSearchURL(raw string) (string, []map[string]string, bool) {
	if raw == "" {
		return "", nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return "", nil, false
	}
	query := u.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		if key != "q" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	params := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		for _, value := range query[key] {
			params = append(params, map[string]string{"name": key, "value": value})
		}
	}
	u.RawQuery = ""
	return u.String(), params, true
}

func attributesData(v render.AttributesView, opts render.RenderOptions) map[string]any {
	locale := opts.Locale
	if locale == "" {
		locale = v.Locales.Default
	}

	groups := make([]map[string]any, 0)
	for _, group := range attributes.VisibleGroups(v.Groups) {
		numbers := make([]map[string]any, 0, len(group.Number))
		for _, attr := range group.Number {
			input := attributes.NumberFieldName(attr.AttributeID)
			numbers = append(numbers, map[string]any{
				"id":    controlID(input),
				"input": input,
				"name":  attr.Name.Value(v.Locales, locale),
				"unit":  attr.Unit,
				"value": formatNumber(attr.Number),
				"error": inlineError(opts, input),
			})
		}

		stringsData := make([]map[string]any, 0, len(group.String))
		for _, attr := range group.String {
			path := attributes.StringFieldPath(attr.AttributeID)
			stringsData = append(stringsData, map[string]any{
				"name":   attr.Name.Value(v.Locales, locale),
				"fields": translationFields(path, v.Locales, attr.TextI18n, opts),
			})
		}

		groups = append(groups, map[string]any{
			"id":       group.ID,
			"name":     group.Name.Value(v.Locales, locale),
			"numbers":  numbers,
			"strings":  stringsData,
			"selects":  selectData(group.ID, attributes.KindSelect, group.Select, v.Locales, locale),
			"multiple": selectData(group.ID, attributes.KindMultipleSelect, group.MultipleSelect, v.Locales, locale),
		})
	}

	data := map[string]any{
		"product_id": v.ProductID,
		"groups":     groups,
		"links":      v.Links,
		"labels": map[string]string{
			"save":   opts.T("formkit.attributes.save", "Save"),
			"choose": opts.T("formkit.attributes.choose", "Choose"),
			"clear":  opts.T("formkit.attributes.clear", "Clear"),
			"none":   opts.T("formkit.attributes.none", "Not set"),
		},
	}
	if n := v.Notification; n != nil {
		data["notification"] = map[string]string{"kind": string(n.Kind), "message": n.Message}
	}
	return data
}

func selectData(groupID string, kind attributes.Kind, attrs []attributes.SelectAttribute, locales translation.Locales, locale string) []map[string]any {
	out := make([]map[string]any, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, map[string]any{
			"group_id":     groupID,
			"attribute_id": attr.AttributeID,
			"kind":         string(kind),
			"variant":      string(kind.Variant()),
			"name":         attr.Name.Value(locales, locale),
			"readable":     attr.Readable(locales, locale),
			"clearable":    attr.Clearable(locales, locale),
		})
	}
	return out
}

func translationFields(path string, locales translation.Locales, value translation.Map, opts render.RenderOptions) []map[string]any {
	fields := translation.Fields(path, locales, value)
	out := make([]map[string]any, 0, len(fields))
	for _, field := range fields {
		out = append(out, map[string]any{
			"id":      controlID(field.Name),
			"locale":  field.Locale,
			"input":   field.Name,
			"value":   field.Value,
			"default": field.Default,
			"error":   inlineError(opts, field.Name),
		})
	}
	return out
}

func translationData(v render.TranslationView, opts render.RenderOptions) map[string]any {
	return map[string]any{
		"label":  v.Label,
		"path":   v.Path,
		"fields": translationFields(v.Path, v.Locales, v.Value, opts),
	}
}

func fieldListData(v render.FieldListView, opts render.RenderOptions) map[string]any {
	list := v.List
	if list == nil {
		list = fieldlist.New("")
	}
	slots := make([]map[string]any, 0, list.Len())
	for _, slot := range list.Slots() {
		slots = append(slots, map[string]any{
			"id":        controlID(slot.Name),
			"index":     slot.Index,
			"input":     slot.Name,
			"value":     slot.Value,
			"removable": slot.Removable,
			"pending":   slot.Pending,
			"error":     inlineError(opts, slot.Name),
		})
	}
	return map[string]any{
		"label": v.Label,
		"path":  list.Path(),
		"slots": slots,
		"labels": map[string]string{
			"add":    opts.T("formkit.fieldlist.add", "Add"),
			"remove": opts.T("formkit.fieldlist.remove", "Remove"),
		},
	}
}

func modalData(v render.ModalView, opts render.RenderOptions) map[string]any {
	return map[string]any{
		"open": v.Frame.Open,
		"kind": string(v.Frame.Kind),
		"body": v.Frame.Body,
		"labels": map[string]string{
			"close": opts.T("formkit.modal.close", "Close"),
		},
	}
}
