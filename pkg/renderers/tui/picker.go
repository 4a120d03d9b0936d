package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/render"
)

type pickerRow struct {
	id    string
	label string
}

// RunPicker drives p until the user picks (radio), submits (checkbox) or
// gives up. Radio pickers offer a search entry above the options; checkbox
// pickers ask for a new search term when the user declines to submit.
func (r *Renderer) RunPicker(ctx context.Context, title string, p *options.Picker, opts render.RenderOptions) ([]options.OptionNode, error) {
	if p == nil {
		return nil, fmt.Errorf("tui: picker is nil")
	}
	if title == "" {
		title = opts.T("formkit.picker.title", "Choose")
	}

	for !p.Closed() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch p.State() {
		case options.StateLoading:
			_ = r.info(ctx, opts.T("formkit.picker.loading", "Loading..."))
			return nil, ErrUnavailable
		case options.StateError:
			_ = r.warn(ctx, opts.T("formkit.picker.error", "Could not load options"))
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, p.Err())
		case options.StateEmpty:
			if err := r.info(ctx, opts.T("formkit.picker.empty", "Nothing found")); err != nil {
				return nil, err
			}
			if p.Query() == "" {
				p.Close()
				return nil, options.ErrNothingSelected
			}
			if err := r.search(ctx, p, opts); err != nil {
				return nil, err
			}
			continue
		}

		rows := pickerRows(p)
		var err error
		if p.Variant() == options.VariantRadio {
			err = r.pickRadio(ctx, title, p, rows, opts)
		} else {
			err = r.pickCheckbox(ctx, title, p, rows, opts)
		}
		if err != nil {
			return nil, err
		}
	}
	return p.Selected(), nil
}

func (r *Renderer) pickRadio(ctx context.Context, title string, p *options.Picker, rows []pickerRow, opts render.RenderOptions) error {
	searchLabel := opts.T("formkit.picker.search", "Search") + "..."
	labels := make([]string, 0, len(rows)+1)
	labels = append(labels, searchLabel)
	defaultIdx := 0
	for i, row := range rows {
		labels = append(labels, row.label)
		if p.IsSelected(row.id) {
			defaultIdx = i + 1
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.prompt(title),
		Options:      labels,
		DefaultIndex: defaultIdx,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return err
	}
	if idx <= 0 || idx > len(rows) {
		return r.search(ctx, p, opts)
	}
	return p.Click(rows[idx-1].id)
}

func (r *Renderer) pickCheckbox(ctx context.Context, title string, p *options.Picker, rows []pickerRow, opts render.RenderOptions) error {
	labels := make([]string, 0, len(rows))
	var defaults []int
	for i, row := range rows {
		labels = append(labels, row.label)
		if p.IsSelected(row.id) {
			defaults = append(defaults, i)
		}
	}

	chosen, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  r.prompt(title),
		Options:  labels,
		Defaults: defaults,
		PageSize: r.pageSize,
	})
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(chosen))
	for _, idx := range chosen {
		if idx >= 0 && idx < len(rows) {
			want[rows[idx].id] = true
		}
	}
	for _, row := range rows {
		if want[row.id] != p.IsSelected(row.id) {
			if err := p.Click(row.id); err != nil {
				return err
			}
		}
	}

	if p.CanSubmit() {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.prompt(fmt.Sprintf("%s (%d)?", opts.T("formkit.picker.submit", "Select"), len(p.Selected()))),
			Default: true,
		})
		if err != nil {
			return err
		}
		if ok {
			return p.Submit()
		}
	} else if err := r.warn(ctx, opts.T("formkit.picker.nothing_selected", "Nothing selected")); err != nil {
		return err
	}
	return r.search(ctx, p, opts)
}

func (r *Renderer) search(ctx context.Context, p *options.Picker, opts render.RenderOptions) error {
	query, err := r.driver.Input(ctx, InputConfig{
		Message: r.prompt(opts.T("formkit.picker.search", "Search")),
		Default: p.Query(),
	})
	if err != nil {
		return err
	}
	p.Search(strings.TrimSpace(query))
	return nil
}

// pickerRows flattens sections into unique prompt labels. The first row of
// each alphabet section carries its letter; children are indented.
func pickerRows(p *options.Picker) []pickerRow {
	var rows []pickerRow
	seen := make(map[string]int)
	for _, section := range p.Sections() {
		for i, row := range section.Rows {
			prefix := "   "
			if section.Letter != "" && i == 0 {
				prefix = section.Letter + "  "
			} else if section.Letter == "" {
				prefix = ""
			}
			label := prefix + strings.Repeat("  ", row.Depth) + row.Node.Name
			if n := seen[label]; n > 0 {
				label = fmt.Sprintf("%s (%s)", label, row.Node.ID)
			}
			seen[label]++
			rows = append(rows, pickerRow{id: row.Node.ID, label: label})
		}
	}
	return rows
}
