package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/fieldlist"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/translation"
)

const (
	listActionDone = iota
	listActionAdd
	listActionRemove
)

// EditFieldList prompts for every slot, then offers add and remove until the
// user is done. Removal goes through a confirm prompt; the first slot is never
// offered.
func (r *Renderer) EditFieldList(ctx context.Context, label string, list *fieldlist.List, opts render.RenderOptions) error {
	if list == nil {
		return fmt.Errorf("tui: field list is nil")
	}
	if label == "" {
		label = list.Path()
	}

	for i, value := range list.Values() {
		if err := r.editSlot(ctx, label, list, i, value); err != nil {
			return err
		}
	}

	for {
		actions := []string{
			opts.T("formkit.fieldlist.done", "Done"),
			opts.T("formkit.fieldlist.add", "Add"),
		}
		if list.Len() > 1 {
			actions = append(actions, opts.T("formkit.fieldlist.remove", "Remove"))
		}
		action, err := r.driver.Select(ctx, SelectConfig{Message: r.prompt(label), Options: actions})
		if err != nil {
			return err
		}

		switch action {
		case listActionAdd:
			list.Add()
			if err := r.editSlot(ctx, label, list, list.Len()-1, ""); err != nil {
				return err
			}
		case listActionRemove:
			if err := r.removeSlot(ctx, label, list, opts); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (r *Renderer) editSlot(ctx context.Context, label string, list *fieldlist.List, i int, value string) error {
	answer, err := r.driver.Input(ctx, InputConfig{
		Message: r.prompt(fmt.Sprintf("%s #%d", label, i+1)),
		Default: value,
	})
	if err != nil {
		return err
	}
	return list.Set(i, answer)
}

func (r *Renderer) removeSlot(ctx context.Context, label string, list *fieldlist.List, opts render.RenderOptions) error {
	var (
		labels  []string
		indexes []int
	)
	for _, slot := range list.Slots() {
		if !slot.Removable {
			continue
		}
		labels = append(labels, fmt.Sprintf("#%d %s", slot.Index+1, slot.Value))
		indexes = append(indexes, slot.Index)
	}
	if len(indexes) == 0 {
		return nil
	}

	picked, err := r.driver.Select(ctx, SelectConfig{Message: r.prompt(label), Options: labels})
	if err != nil {
		return err
	}
	if picked < 0 || picked >= len(indexes) {
		return nil
	}
	if err := list.RequestRemove(indexes[picked]); err != nil {
		return err
	}

	ok, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.prompt(opts.T("formkit.fieldlist.remove_message", "Remove this value?")),
	})
	if err != nil {
		list.Decline()
		return err
	}
	if !ok {
		list.Decline()
		return nil
	}
	return list.Confirm()
}

// EditTranslation prompts once per locale, default locale first.
func (r *Renderer) EditTranslation(ctx context.Context, label, path string, locales translation.Locales, value translation.Map, opts render.RenderOptions) (translation.Map, error) {
	if err := locales.Validate(); err != nil {
		return nil, err
	}
	if label == "" {
		label = path
	}
	out := translation.New(locales, value)
	for _, field := range translation.Fields(path, locales, out) {
		message := fmt.Sprintf("%s (%s)", label, field.Locale)
		if msg, ok := opts.InlineError(field.Name); ok {
			if err := r.warn(ctx, msg); err != nil {
				return nil, err
			}
		}
		answer, err := r.driver.Input(ctx, InputConfig{Message: r.prompt(message), Default: field.Value})
		if err != nil {
			return nil, err
		}
		out[field.Locale] = answer
	}
	return out, nil
}
