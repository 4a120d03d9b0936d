// Package attributes models product attribute groups and the editor that
// saves them: number and string attributes are batched per group, select
// attributes are picked through an option picker and saved one at a time.
package attributes

import (
	"errors"
	"strings"

	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// Kind identifies an attribute list inside a group.
type Kind string

const (
	KindString         Kind = "string"
	KindNumber         Kind = "number"
	KindSelect         Kind = "select"
	KindMultipleSelect Kind = "multipleSelect"
)

// Variant returns the picker variant for select kinds.
func (k Kind) Variant() options.Variant {
	if k == KindSelect {
		return options.VariantRadio
	}
	return options.VariantCheckbox
}

var (
	ErrNothingToClear   = errors.New("attributes: attribute has no value to clear")
	ErrNotSelectKind    = errors.New("attributes: kind is not a select kind")
	ErrInvalidNumber    = errors.New("attributes: invalid number")
	ErrMissingSubmitter = errors.New("attributes: submitter is required")
)

// Option is one value an attribute can take, with a translated name and
// optional children.
type Option struct {
	ID      string          `json:"id" yaml:"id"`
	Name    translation.Map `json:"name" yaml:"name"`
	Slug    string          `json:"slug,omitempty" yaml:"slug,omitempty"`
	Options []Option        `json:"options,omitempty" yaml:"options,omitempty"`
}

// StringAttribute holds a translated free-text value.
type StringAttribute struct {
	AttributeID        string          `json:"attributeId"`
	ProductAttributeID string          `json:"productAttributeId,omitempty"`
	Name               translation.Map `json:"name"`
	TextI18n           translation.Map `json:"textI18n"`
}

// NumberAttribute holds an optional numeric value.
type NumberAttribute struct {
	AttributeID        string          `json:"attributeId"`
	ProductAttributeID string          `json:"productAttributeId,omitempty"`
	Name               translation.Map `json:"name"`
	Unit               string          `json:"unit,omitempty"`
	Number             *float64        `json:"number"`
}

// SelectAttribute holds the chosen option ids of a select or multi-select
// attribute together with its option forest.
type SelectAttribute struct {
	AttributeID        string          `json:"attributeId"`
	ProductAttributeID string          `json:"productAttributeId,omitempty"`
	Name               translation.Map `json:"name"`
	Options            []Option        `json:"options"`
	SelectedOptionIDs  []string        `json:"selectedOptionsIds"`
}

// Group is a named set of attributes split by kind.
type Group struct {
	ID             string            `json:"id"`
	Name           translation.Map   `json:"name"`
	String         []StringAttribute `json:"stringAttributes"`
	Number         []NumberAttribute `json:"numberAttributes"`
	Select         []SelectAttribute `json:"selectAttributes"`
	MultipleSelect []SelectAttribute `json:"multipleSelectAttributes"`
}

// Visible reports whether the group has anything to render.
func (g Group) Visible() bool {
	return len(g.String) > 0 || len(g.Number) > 0 || len(g.Select) > 0 || len(g.MultipleSelect) > 0
}

// VisibleGroups filters out empty groups.
func VisibleGroups(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if g.Visible() {
			out = append(out, g)
		}
	}
	return out
}

// FindSelect locates a select attribute of the given kind.
func (g Group) FindSelect(kind Kind, attributeID string) (SelectAttribute, bool) {
	var list []SelectAttribute
	switch kind {
	case KindSelect:
		list = g.Select
	case KindMultipleSelect:
		list = g.MultipleSelect
	default:
		return SelectAttribute{}, false
	}
	for _, attr := range list {
		if attr.AttributeID == attributeID {
			return attr, true
		}
	}
	return SelectAttribute{}, false
}

// OptionNodes re-maps attribute options into picker nodes named in locale.
func OptionNodes(opts []Option, locales translation.Locales, locale string) []options.OptionNode {
	if len(opts) == 0 {
		return nil
	}
	out := make([]options.OptionNode, len(opts))
	for i, opt := range opts {
		out[i] = options.OptionNode{
			ID:      opt.ID,
			Name:    opt.Name.Value(locales, locale),
			Slug:    opt.Slug,
			Options: OptionNodes(opt.Options, locales, locale),
		}
	}
	return out
}

// Selected returns the picker nodes for the current selection, in stored
// order. Unknown ids are skipped.
func (a SelectAttribute) Selected(locales translation.Locales, locale string) []options.OptionNode {
	tree := options.NewTree(OptionNodes(a.Options, locales, locale))
	out := make([]options.OptionNode, 0, len(a.SelectedOptionIDs))
	for _, id := range a.SelectedOptionIDs {
		if idx, ok := tree.Lookup(id); ok {
			node := tree.Node(idx)
			node.Options = nil
			out = append(out, node)
		}
	}
	return out
}

// Readable joins the names of the selected options, nested ones included.
func (a SelectAttribute) Readable(locales translation.Locales, locale string) string {
	tree := options.NewTree(OptionNodes(a.Options, locales, locale))
	return strings.Join(tree.Names(a.SelectedOptionIDs), ", ")
}

// Clearable reports whether the clear control is offered.
func (a SelectAttribute) Clearable(locales translation.Locales, locale string) bool {
	return strings.TrimSpace(a.Readable(locales, locale)) != ""
}
