// Package options implements the hierarchical option picker used by every
// "choose a brand / rubric / attribute value" dialog in the console.
//
// Option forests are read-only input. Searching produces filtered copies and
// selection lives in a side table keyed by option ID, so the same forest can
// back any number of concurrent picker sessions.
package options

import "errors"

// Variant selects single or multi choice behaviour.
type Variant string

const (
	VariantCheckbox Variant = "checkbox"
	VariantRadio    Variant = "radio"
)

// ParseVariant maps a raw string onto a Variant, defaulting to checkbox.
func ParseVariant(raw string) Variant {
	switch Variant(raw) {
	case VariantRadio:
		return VariantRadio
	default:
		return VariantCheckbox
	}
}

// OptionNode is one selectable entry. Children are rendered beneath their
// parent and are selectable on their own.
type OptionNode struct {
	ID      string       `json:"id" yaml:"id"`
	Name    string       `json:"name" yaml:"name"`
	Slug    string       `json:"slug,omitempty" yaml:"slug,omitempty"`
	Options []OptionNode `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasChildren reports whether the node carries nested options.
func (n OptionNode) HasChildren() bool {
	return len(n.Options) > 0
}

// AlphabetBucket groups options by the first letter of their name.
type AlphabetBucket struct {
	Letter string       `json:"letter"`
	Docs   []OptionNode `json:"docs"`
}

var (
	ErrNothingSelected = errors.New("options: nothing selected")
	ErrUnknownOption   = errors.New("options: unknown option")
	ErrClosed          = errors.New("options: picker closed")
	ErrRadioSubmit     = errors.New("options: radio pickers submit on click")
)
