// Package modal describes the console's dialogs as a closed set of payload
// types and renders whichever one is active.
package modal

import (
	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/fieldlist"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// Kind is the wire identifier of a modal.
type Kind string

const (
	KindAttributeOptions  Kind = "ATTRIBUTE_OPTIONS_MODAL"
	KindOptions           Kind = "OPTIONS_MODAL"
	KindConfirm           Kind = "CONFIRM_MODAL"
	KindTranslations      Kind = "TRANSLATIONS_MODAL"
	KindRemoveSlotConfirm Kind = "REMOVE_SLOT_CONFIRM_MODAL"
)

// Kinds lists every modal kind.
func Kinds() []Kind {
	return []Kind{
		KindAttributeOptions,
		KindOptions,
		KindConfirm,
		KindTranslations,
		KindRemoveSlotConfirm,
	}
}

// Modal is implemented only by the payload types of this package.
type Modal interface {
	Kind() Kind
	isModal()
}

// AttributeOptions picks values for one select attribute.
// The picker form posts to SubmitURL and searches against SearchURL when set.
type AttributeOptions struct {
	Title     string
	Session   *attributes.SelectSession
	SubmitURL string
	SearchURL string
}

// Options is a generic option picker, e.g. for brands or rubrics.
type Options struct {
	Title     string
	Catalog   string
	Picker    *options.Picker
	SubmitURL string
	SearchURL string
}

// Confirm asks a yes/no question.
type Confirm struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	OnConfirm    func()
	OnDecline    func()
}

// Translations edits one translated value.
type Translations struct {
	Title  string
	Path   string
	Fields []translation.Field
}

// RemoveSlotConfirm confirms removal of a repeatable field slot.
type RemoveSlotConfirm struct {
	List *fieldlist.List
}

// Index returns the slot pending removal.
func (m RemoveSlotConfirm) Index() int {
	if m.List == nil {
		return fieldlist.NoneSelected
	}
	return m.List.PendingRemoval()
}

func (AttributeOptions) Kind() Kind  { return KindAttributeOptions }
func (Options) Kind() Kind           { return KindOptions }
func (Confirm) Kind() Kind           { return KindConfirm }
func (Translations) Kind() Kind      { return KindTranslations }
func (RemoveSlotConfirm) Kind() Kind { return KindRemoveSlotConfirm }

func (AttributeOptions) isModal()  {}
func (Options) isModal()           {}
func (Confirm) isModal()           {}
func (Translations) isModal()      {}
func (RemoveSlotConfirm) isModal() {}
