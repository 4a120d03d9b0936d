package attributes

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/mutation"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
	"github.com/goliatone/go-formkit/pkg/translit"
)

// Submitter persists attribute edits.
type Submitter interface {
	SubmitSelect(ctx context.Context, submission SelectSubmission) error
	SubmitNumbers(ctx context.Context, batch NumberBatch) error
	SubmitStrings(ctx context.Context, batch StringBatch) error
}

// Editor turns form actions on attribute groups into submitter calls run
// under the mutation policy of each call site.
type Editor struct {
	submitter Submitter
	runner    *mutation.Runner
	locales   translation.Locales
	translit  translit.Transliterator
	logger    interfaces.Logger
}

type EditorOption func(*Editor)

func WithRunner(runner *mutation.Runner) EditorOption {
	return func(e *Editor) {
		if runner != nil {
			e.runner = runner
		}
	}
}

func WithLocales(locales translation.Locales) EditorOption {
	return func(e *Editor) {
		e.locales = locales
	}
}

// WithTransliterator sets the transliterator handed to select pickers.
func WithTransliterator(tr translit.Transliterator) EditorOption {
	return func(e *Editor) {
		e.translit = tr
	}
}

func WithLogger(logger interfaces.Logger) EditorOption {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEditor(submitter Submitter, opts ...EditorOption) (*Editor, error) {
	if submitter == nil {
		return nil, ErrMissingSubmitter
	}
	e := &Editor{
		submitter: submitter,
		runner:    mutation.NewRunner(),
		locales:   translation.Locales{Default: "en"},
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

func (e *Editor) Locales() translation.Locales { return e.locales }

// SelectSession is an open picker for one select attribute. The outcome of
// the submit it triggers is available once the picker is done.
type SelectSession struct {
	Picker     *options.Picker
	Submission SelectSubmission
	outcome    *mutation.Outcome
}

// Outcome returns the mutation result, or false while nothing was submitted.
func (s *SelectSession) Outcome() (mutation.Outcome, bool) {
	if s == nil || s.outcome == nil {
		return mutation.Outcome{}, false
	}
	return *s.outcome, true
}

// OpenSelect opens a picker seeded with the attribute's options and current
// selection. Select kinds use a radio picker, multi-select kinds a checkbox
// picker. The picker's submit saves the attribute immediately.
func (e *Editor) OpenSelect(ctx context.Context, productID string, group Group, kind Kind, attributeID, locale string) (*SelectSession, error) {
	attr, ok := group.FindSelect(kind, attributeID)
	if !ok {
		if kind != KindSelect && kind != KindMultipleSelect {
			return nil, fmt.Errorf("%w: %q", ErrNotSelectKind, kind)
		}
		return nil, fmt.Errorf("attributes: %s attribute %q not found in group %q", kind, attributeID, group.ID)
	}

	session := &SelectSession{
		Submission: SelectSubmission{
			ProductID:          productID,
			GroupID:            group.ID,
			Kind:               kind,
			AttributeID:        attr.AttributeID,
			ProductAttributeID: attr.ProductAttributeID,
		},
	}
	session.Picker = options.NewPicker(options.Config{
		Alphabet:          options.BuildAlphabet(OptionNodes(attr.Options, e.locales, locale)),
		Variant:           kind.Variant(),
		InitiallySelected: attr.Selected(e.locales, locale),
		Transliterator:    e.translit,
		OnSubmit: func(selected []options.OptionNode) {
			submission := session.Submission
			submission.SelectedOptionIDs = nodeIDs(selected)
			outcome := e.submitSelect(ctx, mutation.SiteAttributeSelect, submission)
			session.outcome = &outcome
		},
	})

	e.logger.Debug("attribute picker opened", "product", productID, "attribute", attributeID, "kind", string(kind))
	return session, nil
}

// Clear submits an empty selection for a select attribute. It refuses when
// the attribute has no readable value.
func (e *Editor) Clear(ctx context.Context, productID string, group Group, kind Kind, attributeID, locale string) (mutation.Outcome, error) {
	attr, ok := group.FindSelect(kind, attributeID)
	if !ok {
		return mutation.Outcome{}, fmt.Errorf("attributes: %s attribute %q not found in group %q", kind, attributeID, group.ID)
	}
	if !attr.Clearable(e.locales, locale) {
		return mutation.Outcome{}, ErrNothingToClear
	}
	return e.submitSelect(ctx, mutation.SiteAttributeClear, SelectSubmission{
		ProductID:          productID,
		GroupID:            group.ID,
		Kind:               kind,
		AttributeID:        attr.AttributeID,
		ProductAttributeID: attr.ProductAttributeID,
		SelectedOptionIDs:  []string{},
	}), nil
}

// SubmitSelection saves a selection that was picked outside a session, for
// example by an HTTP form. An empty selection is refused with
// options.ErrNothingSelected; clearing goes through Clear.
func (e *Editor) SubmitSelection(ctx context.Context, submission SelectSubmission) (mutation.Outcome, error) {
	if err := submission.Validate(); err != nil {
		return mutation.Outcome{}, err
	}
	if !hasSelection(submission.SelectedOptionIDs) {
		return mutation.Outcome{}, options.ErrNothingSelected
	}
	return e.submitSelect(ctx, mutation.SiteAttributeSelect, submission), nil
}

func hasSelection(ids []string) bool {
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			return true
		}
	}
	return false
}

func (e *Editor) submitSelect(ctx context.Context, site mutation.Site, submission SelectSubmission) mutation.Outcome {
	return e.runner.Do(ctx, site, func(ctx context.Context) error {
		return e.submitter.SubmitSelect(ctx, submission)
	})
}

// SaveNumbers validates and submits a number batch. Validation failures are
// returned as errors and never reach the submitter.
func (e *Editor) SaveNumbers(ctx context.Context, batch NumberBatch) (mutation.Outcome, error) {
	if err := batch.Validate(); err != nil {
		return mutation.Outcome{}, err
	}
	return e.runner.Do(ctx, mutation.SiteNumberBatch, func(ctx context.Context) error {
		return e.submitter.SubmitNumbers(ctx, batch)
	}), nil
}

// SaveStrings sanitizes, validates and submits a string batch.
func (e *Editor) SaveStrings(ctx context.Context, batch StringBatch) (mutation.Outcome, error) {
	batch = SanitizeStrings(batch)
	if err := batch.Validate(); err != nil {
		return mutation.Outcome{}, err
	}
	return e.runner.Do(ctx, mutation.SiteStringBatch, func(ctx context.Context) error {
		return e.submitter.SubmitStrings(ctx, batch)
	}), nil
}

func nodeIDs(nodes []options.OptionNode) []string {
	ids := make([]string, len(nodes))
	for i, node := range nodes {
		ids[i] = node.ID
	}
	return ids
}
