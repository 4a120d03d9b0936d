// Package store persists product attribute values and serves the option
// catalogs and attribute schema they are edited against.
package store

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
	"github.com/goliatone/go-formkit/pkg/translit"
)

// Store joins the attribute schema with stored values. It implements
// attributes.Submitter and the option search source contract.
type Store struct {
	catalogs *Catalogs
	schema   Schema
	values   ValueRepository
	locales  translation.Locales
	translit *translit.Table
	logger   interfaces.Logger
}

type Option func(*Store)

func WithLocales(locales translation.Locales) Option {
	return func(s *Store) {
		if locales.Validate() == nil {
			s.locales = locales
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTransliterator(tr *translit.Table) Option {
	return func(s *Store) {
		if tr != nil {
			s.translit = tr
		}
	}
}

func New(catalogs *Catalogs, schema Schema, values ValueRepository, opts ...Option) (*Store, error) {
	if values == nil {
		return nil, fmt.Errorf("store: value repository is required")
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if catalogs == nil {
		catalogs, _ = NewCatalogs(nil, nil)
	}
	s := &Store{
		catalogs: catalogs,
		schema:   schema,
		values:   values,
		locales:  translation.Locales{Default: "en", Supported: []string{"en"}},
		translit: translit.Default(),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Store) Catalogs() *Catalogs { return s.catalogs }
func (s *Store) Locales() translation.Locales { return s.locales }

// Alphabet serves option search from the catalogs.
func (s *Store) Alphabet(ctx context.Context, catalog string) ([]options.AlphabetBucket, error) {
	return s.catalogs.Alphabet(ctx, catalog)
}

// Groups returns every schema group for productID with stored values filled
// in. Groups without attributes are kept; callers filter visibility.
func (s *Store) Groups(ctx context.Context, productID string) ([]attributes.Group, error) {
	stored, err := s.storedValues(ctx, productID)
	if err != nil {
		return nil, err
	}
	groups := make([]attributes.Group, 0, len(s.schema.Groups))
	for _, def := range s.schema.Groups {
		group, err := s.buildGroup(ctx, def, stored)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// Group returns one schema group for productID.
func (s *Store) Group(ctx context.Context, productID, groupID string) (attributes.Group, error) {
	def, ok := s.schema.Group(groupID)
	if !ok {
		return attributes.Group{}, notFound("GROUP_NOT_FOUND", "attribute group %q not found", groupID)
	}
	stored, err := s.storedValues(ctx, productID)
	if err != nil {
		return attributes.Group{}, err
	}
	return s.buildGroup(ctx, def, stored)
}

func (s *Store) storedValues(ctx context.Context, productID string) (map[string]Value, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, invalid("product id is required", goerrors.FieldError{Field: "productId", Message: "cannot be blank"})
	}
	values, err := s.values.List(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(values))
	for _, v := range values {
		out[v.AttributeID] = v
	}
	return out, nil
}

func (s *Store) buildGroup(ctx context.Context, def GroupDef, stored map[string]Value) (attributes.Group, error) {
	group := attributes.Group{ID: def.ID, Name: translation.New(s.locales, def.Name)}
	for _, a := range def.Attributes {
		v := stored[a.ID]
		name := translation.New(s.locales, a.Name)
		switch a.Kind {
		case attributes.KindString:
			group.String = append(group.String, attributes.StringAttribute{
				AttributeID:        a.ID,
				ProductAttributeID: v.ProductAttributeID,
				Name:               name,
				TextI18n:           translation.New(s.locales, v.Text),
			})
		case attributes.KindNumber:
			group.Number = append(group.Number, attributes.NumberAttribute{
				AttributeID:        a.ID,
				ProductAttributeID: v.ProductAttributeID,
				Name:               name,
				Unit:               a.Unit,
				Number:             v.Number,
			})
		case attributes.KindSelect, attributes.KindMultipleSelect:
			opts, err := s.resolveOptions(ctx, a)
			if err != nil {
				return attributes.Group{}, err
			}
			attr := attributes.SelectAttribute{
				AttributeID:        a.ID,
				ProductAttributeID: v.ProductAttributeID,
				Name:               name,
				Options:            opts,
				SelectedOptionIDs:  append([]string{}, v.SelectedOptionIDs...),
			}
			if a.Kind == attributes.KindSelect {
				group.Select = append(group.Select, attr)
			} else {
				group.MultipleSelect = append(group.MultipleSelect, attr)
			}
		}
	}
	return group, nil
}

func (s *Store) lookup(groupID, attributeID string, kind attributes.Kind) (GroupDef, AttributeDef, error) {
	group, ok := s.schema.Group(groupID)
	if !ok {
		return GroupDef{}, AttributeDef{}, notFound("GROUP_NOT_FOUND", "attribute group %q not found", groupID)
	}
	attr, ok := group.Attribute(attributeID)
	if !ok {
		return GroupDef{}, AttributeDef{}, notFound("ATTRIBUTE_NOT_FOUND", "attribute %q not found in group %q", attributeID, groupID)
	}
	if attr.Kind != kind {
		return GroupDef{}, AttributeDef{}, invalid("attribute kind mismatch", goerrors.FieldError{
			Field:   attributeID,
			Message: fmt.Sprintf("is a %s attribute, not %s", attr.Kind, kind),
		})
	}
	return group, attr, nil
}

// SubmitSelect stores the selection of one select attribute. Every id must
// name an option of the attribute; select kinds take at most one.
func (s *Store) SubmitSelect(ctx context.Context, sub attributes.SelectSubmission) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	_, def, err := s.lookup(sub.GroupID, sub.AttributeID, sub.Kind)
	if err != nil {
		return err
	}
	opts, err := s.resolveOptions(ctx, def)
	if err != nil {
		return err
	}

	ids := dedupe(sub.SelectedOptionIDs)
	if def.Kind == attributes.KindSelect && len(ids) > 1 {
		return invalid("single select takes one option", goerrors.FieldError{Field: def.ID, Message: "only one option can be selected", Value: ids})
	}
	tree := options.NewTree(attributes.OptionNodes(opts, s.locales, s.locales.Default))
	for _, id := range ids {
		if _, ok := tree.Lookup(id); !ok {
			return invalid("unknown option", goerrors.FieldError{Field: def.ID, Message: "unknown option", Value: id})
		}
	}

	stored, err := s.values.Upsert(ctx, Value{
		ProductAttributeID: sub.ProductAttributeID,
		ProductID:          sub.ProductID,
		GroupID:            sub.GroupID,
		AttributeID:        def.ID,
		Kind:               def.Kind,
		SelectedOptionIDs:  ids,
	})
	if err != nil {
		return err
	}
	s.logger.Debug("select attribute stored", "product", sub.ProductID, "attribute", def.ID, "id", stored[0].ProductAttributeID, "options", len(ids))
	return nil
}

// SubmitNumbers stores a number batch in one write.
func (s *Store) SubmitNumbers(ctx context.Context, batch attributes.NumberBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	values := make([]Value, 0, len(batch.Values))
	for _, nv := range batch.Values {
		_, def, err := s.lookup(batch.GroupID, nv.AttributeID, attributes.KindNumber)
		if err != nil {
			return err
		}
		values = append(values, Value{
			ProductAttributeID: nv.ProductAttributeID,
			ProductID:          batch.ProductID,
			GroupID:            batch.GroupID,
			AttributeID:        def.ID,
			Kind:               def.Kind,
			Number:             nv.Value,
		})
	}
	if len(values) == 0 {
		return nil
	}
	if _, err := s.values.Upsert(ctx, values...); err != nil {
		return err
	}
	s.logger.Debug("number batch stored", "product", batch.ProductID, "group", batch.GroupID, "count", len(values))
	return nil
}

// SubmitStrings stores a string batch in one write. Values are padded to
// the configured locales.
func (s *Store) SubmitStrings(ctx context.Context, batch attributes.StringBatch) error {
	if err := batch.Validate(); err != nil {
		return err
	}
	values := make([]Value, 0, len(batch.Values))
	for _, sv := range batch.Values {
		_, def, err := s.lookup(batch.GroupID, sv.AttributeID, attributes.KindString)
		if err != nil {
			return err
		}
		values = append(values, Value{
			ProductAttributeID: sv.ProductAttributeID,
			ProductID:          batch.ProductID,
			GroupID:            batch.GroupID,
			AttributeID:        def.ID,
			Kind:               def.Kind,
			Text:               translation.New(s.locales, sv.Value),
		})
	}
	if len(values) == 0 {
		return nil
	}
	if _, err := s.values.Upsert(ctx, values...); err != nil {
		return err
	}
	s.logger.Debug("string batch stored", "product", batch.ProductID, "group", batch.GroupID, "count", len(values))
	return nil
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
