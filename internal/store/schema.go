package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translation"
	"github.com/goliatone/go-formkit/pkg/translit"
)

// Schema is the attribute layout shared by every product.
type Schema struct {
	Groups []GroupDef `yaml:"groups"`
}

// GroupDef declares one attribute group.
type GroupDef struct {
	ID         string            `yaml:"id"`
	Name       map[string]string `yaml:"name"`
	Attributes []AttributeDef    `yaml:"attributes"`
}

// AttributeDef declares one attribute. Select kinds take their options
// inline or from a named catalog.
type AttributeDef struct {
	ID      string              `yaml:"id"`
	Kind    attributes.Kind     `yaml:"kind"`
	Name    map[string]string   `yaml:"name"`
	Unit    string              `yaml:"unit,omitempty"`
	Catalog string              `yaml:"catalog,omitempty"`
	Options []attributes.Option `yaml:"options,omitempty"`
}

// LoadSchema reads the attribute schema from YAML.
func LoadSchema(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Schema{}, fmt.Errorf("store: read schema %s: %w", path, err)
	}
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return Schema{}, fmt.Errorf("store: parse schema %s: %w", path, err)
	}
	if err := schema.Validate(); err != nil {
		return Schema{}, fmt.Errorf("store: schema %s: %w", path, err)
	}
	return schema, nil
}

// Validate checks that ids are present and unique and kinds are known.
func (s Schema) Validate() error {
	groups := map[string]struct{}{}
	attrs := map[string]struct{}{}
	for _, g := range s.Groups {
		if strings.TrimSpace(g.ID) == "" {
			return fmt.Errorf("group id is required")
		}
		if _, dup := groups[g.ID]; dup {
			return fmt.Errorf("duplicate group %q", g.ID)
		}
		groups[g.ID] = struct{}{}
		for _, a := range g.Attributes {
			if strings.TrimSpace(a.ID) == "" {
				return fmt.Errorf("group %q: attribute id is required", g.ID)
			}
			if _, dup := attrs[a.ID]; dup {
				return fmt.Errorf("duplicate attribute %q", a.ID)
			}
			attrs[a.ID] = struct{}{}
			switch a.Kind {
			case attributes.KindString, attributes.KindNumber, attributes.KindSelect, attributes.KindMultipleSelect:
			default:
				return fmt.Errorf("attribute %q: unknown kind %q", a.ID, a.Kind)
			}
		}
	}
	return nil
}

// Group looks up a group definition.
func (s Schema) Group(id string) (GroupDef, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return GroupDef{}, false
}

// Attribute looks up an attribute definition inside a group.
func (g GroupDef) Attribute(id string) (AttributeDef, bool) {
	for _, a := range g.Attributes {
		if a.ID == id {
			return a, true
		}
	}
	return AttributeDef{}, false
}

// resolveOptions returns the option forest of a select attribute. Catalog
// options carry a single name, stored under the default locale.
func (s *Store) resolveOptions(ctx context.Context, def AttributeDef) ([]attributes.Option, error) {
	if def.Catalog != "" {
		nodes, err := s.catalogs.Nodes(ctx, def.Catalog)
		if err != nil {
			return nil, err
		}
		return catalogOptions(nodes, s.locales), nil
	}
	return inlineOptions(def.ID, nil, def.Options, s.locales, s.translit), nil
}

func catalogOptions(nodes []options.OptionNode, locales translation.Locales) []attributes.Option {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]attributes.Option, len(nodes))
	for i, n := range nodes {
		out[i] = attributes.Option{
			ID:      n.ID,
			Name:    translation.New(locales, map[string]string{locales.Default: n.Name}),
			Slug:    n.Slug,
			Options: catalogOptions(n.Options, locales),
		}
	}
	return out
}

func inlineOptions(attributeID string, parent []string, opts []attributes.Option, locales translation.Locales, tr *translit.Table) []attributes.Option {
	if len(opts) == 0 {
		return nil
	}
	out := make([]attributes.Option, len(opts))
	for i, opt := range opts {
		if opt.Slug == "" {
			opt.Slug = Slugify(opt.Name.Value(locales, locales.Default), tr)
		}
		path := append(append([]string(nil), parent...), opt.Slug)
		if opt.ID == "" {
			opt.ID = OptionID("attribute:"+attributeID, path...)
		}
		opt.Name = translation.New(locales, opt.Name)
		opt.Options = inlineOptions(attributeID, path, opt.Options, locales, tr)
		out[i] = opt
	}
	return out
}
