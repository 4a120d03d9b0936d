package store

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/options"
	"github.com/goliatone/go-formkit/pkg/translit"
)

// Catalogs holds named option forests such as brands or rubrics. It serves
// option search and the picker pages.
type Catalogs struct {
	mu       sync.RWMutex
	forests  map[string][]options.OptionNode
	translit *translit.Table
}

// NewCatalogs normalizes forests: missing slugs are derived from names and
// missing ids from the catalog name and slug path. Sibling options that end
// up with the same slug are rejected.
func NewCatalogs(forests map[string][]options.OptionNode, tr *translit.Table) (*Catalogs, error) {
	if tr == nil {
		tr = translit.Default()
	}
	c := &Catalogs{forests: make(map[string][]options.OptionNode, len(forests)), translit: tr}
	for name, nodes := range forests {
		if err := c.Put(name, nodes); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalogs reads a YAML document mapping catalog names to option forests.
func LoadCatalogs(path string, tr *translit.Table) (*Catalogs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read catalogs %s: %w", path, err)
	}
	var forests map[string][]options.OptionNode
	if err := yaml.Unmarshal(data, &forests); err != nil {
		return nil, fmt.Errorf("store: parse catalogs %s: %w", path, err)
	}
	return NewCatalogs(forests, tr)
}

// Put replaces one catalog.
func (c *Catalogs) Put(name string, nodes []options.OptionNode) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("store: catalog name is required")
	}
	normalized, err := normalizeNodes(name, nil, nodes, c.translit)
	if err != nil {
		return fmt.Errorf("store: catalog %q: %w", name, err)
	}
	c.mu.Lock()
	c.forests[name] = normalized
	c.mu.Unlock()
	return nil
}

func normalizeNodes(catalog string, parent []string, nodes []options.OptionNode, tr *translit.Table) ([]options.OptionNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]options.OptionNode, len(nodes))
	seen := make(map[string]struct{}, len(nodes))
	for i, node := range nodes {
		node.Slug = strings.TrimSpace(node.Slug)
		if node.Slug == "" {
			node.Slug = Slugify(node.Name, tr)
		}
		if node.Slug == "" {
			return nil, fmt.Errorf("%w: %q", ErrEmptySlug, node.Name)
		}
		if _, dup := seen[node.Slug]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateOption, node.Slug)
		}
		seen[node.Slug] = struct{}{}

		path := append(append([]string(nil), parent...), node.Slug)
		if strings.TrimSpace(node.ID) == "" {
			node.ID = OptionID(catalog, path...)
		}
		children, err := normalizeNodes(catalog, path, node.Options, tr)
		if err != nil {
			return nil, err
		}
		node.Options = children
		out[i] = node
	}
	return out, nil
}

// Names lists the catalog names in order.
func (c *Catalogs) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.forests))
	for name := range c.forests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Nodes returns the forest of catalog.
func (c *Catalogs) Nodes(_ context.Context, catalog string) ([]options.OptionNode, error) {
	c.mu.RLock()
	nodes, ok := c.forests[catalog]
	c.mu.RUnlock()
	if !ok {
		return nil, notFound("CATALOG_NOT_FOUND", "catalog %q not found", catalog)
	}
	return nodes, nil
}

// Alphabet groups the forest of catalog by first letter.
func (c *Catalogs) Alphabet(ctx context.Context, catalog string) ([]options.AlphabetBucket, error) {
	nodes, err := c.Nodes(ctx, catalog)
	if err != nil {
		return nil, err
	}
	return options.BuildAlphabet(nodes), nil
}
