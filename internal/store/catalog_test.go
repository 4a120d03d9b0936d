package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/options"
)

func loadTestCatalogs(t *testing.T) *Catalogs {
	t.Helper()
	c, err := LoadCatalogs(filepath.Join("testdata", "catalogs.yaml"), nil)
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	return c
}

func TestLoadCatalogs_AssignsStableIDs(t *testing.T) {
	first := loadTestCatalogs(t)
	second := loadTestCatalogs(t)
	ctx := context.Background()

	a, err := first.Nodes(ctx, "brands")
	if err != nil {
		t.Fatalf("nodes: %v", err)
	}
	b, _ := second.Nodes(ctx, "brands")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("ids differ between loads (-first +second):\n%s", diff)
	}

	seen := map[string]bool{}
	var walk func([]options.OptionNode)
	walk = func(nodes []options.OptionNode) {
		for _, n := range nodes {
			if n.ID == "" || n.Slug == "" {
				t.Fatalf("node %q missing id or slug: %+v", n.Name, n)
			}
			if seen[n.ID] {
				t.Fatalf("duplicate id %q", n.ID)
			}
			seen[n.ID] = true
			walk(n.Options)
		}
	}
	walk(a)

	if a[3].ID != "brand-yablonka" {
		t.Fatalf("explicit id overwritten: %q", a[3].ID)
	}
	if a[0].ID != OptionID("brands", a[0].Slug) {
		t.Fatalf("derived id mismatch for %q", a[0].Name)
	}
}

func TestCatalogs_AlphabetGroupsByLetter(t *testing.T) {
	c := loadTestCatalogs(t)
	buckets, err := c.Alphabet(context.Background(), "brands")
	if err != nil {
		t.Fatalf("alphabet: %v", err)
	}
	var letters []string
	for _, b := range buckets {
		letters = append(letters, b.Letter)
	}
	if diff := cmp.Diff([]string{"A", "B", "Я"}, letters); diff != "" {
		t.Fatalf("letters mismatch (-want +got):\n%s", diff)
	}
	if len(buckets[1].Docs[0].Options) != 1 {
		t.Fatalf("nested options lost: %+v", buckets[1].Docs[0])
	}
}

func TestCatalogs_UnknownIsNotFound(t *testing.T) {
	c := loadTestCatalogs(t)
	_, err := c.Alphabet(context.Background(), "missing")
	if !goerrors.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if diff := cmp.Diff([]string{"brands", "rubrics"}, c.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogs_RejectsDuplicateSiblings(t *testing.T) {
	_, err := NewCatalogs(map[string][]options.OptionNode{
		"brands": {{Name: "Apple", Slug: "apple"}, {Name: "APPLE", Slug: "apple"}},
	}, nil)
	if !errors.Is(err, ErrDuplicateOption) {
		t.Fatalf("expected ErrDuplicateOption, got %v", err)
	}
}
