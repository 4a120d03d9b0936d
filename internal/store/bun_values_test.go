package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/translation"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqldb.Close()
	})

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func newTestBunValues(t *testing.T) *BunValues {
	t.Helper()
	repo := NewBunValues(newTestDB(t))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := repo.CreateSchema(ctx); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return repo
}

func TestBunValues_UpsertKeepsRowID(t *testing.T) {
	repo := newTestBunValues(t)
	ctx := context.Background()

	created, err := repo.Upsert(ctx, Value{
		ProductID:         "p1",
		GroupID:           "appearance",
		AttributeID:       "brand",
		Kind:              attributes.KindMultipleSelect,
		SelectedOptionIDs: []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created[0].ProductAttributeID
	if id == "" {
		t.Fatalf("expected generated id")
	}

	updated, err := repo.Upsert(ctx, Value{
		ProductID:         "p1",
		GroupID:           "appearance",
		AttributeID:       "brand",
		Kind:              attributes.KindMultipleSelect,
		SelectedOptionIDs: []string{"b"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated[0].ProductAttributeID != id {
		t.Fatalf("row id changed: %q -> %q", id, updated[0].ProductAttributeID)
	}

	list, err := repo.List(ctx, "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []Value{{
		ProductAttributeID: id,
		ProductID:          "p1",
		GroupID:            "appearance",
		AttributeID:        "brand",
		Kind:               attributes.KindMultipleSelect,
		SelectedOptionIDs:  []string{"b"},
	}}
	if diff := cmp.Diff(want, list, cmpopts.IgnoreFields(Value{}, "UpdatedAt"), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestUpsert_IgnoresClientRowID(t *testing.T) {
	ctx := context.Background()
	repos := map[string]ValueRepository{
		"memory": NewMemoryValues(),
		"bun":    newTestBunValues(t),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			first, err := repo.Upsert(ctx, Value{ProductAttributeID: "row-1", ProductID: "p1", AttributeID: "width", Kind: attributes.KindNumber, Number: floatPtr(1)})
			if err != nil {
				t.Fatalf("first upsert: %v", err)
			}
			second, err := repo.Upsert(ctx, Value{ProductAttributeID: "row-1", ProductID: "p2", AttributeID: "height", Kind: attributes.KindNumber, Number: floatPtr(2)})
			if err != nil {
				t.Fatalf("second upsert: %v", err)
			}
			a, b := first[0].ProductAttributeID, second[0].ProductAttributeID
			if a == "row-1" || b == "row-1" || a == b {
				t.Fatalf("expected distinct repository ids, got %q and %q", a, b)
			}

			again, err := repo.Upsert(ctx, Value{ProductAttributeID: b, ProductID: "p1", AttributeID: "width", Kind: attributes.KindNumber, Number: floatPtr(3)})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if again[0].ProductAttributeID != a {
				t.Fatalf("update took a foreign id: got %q, want %q", again[0].ProductAttributeID, a)
			}
		})
	}
}

func TestBunValues_StoresNumbersAndText(t *testing.T) {
	repo := newTestBunValues(t)
	ctx := context.Background()

	width := 42.0
	if _, err := repo.Upsert(ctx,
		Value{ProductID: "p1", GroupID: "dimensions", AttributeID: "width", Kind: attributes.KindNumber, Number: &width},
		Value{ProductID: "p1", GroupID: "appearance", AttributeID: "material", Kind: attributes.KindString, Text: translation.Map{"en": "Wool", "ru": "Шерсть"}},
	); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	list, err := repo.List(ctx, "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
	// ordered by attribute id
	if list[0].AttributeID != "material" || list[0].Text["ru"] != "Шерсть" {
		t.Fatalf("unexpected text row: %+v", list[0])
	}
	if list[1].Number == nil || *list[1].Number != 42 {
		t.Fatalf("unexpected number row: %+v", list[1])
	}
}

func TestBunValues_RejectsIncompleteBatch(t *testing.T) {
	repo := newTestBunValues(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx,
		Value{ProductID: "p1", AttributeID: "width"},
		Value{ProductID: "p1"},
	)
	if err == nil {
		t.Fatalf("expected error for value without attribute id")
	}
	list, _ := repo.List(ctx, "p1")
	if len(list) != 0 {
		t.Fatalf("batch partially written: %+v", list)
	}
}

func TestStore_OverBunValues(t *testing.T) {
	s := newTestStore(t, newTestBunValues(t))
	ctx := context.Background()

	if err := s.SubmitSelect(ctx, attributes.SelectSubmission{
		ProductID:         "p9",
		GroupID:           "appearance",
		Kind:              attributes.KindSelect,
		AttributeID:       "color",
		SelectedOptionIDs: []string{"red"},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	group, err := s.Group(ctx, "p9", "appearance")
	if err != nil {
		t.Fatalf("group: %v", err)
	}
	color, _ := group.FindSelect(attributes.KindSelect, "color")
	if got := color.Readable(testLocales, "ru"); got != "Красный" {
		t.Fatalf("expected Красный, got %q", got)
	}
}

func TestOpenValues_Drivers(t *testing.T) {
	ctx := context.Background()

	repo, closeFn, err := OpenValues(ctx, "memory", "")
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	if _, ok := repo.(*MemoryValues); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}
	_ = closeFn()

	repo, closeFn, err = OpenValues(ctx, "sqlite", "file:open_values_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer closeFn()
	if _, ok := repo.(*BunValues); !ok {
		t.Fatalf("expected bun repository, got %T", repo)
	}

	if _, _, err := OpenValues(ctx, "mongo", ""); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
