package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// BunValues persists attribute values with bun. It works with the sqlite and
// postgres dialects.
type BunValues struct {
	db *bun.DB
}

func NewBunValues(db *bun.DB) *BunValues {
	return &BunValues{db: db}
}

// CreateSchema creates the value table and its unique index when missing.
func (r *BunValues) CreateSchema(ctx context.Context) error {
	if r.db == nil {
		return ErrMissingDatabase
	}
	if _, err := r.db.NewCreateTable().Model((*valueModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := r.db.NewCreateIndex().
		Model((*valueModel)(nil)).
		Index("product_attribute_values_product_attribute_idx").
		Unique().
		IfNotExists().
		Column("product_id", "attribute_id").
		Exec(ctx)
	return err
}

func (r *BunValues) List(ctx context.Context, productID string) ([]Value, error) {
	if r.db == nil {
		return nil, ErrMissingDatabase
	}
	var models []valueModel
	if err := r.db.NewSelect().
		Model(&models).
		Where("product_id = ?", productID).
		Order("attribute_id ASC").
		Scan(ctx); err != nil {
		return nil, internalError(err, "list attribute values")
	}
	out := make([]Value, len(models))
	for i := range models {
		out[i] = modelToValue(&models[i])
	}
	return out, nil
}

func (r *BunValues) Upsert(ctx context.Context, values ...Value) ([]Value, error) {
	if r.db == nil {
		return nil, ErrMissingDatabase
	}
	for _, v := range values {
		if err := checkValue(v); err != nil {
			return nil, err
		}
	}

	out := make([]Value, len(values))
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()
		for i, v := range values {
			var existing valueModel
			err := tx.NewSelect().
				Model(&existing).
				Where("product_id = ?", v.ProductID).
				Where("attribute_id = ?", v.AttributeID).
				Scan(ctx)
			created := false
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					return err
				}
				created = true
			}

			model := modelFromValue(v)
			model.UpdatedAt = now
			if created {
				model.ID = NewProductAttributeID()
				if _, err := tx.NewInsert().Model(&model).Exec(ctx); err != nil {
					return err
				}
			} else {
				model.ID = existing.ID
				if _, err := tx.NewUpdate().
					Model(&model).
					Column("group_id", "kind", "number", "text", "selected_option_ids", "updated_at").
					WherePK().
					Exec(ctx); err != nil {
					return err
				}
			}
			out[i] = modelToValue(&model)
		}
		return nil
	})
	if err != nil {
		return nil, internalError(err, "store attribute values")
	}
	return out, nil
}

type valueModel struct {
	bun.BaseModel `bun:"table:product_attribute_values"`

	ID                string            `bun:"id,pk"`
	ProductID         string            `bun:"product_id,notnull"`
	GroupID           string            `bun:"group_id"`
	AttributeID       string            `bun:"attribute_id,notnull"`
	Kind              string            `bun:"kind"`
	Number            *float64          `bun:"number"`
	Text              map[string]string `bun:"text,type:jsonb,nullzero"`
	SelectedOptionIDs []string          `bun:"selected_option_ids,type:jsonb"`
	UpdatedAt         time.Time         `bun:"updated_at"`
}

func modelFromValue(v Value) valueModel {
	selected := v.SelectedOptionIDs
	if selected == nil {
		selected = []string{}
	}
	return valueModel{
		ID:                v.ProductAttributeID,
		ProductID:         v.ProductID,
		GroupID:           v.GroupID,
		AttributeID:       v.AttributeID,
		Kind:              string(v.Kind),
		Number:            v.Number,
		Text:              v.Text.Clone(),
		SelectedOptionIDs: append([]string{}, selected...),
	}
}

func modelToValue(m *valueModel) Value {
	return cloneValue(Value{
		ProductAttributeID: m.ID,
		ProductID:          m.ProductID,
		GroupID:            m.GroupID,
		AttributeID:        m.AttributeID,
		Kind:               attributes.Kind(m.Kind),
		Number:             m.Number,
		Text:               translation.Map(m.Text),
		SelectedOptionIDs:  m.SelectedOptionIDs,
		UpdatedAt:          m.UpdatedAt,
	})
}
