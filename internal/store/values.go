package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-formkit/pkg/attributes"
	"github.com/goliatone/go-formkit/pkg/translation"
)

// Value is the stored value of one attribute of one product.
type Value struct {
	ProductAttributeID string
	ProductID          string
	GroupID            string
	AttributeID        string
	Kind               attributes.Kind
	Number             *float64
	Text               translation.Map
	SelectedOptionIDs  []string
	UpdatedAt          time.Time
}

func (v Value) key() string {
	return v.ProductID + "\x00" + v.AttributeID
}

func cloneValue(v Value) Value {
	if v.Number != nil {
		n := *v.Number
		v.Number = &n
	}
	v.Text = v.Text.Clone()
	if v.SelectedOptionIDs != nil {
		v.SelectedOptionIDs = append([]string{}, v.SelectedOptionIDs...)
	}
	return v
}

// ValueRepository stores attribute values keyed by product and attribute.
// Upsert writes every value or none and returns them with their persisted
// ProductAttributeID. Row ids are assigned by the repository on insert; an
// incoming ProductAttributeID is ignored.
type ValueRepository interface {
	List(ctx context.Context, productID string) ([]Value, error)
	Upsert(ctx context.Context, values ...Value) ([]Value, error)
}

// MemoryValues keeps values in process.
type MemoryValues struct {
	mu     sync.RWMutex
	values map[string]Value
	now    func() time.Time
}

func NewMemoryValues() *MemoryValues {
	return &MemoryValues{
		values: make(map[string]Value),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryValues) List(_ context.Context, productID string) ([]Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Value, 0)
	for _, v := range m.values {
		if v.ProductID == productID {
			out = append(out, cloneValue(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttributeID < out[j].AttributeID })
	return out, nil
}

func (m *MemoryValues) Upsert(_ context.Context, values ...Value) ([]Value, error) {
	for _, v := range values {
		if err := checkValue(v); err != nil {
			return nil, err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	out := make([]Value, len(values))
	for i, v := range values {
		if existing, ok := m.values[v.key()]; ok {
			v.ProductAttributeID = existing.ProductAttributeID
		} else {
			v.ProductAttributeID = NewProductAttributeID()
		}
		v.UpdatedAt = now
		m.values[v.key()] = cloneValue(v)
		out[i] = cloneValue(v)
	}
	return out, nil
}

func checkValue(v Value) error {
	if strings.TrimSpace(v.ProductID) == "" || strings.TrimSpace(v.AttributeID) == "" {
		return invalid("product and attribute ids are required")
	}
	return nil
}
