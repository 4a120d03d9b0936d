package attributes

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/pkg/translation"
)

const (
	numberFieldPrefix = "numbers."
	stringFieldPrefix = "strings."

	batchInvalidCode = "ATTRIBUTE_BATCH_INVALID"
)

// NumberValue is one entry of a number batch.
type NumberValue struct {
	AttributeID        string   `json:"attributeId"`
	ProductAttributeID string   `json:"productAttributeId,omitempty"`
	Value              *float64 `json:"value"`
}

// StringValue is one entry of a string batch.
type StringValue struct {
	AttributeID        string          `json:"attributeId"`
	ProductAttributeID string          `json:"productAttributeId,omitempty"`
	Value              translation.Map `json:"value"`
}

// NumberBatch saves every number attribute of one group at once.
type NumberBatch struct {
	ProductID string        `json:"productId"`
	GroupID   string        `json:"groupId"`
	Values    []NumberValue `json:"values"`
}

// StringBatch saves every string attribute of one group at once.
type StringBatch struct {
	ProductID string        `json:"productId"`
	GroupID   string        `json:"groupId"`
	Values    []StringValue `json:"values"`
}

// SelectSubmission saves one select attribute. An empty selection clears it
// and is only built by Editor.Clear.
type SelectSubmission struct {
	ProductID          string   `json:"productId"`
	GroupID            string   `json:"groupId"`
	Kind               Kind     `json:"kind"`
	AttributeID        string   `json:"attributeId"`
	ProductAttributeID string   `json:"productAttributeId,omitempty"`
	SelectedOptionIDs  []string `json:"selectedOptionsIds"`
}

// NumberFieldName is the form input name of a number attribute.
func NumberFieldName(attributeID string) string {
	return numberFieldPrefix + attributeID
}

// StringFieldPath is the form path of a string attribute; one input per
// locale hangs off it.
func StringFieldPath(attributeID string) string {
	return stringFieldPrefix + attributeID
}

// ParseNumber reads a numeric input. Blank input is nil; NaN and infinities
// are rejected. A decimal comma is accepted.
func ParseNumber(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return &value, nil
}

// NumberBatchFromForm binds the number inputs of group. Unparseable inputs
// are reported as validation errors keyed by input name.
func NumberBatchFromForm(productID string, group Group, form url.Values) (NumberBatch, error) {
	batch := NumberBatch{ProductID: productID, GroupID: group.ID}
	errs := validation.Errors{}
	for _, attr := range group.Number {
		name := NumberFieldName(attr.AttributeID)
		value, err := ParseNumber(form.Get(name))
		if err != nil {
			errs[name] = validation.NewError("formkit.attributes.number_invalid", "must be a number")
			continue
		}
		batch.Values = append(batch.Values, NumberValue{
			AttributeID:        attr.AttributeID,
			ProductAttributeID: attr.ProductAttributeID,
			Value:              value,
		})
	}
	if len(errs) > 0 {
		return batch, invalidBatch(errs)
	}
	return batch, nil
}

// StringBatchFromForm binds the per-locale string inputs of group.
func StringBatchFromForm(productID string, group Group, locales translation.Locales, form url.Values) StringBatch {
	batch := StringBatch{ProductID: productID, GroupID: group.ID}
	for _, attr := range group.String {
		batch.Values = append(batch.Values, StringValue{
			AttributeID:        attr.AttributeID,
			ProductAttributeID: attr.ProductAttributeID,
			Value:              translation.FromForm(StringFieldPath(attr.AttributeID), locales, form),
		})
	}
	return batch
}

// Validate checks ids and numeric values.
func (b NumberBatch) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(strings.TrimSpace(b.ProductID), validation.Required); err != nil {
		errs["productId"] = err
	}
	for i, v := range b.Values {
		if strings.TrimSpace(v.AttributeID) == "" {
			errs[fmt.Sprintf("values.%d.attributeId", i)] = validation.NewError("formkit.attributes.attribute_required", "attribute id is required")
			continue
		}
		if v.Value != nil && (math.IsNaN(*v.Value) || math.IsInf(*v.Value, 0)) {
			errs[NumberFieldName(v.AttributeID)] = validation.NewError("formkit.attributes.number_not_finite", "must be a finite number")
		}
	}
	if len(errs) > 0 {
		return invalidBatch(errs)
	}
	return nil
}

// Validate checks ids.
func (b StringBatch) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(strings.TrimSpace(b.ProductID), validation.Required); err != nil {
		errs["productId"] = err
	}
	for i, v := range b.Values {
		if strings.TrimSpace(v.AttributeID) == "" {
			errs[fmt.Sprintf("values.%d.attributeId", i)] = validation.NewError("formkit.attributes.attribute_required", "attribute id is required")
		}
	}
	if len(errs) > 0 {
		return invalidBatch(errs)
	}
	return nil
}

// Validate checks ids.
func (s SelectSubmission) Validate() error {
	err := validation.Errors{
		"productId":   validation.Validate(strings.TrimSpace(s.ProductID), validation.Required),
		"attributeId": validation.Validate(strings.TrimSpace(s.AttributeID), validation.Required),
		"kind":        validation.Validate(string(s.Kind), validation.In(string(KindSelect), string(KindMultipleSelect))),
	}.Filter()
	if err != nil {
		return invalidBatch(err)
	}
	return nil
}

func invalidBatch(err error) error {
	return goerrors.FromOzzoValidation(err, "attribute values are invalid").
		WithTextCode(batchInvalidCode)
}

// FieldErrors flattens a validation error into input name to message pairs
// for inline display. Errors without field details yield nil.
func FieldErrors(err error) map[string]string {
	fields, ok := goerrors.GetValidationErrors(err)
	if !ok || len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for _, field := range fields {
		out[field.Field] = field.Message
	}
	return out
}
