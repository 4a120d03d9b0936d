// Package fieldlist backs array-valued form fields such as phone numbers or
// barcodes: an ordered list of strings that always has at least one slot and
// removes non-first slots through a confirm step.
package fieldlist

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// NoneSelected is the pending-removal marker when no removal was requested.
const NoneSelected = -1

var (
	ErrFirstSlot        = errors.New("fieldlist: first slot cannot be removed")
	ErrOutOfRange       = errors.New("fieldlist: index out of range")
	ErrNoPendingRemoval = errors.New("fieldlist: no removal pending")
)

// List is a repeatable field bound to one form path.
type List struct {
	path        string
	values      []string
	removeIndex int
}

// New builds a list for path. An empty value set is seeded with one blank
// slot.
func New(path string, values ...string) *List {
	l := &List{
		path:        path,
		values:      append([]string(nil), values...),
		removeIndex: NoneSelected,
	}
	if len(l.values) == 0 {
		l.values = []string{""}
	}
	return l
}

func (l *List) Path() string { return l.path }
func (l *List) Len() int     { return len(l.values) }

// Values returns a copy of the slots.
func (l *List) Values() []string {
	return append([]string(nil), l.values...)
}

// NonEmpty returns the trimmed values, skipping blank slots.
func (l *List) NonEmpty() []string {
	out := make([]string, 0, len(l.values))
	for _, v := range l.values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Add appends a blank slot.
func (l *List) Add() {
	l.values = append(l.values, "")
}

// Set edits slot i.
func (l *List) Set(i int, value string) error {
	if i < 0 || i >= len(l.values) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	l.values[i] = value
	return nil
}

// CanRemove reports whether slot i offers a remove control.
func (l *List) CanRemove(i int) bool {
	return i > 0 && i < len(l.values)
}

// RequestRemove marks slot i for removal pending confirmation.
func (l *List) RequestRemove(i int) error {
	if i == 0 {
		return ErrFirstSlot
	}
	if !l.CanRemove(i) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i)
	}
	l.removeIndex = i
	return nil
}

// PendingRemoval returns the marked index or NoneSelected.
func (l *List) PendingRemoval() int {
	return l.removeIndex
}

// Confirm drops the marked slot by position, so equal values elsewhere
// survive.
func (l *List) Confirm() error {
	idx := l.removeIndex
	if idx == NoneSelected {
		return ErrNoPendingRemoval
	}
	l.removeIndex = NoneSelected
	if idx <= 0 || idx >= len(l.values) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, idx)
	}

	kept := make([]string, 0, len(l.values)-1)
	for i, v := range l.values {
		if i != idx {
			kept = append(kept, v)
		}
	}
	l.values = kept
	return nil
}

// Decline clears the pending removal.
func (l *List) Decline() {
	l.removeIndex = NoneSelected
}

// Slot is one rendered input.
type Slot struct {
	Index     int
	Name      string
	Value     string
	Removable bool
	Pending   bool
}

// Slots describes every input with its form name.
func (l *List) Slots() []Slot {
	slots := make([]Slot, len(l.values))
	for i, v := range l.values {
		slots[i] = Slot{
			Index:     i,
			Name:      FieldName(l.path, i),
			Value:     v,
			Removable: l.CanRemove(i),
			Pending:   i == l.removeIndex,
		}
	}
	return slots
}

// FieldName renders the indexed form name for slot i of path.
func FieldName(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// FromForm rebuilds the list for path from submitted form values. Indexed
// keys are ordered by index; a bare path key is accepted as a fallback.
func FromForm(path string, form url.Values) *List {
	prefix := path + "["
	type indexed struct {
		idx   int
		value string
	}
	var entries []indexed
	for key, vals := range form {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "]") || len(vals) == 0 {
			continue
		}
		idx, err := strconv.Atoi(key[len(prefix) : len(key)-1])
		if err != nil || idx < 0 {
			continue
		}
		entries = append(entries, indexed{idx: idx, value: vals[0]})
	}
	if len(entries) == 0 {
		return New(path, form[path]...)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	values := make([]string, len(entries))
	for i, entry := range entries {
		values[i] = entry.value
	}
	return New(path, values...)
}
