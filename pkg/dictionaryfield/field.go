// Package dictionaryfield groups a fixed, ordered set of named sub-fields
// into one record. Sub-field values are submitted under
// parent + "__" + name.
package dictionaryfield

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/goliatone/go-formfields/internal/labels"
	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/render/builtin"
	"github.com/goliatone/go-formfields/pkg/submission"
)

var (
	// ErrNoEntries is returned when no sub-field is configured.
	ErrNoEntries = errors.New("dictionaryfield: at least one sub-field is required")
	// ErrInvalidEntry is returned for unnamed, duplicated or nil sub-fields.
	ErrInvalidEntry = errors.New("dictionaryfield: invalid sub-field")
)

// Record is the cleaned value: every configured sub-field name mapped to its
// cleaned value.
type Record = map[string]any

// Entry binds a sub-field name to its field.
type Entry struct {
	Name  string
	Field fields.Field
}

// Field is a fixed group of named sub-fields.
type Field struct {
	entries *orderedmap.OrderedMap[string, fields.Field]
	spec    fields.Spec
}

var (
	_ fields.Repeatable = (*Field)(nil)
	_ fields.Container  = (*Field)(nil)
	_ fields.KeyLister  = (*Field)(nil)
)

// New copies entries, in order, and returns the field. Options set the
// label, help text, required flag and message overrides of the group.
func New(entries []Entry, options ...fields.Option) (*Field, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	ordered := orderedmap.New[string, fields.Field](orderedmap.WithCapacity[string, fields.Field](len(entries)))
	for idx, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidEntry, idx)
		case strings.Contains(name, fields.Separator):
			return nil, fmt.Errorf("%w: %q contains %q", ErrInvalidEntry, name, fields.Separator)
		case entry.Field == nil:
			return nil, fmt.Errorf("%w: %q has no field", ErrInvalidEntry, name)
		}
		if _, exists := ordered.Get(name); exists {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidEntry, name)
		}
		ordered.Set(name, entry.Field)
	}

	return &Field{
		entries: ordered,
		spec:    fields.ApplySpec(fields.Spec{Required: true}, options...),
	}, nil
}

// MustNew is New for package-level declarations. It panics on configuration
// errors.
func MustNew(entries []Entry, options ...fields.Option) *Field {
	field, err := New(entries, options...)
	if err != nil {
		panic(err)
	}
	return field
}

// Spec implements fields.Field.
func (f *Field) Spec() fields.Spec {
	return f.spec.Clone()
}

// Entries returns a copy of the configured sub-fields in order.
func (f *Field) Entries() []Entry {
	out := make([]Entry, 0, f.entries.Len())
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Entry{Name: pair.Key, Field: pair.Value})
	}
	return out
}

// Children implements fields.Container.
func (f *Field) Children() []fields.Child {
	out := make([]fields.Child, 0, f.entries.Len())
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, fields.Child{Name: pair.Key, Field: pair.Value})
	}
	return out
}

// Keys implements fields.KeyLister.
func (f *Field) Keys(name string) []string {
	var out []string
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, fields.KeysOf(pair.Value, fields.Join(name, pair.Key))...)
	}
	return out
}

// Equal reports whether other has the same names, in the same order, bound
// to the same fields.
func (f *Field) Equal(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.entries.Len() != other.entries.Len() {
		return false
	}
	left, right := f.entries.Oldest(), other.entries.Oldest()
	for ; left != nil && right != nil; left, right = left.Next(), right.Next() {
		if left.Key != right.Key || !sameField(left.Value, right.Value) {
			return false
		}
	}
	return true
}

// ValueFromData implements fields.Field. It returns a map[string]any keyed
// by sub-field name.
func (f *Field) ValueFromData(data submission.Values, name string) any {
	out := make(map[string]any, f.entries.Len())
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value.ValueFromData(data, fields.Join(name, pair.Key))
	}
	return out
}

// ValuesFromData implements fields.Repeatable. Each sub-field's rows are
// zipped by position; the row count is the longest sub-field list and
// missing cells are empty strings.
func (f *Field) ValuesFromData(data submission.Values, name string) []any {
	columns := make(map[string][]any, f.entries.Len())
	count := 0
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		repeatable, ok := pair.Value.(fields.Repeatable)
		if !ok {
			continue
		}
		column := repeatable.ValuesFromData(data, fields.Join(name, pair.Key))
		columns[pair.Key] = column
		count = max(count, len(column))
	}
	if count == 0 {
		return nil
	}

	rows := make([]any, count)
	for idx := range rows {
		row := make(map[string]any, f.entries.Len())
		for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
			column := columns[pair.Key]
			if idx < len(column) {
				row[pair.Key] = column[idx]
			} else {
				row[pair.Key] = ""
			}
		}
		rows[idx] = row
	}
	return rows
}

// Clean implements fields.Field. When every sub-field is blank the group is
// absent and Clean returns (nil, nil). Otherwise every sub-field is cleaned
// and all sub-field errors are reported together.
func (f *Field) Clean(raw any) (any, error) {
	values, _ := raw.(map[string]any)
	if fields.IsBlank(values) {
		return nil, nil
	}

	record := make(Record, f.entries.Len())
	verr := &fields.ValidationError{}
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		value, err := pair.Value.Clean(values[pair.Key])
		if err != nil {
			verr.SetField(pair.Key, fields.AsValidationError(err))
			continue
		}
		spec := pair.Value.Spec()
		if value == nil && spec.Required {
			verr.SetField(pair.Key, fields.RequiredError(spec.Message(fields.CodeRequired)))
			continue
		}
		record[pair.Key] = value
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return record, nil
}

// Render implements fields.Field. Sub-fields render in configured order,
// each bound to name + "__" + sub-field name.
func (f *Field) Render(name string, raw any) (string, error) {
	values, _ := raw.(map[string]any)

	entries := make([]map[string]any, 0, f.entries.Len())
	for pair := f.entries.Oldest(); pair != nil; pair = pair.Next() {
		key := fields.Join(name, pair.Key)
		widget, err := pair.Value.Render(key, values[pair.Key])
		if err != nil {
			return "", fmt.Errorf("dictionaryfield: render %q: %w", key, err)
		}
		spec := pair.Value.Spec()
		label := spec.Label
		if label == "" {
			label = labels.Default(pair.Key)
		}
		entries = append(entries, map[string]any{
			"key":       key,
			"label":     label,
			"widget":    widget,
			"help_text": spec.HelpText,
		})
	}

	engine, err := builtin.Default()
	if err != nil {
		return "", fmt.Errorf("dictionaryfield: %w", err)
	}
	out, err := engine.RenderTemplate(builtin.DictionaryTemplate, map[string]any{
		"name":    name,
		"entries": entries,
	})
	if err != nil {
		return "", fmt.Errorf("dictionaryfield: render %q: %w", name, err)
	}
	return out, nil
}

func sameField(a, b fields.Field) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil || !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
