package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formfields/pkg/fields"
	"github.com/goliatone/go-formfields/pkg/submission"
)

var (
	// ErrInvalidEntry is returned for unnamed, duplicated or nil fields.
	ErrInvalidEntry = errors.New("forms: invalid field entry")
	// ErrInvalidForm is returned by Decode when the bound data did not clean.
	ErrInvalidForm = errors.New("forms: form is not valid")
	// ErrUnbound is returned by Decode on an unbound form.
	ErrUnbound = errors.New("forms: form is not bound")
)

// NonFieldErrors is the Errors key for messages not tied to one field.
const NonFieldErrors = "__all__"

// Entry binds a field name to its field.
type Entry struct {
	Name  string
	Field fields.Field
}

// Form is an ordered set of named fields. It holds configuration only and
// can bind any number of submissions.
type Form struct {
	entries []Entry
	index   map[string]int
	cfg     config
}

// New copies entries and returns the form.
func New(entries []Entry, options ...Option) (*Form, error) {
	form := &Form{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
		cfg:     newConfig(options),
	}
	for idx, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidEntry, idx)
		case entry.Field == nil:
			return nil, fmt.Errorf("%w: %q has no field", ErrInvalidEntry, name)
		}
		if _, exists := form.index[name]; exists {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidEntry, name)
		}
		form.index[name] = len(form.entries)
		form.entries = append(form.entries, Entry{Name: name, Field: entry.Field})
	}
	return form, nil
}

// MustNew panics on configuration errors.
func MustNew(entries []Entry, options ...Option) *Form {
	form, err := New(entries, options...)
	if err != nil {
		panic(err)
	}
	return form
}

// Name returns the configured form name.
func (f *Form) Name() string { return f.cfg.name }

// Prefix returns the configured key prefix.
func (f *Form) Prefix() string { return f.cfg.prefix }

// Entries returns a copy of the fields in order.
func (f *Form) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// Field returns the field registered under name.
func (f *Form) Field(name string) (fields.Field, bool) {
	idx, ok := f.index[name]
	if !ok {
		return nil, false
	}
	return f.entries[idx].Field, true
}

// HTMLName returns the submitted key of field name.
func (f *Form) HTMLName(name string) string {
	if f.cfg.prefix == "" {
		return name
	}
	return f.cfg.prefix + "-" + name
}

// Keys lists every submitted key the form reads, in field order.
func (f *Form) Keys() []string {
	var out []string
	for _, entry := range f.entries {
		out = append(out, fields.KeysOf(entry.Field, f.HTMLName(entry.Name))...)
	}
	return out
}

// Bind attaches a submission. Cleaning runs on first access.
func (f *Form) Bind(data submission.Values) *Bound {
	return &Bound{form: f, data: data.Clone(), bound: true}
}

// Unbound returns the form without submitted data, rendering initial values.
func (f *Form) Unbound() *Bound {
	return &Bound{form: f}
}
