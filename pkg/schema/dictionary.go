package schema

import (
	"fmt"

	"github.com/goliatone/go-formfields/pkg/dictionaryfield"
	"github.com/goliatone/go-formfields/pkg/fields"
)

// CheckNoSubFields reports a dictionary column without sub-columns.
const CheckNoSubFields = "dictionaryfield.E001"

// DictionaryColumn declares a column grouping named sub-columns.
type DictionaryColumn struct {
	Column
	Fields []Declaration
}

// Check implements Declaration. Sub-column messages are included.
func (c *DictionaryColumn) Check() []CheckMessage {
	out := c.Column.Check()
	if len(c.Fields) == 0 {
		out = append(out, checkError(CheckNoSubFields, c.object(), "Dictionary columns require at least one sub-field.", ""))
	}
	for _, sub := range c.Fields {
		sub.Descriptor().Model = c.object()
		out = append(out, sub.Check()...)
	}
	return out
}

// BuildField implements Declaration.
func (c *DictionaryColumn) BuildField() (fields.Field, error) {
	entries := make([]dictionaryfield.Entry, 0, len(c.Fields))
	for _, sub := range c.Fields {
		field, err := sub.BuildField()
		if err != nil {
			return nil, err
		}
		entries = append(entries, dictionaryfield.Entry{Name: sub.Descriptor().Name, Field: field})
	}
	field, err := dictionaryfield.New(entries, c.options()...)
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", c.object(), err)
	}
	return field, nil
}
