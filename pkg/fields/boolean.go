package fields

import (
	"github.com/goliatone/go-formfields/pkg/submission"
	"github.com/goliatone/go-formfields/pkg/widgets"
)

// BooleanField cleans a checkbox. A required boolean must be checked.
// Browsers omit unchecked checkboxes, so a boolean cannot sit inside a
// repeated row: its values would not line up with the other columns.
type BooleanField struct {
	leaf
}

// NewBoolean constructs a checkbox field.
func NewBoolean(options ...Option) *BooleanField {
	return &BooleanField{leaf: newLeaf(options, widgets.CheckboxInput{})}
}

// ValueFromData returns "" for an unchecked (absent) checkbox.
func (f *BooleanField) ValueFromData(data submission.Values, name string) any {
	if !data.Has(name) {
		return ""
	}
	return data.Get(name)
}

func (f *BooleanField) omittedWhenEmpty() {}

// Clean implements Field. It returns a bool.
func (f *BooleanField) Clean(raw any) (any, error) {
	checked := widgets.Truthy(StringValue(raw))
	if !checked && f.cfg.spec.Required {
		return nil, f.required()
	}
	return checked, nil
}
